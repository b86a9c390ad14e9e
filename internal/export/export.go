// internal/export/export.go
//
// XLSX inventory export for the admin dashboard. Writes whatever slice
// the cookies view currently holds, so an active search or sort is
// reflected in the sheet.

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tealeg/xlsx"

	"github.com/crumbline/crumbline/internal/catalog"
)

var cookieHeaders = []string{"ID", "Name", "Flavor", "Price", "Quantity Available", "Image URL"}

// WriteCookies writes an inventory sheet to dir with a timestamped
// name and returns the full path.
func WriteCookies(dir string, cookies []catalog.Cookie) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: ensure dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("cookies-%s.xlsx", time.Now().Format("20060102-150405")))

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Cookies")
	if err != nil {
		return "", fmt.Errorf("export: add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range cookieHeaders {
		headerRow.AddCell().SetValue(h)
	}
	for _, c := range cookies {
		row := sheet.AddRow()
		row.AddCell().SetValue(c.ID)
		row.AddCell().SetValue(c.Name)
		row.AddCell().SetValue(c.Flavor)
		row.AddCell().SetValue(c.Price)
		row.AddCell().SetValue(c.QuantityAvailable)
		row.AddCell().SetValue(c.ImageURL)
	}

	if err := file.Save(path); err != nil {
		return "", fmt.Errorf("export: save %s: %w", path, err)
	}
	return path, nil
}
