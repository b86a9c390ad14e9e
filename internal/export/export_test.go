package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"github.com/crumbline/crumbline/internal/catalog"
)

func TestWriteCookiesProducesReadableSheet(t *testing.T) {
	dir := t.TempDir()
	cookies := []catalog.Cookie{
		{ID: 1, Name: "Choc Chip", Flavor: "chocolate", Price: 3.5, QuantityAvailable: 12},
		{ID: 2, Name: "Snickerdoodle", Flavor: "cinnamon", Price: 2.75, QuantityAvailable: 0},
	}

	path, err := WriteCookies(dir, cookies)
	require.NoError(t, err)

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	sheet := file.Sheets[0]
	assert.Equal(t, "Cookies", sheet.Name)
	require.Len(t, sheet.Rows, 3, "header plus one row per cookie")
	assert.Equal(t, "Name", sheet.Rows[0].Cells[1].String())
	assert.Equal(t, "Choc Chip", sheet.Rows[1].Cells[1].String())
	assert.Equal(t, "cinnamon", sheet.Rows[2].Cells[2].String())
}

func TestWriteCookiesHandlesEmptyInventory(t *testing.T) {
	path, err := WriteCookies(t.TempDir(), nil)
	require.NoError(t, err)

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets[0].Rows, 1, "header row only")
}
