// cmd/crumbline/main.go
//
// Entry point for the crumbline terminal storefront.
//
// Flow:
// 1. Resolve the base directory (flag, default: current directory)
// 2. Initialize the .crumbline folder (logs, state, exports, config)
// 3. Launch the TUI

package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/crumbline/crumbline/internal/config"
	"github.com/crumbline/crumbline/internal/tui"
)

func main() {
	baseDir := flag.String("dir", "", "base directory for .crumbline state (default: current directory)")
	apiURL := flag.String("api", "", "override the API base URL (also CRUMBLINE_API_URL)")
	flag.Parse()

	dir := *baseDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
			os.Exit(1)
		}
		dir = cwd
	}

	if err := config.InitCrumblineDir(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .crumbline directory: %v\n", err)
		os.Exit(1)
	}

	var opts []tui.AppOption
	if *apiURL != "" {
		opts = append(opts, tui.WithAPIBaseURL(*apiURL))
	}
	app, err := tui.NewApp(dir, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting crumbline: %v\n", err)
		os.Exit(1)
	}

	// tea.NewProgram creates a new bubbletea application; AltScreen
	// keeps the shell scrollback clean.
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
