package main

import (
	"fmt"
	"os"

	"codeberg.org/svgforge/server/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	console := tui.NewConsole()
	p := tea.NewProgram(console, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("error running quotactl: %v\n", err)
		os.Exit(1)
	}
}
