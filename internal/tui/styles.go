package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite  = lipgloss.Color("#FFFFFF")
	colorGray   = lipgloss.Color("#888888")
	colorPurple = lipgloss.Color("#8524a6")
	colorRed    = lipgloss.Color("#FF0000")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			MarginTop(1).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPurple)
)
