package tui

import "github.com/charmbracelet/lipgloss"

type cardStyles struct {
	normal      lipgloss.Style
	selected    lipgloss.Style
	title       lipgloss.Style
	author      lipgloss.Style
	rating      lipgloss.Style
	metadata    lipgloss.Style
	price       lipgloss.Style
	description lipgloss.Style
	favorite    lipgloss.Style
}

func newCardStyles() cardStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return cardStyles{
		normal:   container,
		selected: selected,
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		author: lipgloss.NewStyle().
			Foreground(lipgloss.Color("110")),
		rating: lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")),
		metadata: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
		price: lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")),
		description: lipgloss.NewStyle().
			Foreground(lipgloss.Color("248")),
		favorite: lipgloss.NewStyle().
			Foreground(lipgloss.Color("204")).
			Bold(true),
	}
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	facetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("110"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("161")).
			Bold(true)

	configErrorStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(lipgloss.Color("161")).
				Foreground(lipgloss.Color("230")).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)
