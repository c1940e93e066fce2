package console

import "github.com/charmbracelet/lipgloss"

// styles holds the console palette, bound to the renderer of one output.
type styles struct {
	title   lipgloss.Style
	comment lipgloss.Style
	success lipgloss.Style
	errorS  lipgloss.Style
	warn    lipgloss.Style
	dim     lipgloss.Style
	header  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),
		comment: r.NewStyle().
			Foreground(lipgloss.Color("245")),
		success: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("78")),
		errorS: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		warn: r.NewStyle().
			Foreground(lipgloss.Color("214")),
		dim: r.NewStyle().
			Foreground(lipgloss.Color("241")),
		header: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("111")).
			Padding(0, 1),
	}
}
