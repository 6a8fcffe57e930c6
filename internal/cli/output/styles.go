package output

import "github.com/charmbracelet/lipgloss"

// Styles is the CLI style set.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header1: r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#1F4E9E", Dark: "#7AA2F7"}),
		Header2: r.NewStyle().Bold(true).Underline(true),
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}),
		Success: r.NewStyle().Foreground(lipgloss.Color("#22C55E")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("#EAB308")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
		Info:    r.NewStyle().Foreground(lipgloss.Color("#3B82F6")),
	}
}
