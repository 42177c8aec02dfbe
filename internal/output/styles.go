package output

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorPrimary = lipgloss.Color("#7aa2f7")
	colorSuccess = lipgloss.Color("#9ece6a")
	colorWarning = lipgloss.Color("#e0af68")
	colorError   = lipgloss.Color("#f7768e")
	colorMuted   = lipgloss.Color("#565f89")
)

// styles holds the lipgloss styles of one printer. They are bound to the
// printer's renderer so color detection follows its writer.
type styles struct {
	title   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
	key     lipgloss.Style
	locked  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(colorPrimary),
		success: r.NewStyle().Foreground(colorSuccess),
		warning: r.NewStyle().Foreground(colorWarning),
		err:     r.NewStyle().Bold(true).Foreground(colorError),
		muted:   r.NewStyle().Foreground(colorMuted),
		key:     r.NewStyle().Bold(true),
		locked:  r.NewStyle().Foreground(colorSuccess).Bold(true),
	}
}
