package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Score bands used to color scores.
const (
	GoodScore = 80.0
	FairScore = 60.0
)

// Styles contains all lipgloss styles for terminal output
type Styles struct {
	enabled bool

	// Score band styles
	Good lipgloss.Style
	Fair lipgloss.Style
	Poor lipgloss.Style

	// Message styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style

	// Structural styles
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Path      lipgloss.Style
	Separator lipgloss.Style

	// Icons (degraded to ASCII when not interactive)
	IconError   string
	IconWarning string
	IconInfo    string
	IconSuccess string
}

// NewStyles creates a new Styles instance
// When enabled is false, styles return text unchanged (for non-TTY output)
func NewStyles(enabled bool) *Styles {
	s := &Styles{enabled: enabled}

	if enabled {
		s.Good = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))    // Green
		s.Fair = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))    // Yellow
		s.Poor = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))     // Red
		s.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))    // Red
		s.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // Yellow
		s.Info = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))    // Blue
		s.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Green

		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")) // White bold
		s.Subheader = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))          // Gray
		s.Path = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))               // Gray
		s.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))          // Gray

		s.IconError = "✗"
		s.IconWarning = "⚠"
		s.IconInfo = "ℹ"
		s.IconSuccess = "✓"
	} else {
		s.Good = lipgloss.NewStyle()
		s.Fair = lipgloss.NewStyle()
		s.Poor = lipgloss.NewStyle()
		s.Error = lipgloss.NewStyle()
		s.Warning = lipgloss.NewStyle()
		s.Info = lipgloss.NewStyle()
		s.Success = lipgloss.NewStyle()

		s.Header = lipgloss.NewStyle()
		s.Subheader = lipgloss.NewStyle()
		s.Path = lipgloss.NewStyle()
		s.Separator = lipgloss.NewStyle()

		s.IconError = "ERROR:"
		s.IconWarning = "WARN:"
		s.IconInfo = "INFO:"
		s.IconSuccess = "OK:"
	}

	return s
}

// Enabled returns whether styling is enabled
func (s *Styles) Enabled() bool {
	return s.enabled
}

// ScoreStyle returns the style of the band a score falls in.
func (s *Styles) ScoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= GoodScore:
		return s.Good
	case score >= FairScore:
		return s.Fair
	default:
		return s.Poor
	}
}

// Render applies style to text. Disabled styles return text unchanged.
func (s *Styles) Render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}
