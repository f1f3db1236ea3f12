package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/bayboard/internal/task"
	"github.com/javiermolinar/bayboard/internal/tui/theme"
	"github.com/javiermolinar/bayboard/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	colorBg     lipgloss.Color
	colorAccent lipgloss.Color

	// Title style
	TitleStyle lipgloss.Style

	// Header styles
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style
	RulerStyle          lipgloss.Style

	// Row label column
	SectionStyle          lipgloss.Style
	ResourceStyle         lipgloss.Style
	ResourceSelectedStyle lipgloss.Style
	SeparatorStyle        lipgloss.Style

	// Timeline cells
	EmptyCellStyle   lipgloss.Style
	StripeCellStyle  lipgloss.Style
	UnavailableStyle lipgloss.Style
	CursorStyle      lipgloss.Style
	NowStyle         lipgloss.Style
	GhostStyle       lipgloss.Style
	GhostHeldStyle   lipgloss.Style

	// Status message
	StatusStyle      lipgloss.Style
	StatusErrorStyle lipgloss.Style

	// Help text
	HelpStyle lipgloss.Style

	// Prompt line
	PromptStyle lipgloss.Style

	// Modal styles
	ModalStyle             lipgloss.Style
	ModalBgColor           lipgloss.Color
	ModalHeaderStyle       lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalLabelStyle        lipgloss.Style
	ModalMetaStyle         lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style

	// App container
	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	palette := theme.NewPalette(t)
	s := &Styles{
		palette:     palette,
		colorBg:     palette.Bg,
		colorAccent: palette.Accent,
	}

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Accent).
		Background(palette.Bg)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Foreground(palette.Fg).
		Background(palette.Bg)

	s.DayHeaderTodayStyle = s.DayHeaderStyle.
		Foreground(palette.Accent)

	s.RulerStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(palette.Bg)

	s.SectionStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Accent).
		Background(palette.Bg)

	s.ResourceStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(palette.Bg)

	s.ResourceSelectedStyle = s.ResourceStyle.
		Background(palette.BgSelection).
		Bold(true)

	s.SeparatorStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(palette.Bg)

	s.EmptyCellStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(palette.Bg)

	s.StripeCellStyle = s.EmptyCellStyle.
		Background(palette.BgHighlight)

	s.UnavailableStyle = lipgloss.NewStyle().
		Foreground(palette.UnavailableFg).
		Background(palette.UnavailableBg)

	s.CursorStyle = lipgloss.NewStyle().
		Background(palette.BgSelection).
		Foreground(palette.Accent).
		Bold(true)

	s.NowStyle = lipgloss.NewStyle().
		Foreground(palette.Now).
		Background(palette.Bg).
		Bold(true)

	s.GhostStyle = lipgloss.NewStyle().
		Background(palette.Warning).
		Foreground(palette.TextOnWarning).
		Bold(true)

	s.GhostHeldStyle = lipgloss.NewStyle().
		Background(palette.Conflict).
		Foreground(palette.TextOnConflict).
		Bold(true)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(palette.Accent).
		Background(palette.Bg).
		Bold(true)

	s.StatusErrorStyle = s.StatusStyle.
		Foreground(palette.Conflict)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(palette.Bg)

	s.PromptStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(palette.BgHighlight)

	modal := palette.Modal
	s.ModalBgColor = modal.Bg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.Border).
		Background(modal.Bg).
		Foreground(modal.Text).
		Padding(1, 1).
		Width(60).
		Align(lipgloss.Left)

	s.ModalHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modal.Bg).
		Padding(0, 1)

	s.ModalFooterStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(modal.Bg)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modal.Bg)

	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modal.Bg)

	s.ModalLabelStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Bold(true).
		Width(12).
		Background(modal.Bg)

	s.ModalMetaStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modal.Bg)

	s.ModalButtonStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modal.Panel).
		Padding(0, 1)

	s.ModalButtonActiveStyle = lipgloss.NewStyle().
		Foreground(modal.ReverseText).
		Background(modal.Highlight).
		Bold(true).
		Padding(0, 1)

	s.AppStyle = lipgloss.NewStyle().
		Background(palette.Bg)

	return s
}

// statusColors returns the bar colors for a task status.
func (s *Styles) statusColors(st task.Status) theme.StatusColors {
	switch st {
	case task.StatusInProgress:
		return s.palette.InProgress
	case task.StatusPaused:
		return s.palette.Paused
	case task.StatusFinished:
		return s.palette.Finished
	default:
		return s.palette.Pending
	}
}

// BarStyle returns the style for a task bar.
func (s *Styles) BarStyle(st task.Status, selected bool) lipgloss.Style {
	c := s.statusColors(st)
	bg := c.Bar
	if selected {
		bg = c.BarAlt
	}
	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(c.Text)
	if selected {
		style = style.Bold(true).Underline(true)
	}
	return style
}

// SectionColor returns a section header style using the section's own color
// when it has one.
func (s *Styles) SectionColor(hex string) lipgloss.Style {
	if hex == "" {
		return s.SectionStyle
	}
	return s.SectionStyle.Foreground(lipgloss.Color(hex))
}

// ModalStyles adapts the modal styles for the view package.
func (s *Styles) ModalStyles() view.ModalStyles {
	return view.ModalStyles{
		Box:          s.ModalStyle,
		Header:       s.ModalHeaderStyle,
		Title:        s.ModalTitleStyle,
		Body:         s.ModalBodyStyle,
		Footer:       s.ModalFooterStyle,
		Button:       s.ModalButtonStyle,
		ActiveButton: s.ModalButtonActiveStyle,
	}
}
