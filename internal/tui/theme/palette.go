// Package theme provides color themes for the TUI.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Now         lipgloss.Color
	Warning     lipgloss.Color
	Conflict    lipgloss.Color

	Pending    StatusColors
	InProgress StatusColors
	Paused     StatusColors
	Finished   StatusColors

	UnavailableBg lipgloss.Color
	UnavailableFg lipgloss.Color

	TextOnAccent   lipgloss.Color
	TextOnWarning  lipgloss.Color
	TextOnConflict lipgloss.Color

	Modal ModalColors
}

// StatusColors are the bar colors for one task status.
type StatusColors struct {
	Bar    lipgloss.Color // bar background
	BarAlt lipgloss.Color // selected bar background
	Text   lipgloss.Color
}

// ModalColors holds modal-specific colors derived from a Theme.
type ModalColors struct {
	Bg          lipgloss.Color
	Border      lipgloss.AdaptiveColor
	Text        lipgloss.AdaptiveColor
	Muted       lipgloss.AdaptiveColor
	Highlight   lipgloss.AdaptiveColor
	Panel       lipgloss.AdaptiveColor
	ReverseText lipgloss.AdaptiveColor
	Backdrop    lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	isLight := isLightTheme(t.Bg)
	status := func(accent string) StatusColors {
		bar := taskBaseBg(accent, t.Bg, isLight)
		return StatusColors{
			Bar:    lipgloss.Color(bar),
			BarAlt: lipgloss.Color(alternateShade(bar, isLight)),
			Text:   lipgloss.Color(chooseTextColor(bar, t.Fg, t.Bg)),
		}
	}

	unavailableHex := coalesce(t.Unavailable, taskMutedBg(t.FgMuted, t.Bg, isLight))

	modalPalette := t.Modal()
	modalBgHex := coalesce(modalPalette.BaseBg, t.BgHighlight, t.Bg)
	modalTextHex := coalesce(modalPalette.TextPrimary, t.Fg)
	modalMutedHex := coalesce(modalPalette.TextMuted, t.FgMuted)
	modalHighlightHex := coalesce(modalPalette.Highlight, t.BgSelection, t.Accent)
	modalBorderHex := coalesce(modalPalette.ModalBorder, t.Accent)
	modalPanelHex := coalesce(t.BgSelection, t.BgHighlight, t.Bg)
	modalBackdropHex := coalesce(t.BgSelection, t.BgHighlight, t.Bg)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Now:         lipgloss.Color(t.Now),
		Warning:     lipgloss.Color(t.Warning),
		Conflict:    lipgloss.Color(t.Conflict),

		Pending:    status(t.Pending),
		InProgress: status(t.InProgress),
		Paused:     status(t.Paused),
		Finished:   status(t.Finished),

		UnavailableBg: lipgloss.Color(unavailableHex),
		UnavailableFg: lipgloss.Color(t.FgMuted),

		TextOnAccent:   lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnWarning:  lipgloss.Color(chooseTextColor(t.Warning, t.Bg, t.Fg)),
		TextOnConflict: lipgloss.Color(chooseTextColor(t.Conflict, t.Bg, t.Fg)),

		Modal: ModalColors{
			Bg:          lipgloss.Color(modalBgHex),
			Border:      adaptiveColor(modalBorderHex),
			Text:        adaptiveColor(modalTextHex),
			Muted:       adaptiveColor(modalMutedHex),
			Highlight:   adaptiveColor(modalHighlightHex),
			Panel:       adaptiveColor(modalPanelHex),
			ReverseText: reverseTextColor(modalBgHex, modalTextHex),
			Backdrop:    lipgloss.Color(modalBackdropHex),
		},
	}
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

// taskBaseBg is the bar color of a status accent: darkened on dark themes,
// washed toward the background on light ones.
func taskBaseBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.75)
	}
	return darkenColor(accent)
}

func taskMutedBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.88)
	}
	return muteColor(accent)
}

func darkenColor(hex string) string {
	return scaleColor(hex, 0.50, 40)
}

// muteColor is a heavier darkening used for unavailable cells.
func muteColor(hex string) string {
	return scaleColor(hex, 0.30, 30)
}

// scaleColor multiplies every channel by factor, never going below floor
// (0-255) so bars stay visible on dark backgrounds.
func scaleColor(hex string, factor float64, floor int) string {
	c, ok := parseColor(hex)
	if !ok {
		return hex
	}
	lo := float64(floor) / 255
	c.R = max(c.R*factor, lo)
	c.G = max(c.G*factor, lo)
	c.B = max(c.B*factor, lo)
	return c.Clamped().Hex()
}

// alternateShade is the selected-bar variant of a bar color.
func alternateShade(hex string, isLight bool) string {
	if isLight {
		return blendColors(hex, "#000000", 0.10)
	}
	return blendColors(hex, "#ffffff", 0.30)
}

func parseColor(hex string) (colorful.Color, bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(hex)
	return c, err == nil
}

func adaptiveColor(hex string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: hex, Light: hex}
}

func reverseTextColor(darkBg, lightText string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: darkBg, Light: lightText}
}

func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

// contrastRatio is the WCAG contrast between two colors.
func contrastRatio(a, b string) float64 {
	l1, l2 := relativeLuminance(a), relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	c, ok := parseColor(hex)
	if !ok {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// blendColors mixes a toward b; ratio 0 is a, 1 is b.
func blendColors(a, b string, ratio float64) string {
	ca, okA := parseColor(a)
	cb, okB := parseColor(b)
	if !okA || !okB {
		return a
	}
	ratio = min(max(ratio, 0), 1)
	return ca.BlendRgb(cb, ratio).Clamped().Hex()
}
