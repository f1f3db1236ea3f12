package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func testTheme() *Theme {
	return &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Pending:     "#112233",
		InProgress:  "#445566",
		Paused:      "#778899",
		Finished:    "#00ff00",
		Now:         "#777777",
		Warning:     "#888888",
	}
}

func TestNewPalette_StatusShades(t *testing.T) {
	base := testTheme()
	palette := NewPalette(base)

	if palette.Pending.Bar != lipgloss.Color(darkenColor(base.Pending)) {
		t.Fatalf("Pending.Bar = %q, want %q", palette.Pending.Bar, darkenColor(base.Pending))
	}
	if palette.InProgress.Bar != lipgloss.Color(darkenColor(base.InProgress)) {
		t.Fatalf("InProgress.Bar = %q, want %q", palette.InProgress.Bar, darkenColor(base.InProgress))
	}
	want := alternateShade(darkenColor(base.Finished), false)
	if palette.Finished.BarAlt != lipgloss.Color(want) {
		t.Fatalf("Finished.BarAlt = %q, want %q", palette.Finished.BarAlt, want)
	}
}

func TestNewPalette_UnavailableFallback(t *testing.T) {
	base := testTheme()
	palette := NewPalette(base)
	if palette.UnavailableBg != lipgloss.Color(muteColor(base.FgMuted)) {
		t.Fatalf("UnavailableBg = %q, want %q", palette.UnavailableBg, muteColor(base.FgMuted))
	}

	base.Unavailable = "#050505"
	if got := NewPalette(base).UnavailableBg; got != lipgloss.Color("#050505") {
		t.Fatalf("UnavailableBg = %q, want theme value", got)
	}
}

func TestNewPalette_ModalFallbacks(t *testing.T) {
	base := testTheme()
	palette := NewPalette(base)
	if palette.Modal.Bg != lipgloss.Color(base.BgHighlight) {
		t.Fatalf("Modal.Bg = %q, want %q", palette.Modal.Bg, base.BgHighlight)
	}
	if palette.Modal.Border.Dark != base.Accent {
		t.Fatalf("Modal.Border.Dark = %q, want %q", palette.Modal.Border.Dark, base.Accent)
	}
	if palette.Modal.Backdrop != lipgloss.Color(base.BgSelection) {
		t.Fatalf("Modal.Backdrop = %q, want %q", palette.Modal.Backdrop, base.BgSelection)
	}
}

func TestNewPalette_LightThemeInvertsShades(t *testing.T) {
	base := &Theme{
		Bg:          "#f5f5f5",
		BgHighlight: "#eeeeee",
		BgSelection: "#e0e0e0",
		Fg:          "#222222",
		FgMuted:     "#555555",
		Accent:      "#2f6feb",
		Pending:     "#1d8a8a",
		InProgress:  "#2f8f2f",
		Now:         "#c97b00",
		Warning:     "#c2410c",
	}

	palette := NewPalette(base)
	if relativeLuminance(string(palette.Pending.Bar)) <= relativeLuminance(base.Pending) {
		t.Fatalf("Pending.Bar luminance = %f, want greater than Pending", relativeLuminance(string(palette.Pending.Bar)))
	}
	if relativeLuminance(string(palette.InProgress.Bar)) <= relativeLuminance(base.InProgress) {
		t.Fatalf("InProgress.Bar luminance = %f, want greater than InProgress", relativeLuminance(string(palette.InProgress.Bar)))
	}
}

func TestNewPalette_NilUsesDefault(t *testing.T) {
	if p := NewPalette(nil); p.Bg != lipgloss.Color(builtin[DefaultName].Bg) {
		t.Fatalf("Bg = %q", p.Bg)
	}
}

func TestChooseTextColorPrefersContrast(t *testing.T) {
	bg := "#f0f0f0"
	lightText := "#ffffff"
	darkText := "#111111"

	if got := chooseTextColor(bg, lightText, darkText); got != darkText {
		t.Fatalf("chooseTextColor(%q, %q, %q) = %q, want %q", bg, lightText, darkText, got, darkText)
	}
}

func TestScaleColor(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "floor on black", got: darkenColor("#000000"), want: "#282828"},
		{name: "half red", got: darkenColor("#ff0000"), want: "#802828"},
		{name: "muted floor", got: muteColor("#000000"), want: "#1e1e1e"},
		{name: "invalid kept", got: darkenColor("red"), want: "red"},
		{name: "blend midpoint", got: blendColors("#000000", "#ffffff", 0.5), want: "#808080"},
		{name: "blend invalid kept", got: blendColors("#000000", "white", 0.5), want: "#000000"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}
