// Package theme provides color themes for the TUI.
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

// DefaultName is the theme used when none is configured.
const DefaultName = "mocha"

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Base        string `toml:"base"`         // built-in theme a file theme starts from
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Row stripes, subtle highlight
	BgSelection string `toml:"bg_selection"` // Cursor, selection
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Rulers, muted elements
	Accent      string `toml:"accent"`       // Title, primary accent, borders
	Pending     string `toml:"pending"`
	InProgress  string `toml:"in_progress"`
	Paused      string `toml:"paused"`
	Finished    string `toml:"finished"`
	Unavailable string `toml:"unavailable"` // Disabled ranges
	Now         string `toml:"now"`         // Current time marker
	Warning     string `toml:"warning"`     // Gesture ghost
	Conflict    string `toml:"conflict"`    // Ghost over a disabled range

	// Modal palette (can override base theme values)
	BaseBg      string `toml:"base_bg"`
	ModalBorder string `toml:"modal_border"`
	TextPrimary string `toml:"text_primary"`
	TextMuted   string `toml:"text_muted"`
	Highlight   string `toml:"highlight"`
}

var builtin = map[string]Theme{
	"mocha": {
		Name: "mocha", Bg: "#1e1e2e", BgHighlight: "#313244", BgSelection: "#45475a",
		Fg: "#cdd6f4", FgMuted: "#6c7086", Accent: "#b4befe",
		Pending: "#89b4fa", InProgress: "#f9e2af", Paused: "#cba6f7", Finished: "#a6e3a1",
		Unavailable: "#181825", Now: "#f38ba8", Warning: "#fab387", Conflict: "#f38ba8",
	},
	"macchiato": {
		Name: "macchiato", Bg: "#24273a", BgHighlight: "#363a4f", BgSelection: "#494d64",
		Fg: "#cad3f5", FgMuted: "#6e738d", Accent: "#b7bdf8",
		Pending: "#8aadf4", InProgress: "#eed49f", Paused: "#c6a0f6", Finished: "#a6da95",
		Unavailable: "#1e2030", Now: "#ed8796", Warning: "#f5a97f", Conflict: "#ed8796",
	},
	"frappe": {
		Name: "frappe", Bg: "#303446", BgHighlight: "#414559", BgSelection: "#51576d",
		Fg: "#c6d0f5", FgMuted: "#737994", Accent: "#babbf1",
		Pending: "#8caaee", InProgress: "#e5c890", Paused: "#ca9ee6", Finished: "#a6d189",
		Unavailable: "#292c3c", Now: "#e78284", Warning: "#ef9f76", Conflict: "#e78284",
	},
	"latte": {
		Name: "latte", Bg: "#eff1f5", BgHighlight: "#e6e9ef", BgSelection: "#ccd0da",
		Fg: "#4c4f69", FgMuted: "#9ca0b0", Accent: "#7287fd",
		Pending: "#1e66f5", InProgress: "#df8e1d", Paused: "#8839ef", Finished: "#40a02b",
		Unavailable: "#dce0e8", Now: "#d20f39", Warning: "#fe640b", Conflict: "#d20f39",
	},
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load returns a built-in theme by name.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = DefaultName
	}
	t, ok := builtin[strings.ToLower(name)]
	if !ok {
		t = builtin[DefaultName]
	}
	t.applyDefaults()
	return &t, nil
}

// LoadFile reads a TOML theme. Colors the file leaves empty come from its
// base theme.
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme: %w", err)
	}
	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", path, err)
	}
	if t.Base != "" && !IsAvailable(t.Base) {
		return nil, fmt.Errorf("theme %q: unknown base %q", path, t.Base)
	}
	base, _ := Load(t.Base)
	t.fillFrom(base)
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(path), ".toml")
	}
	t.applyDefaults()
	return &t, nil
}

// Resolve loads name as a file when it looks like a path and as a built-in
// theme otherwise.
func Resolve(name string) (*Theme, error) {
	if strings.HasSuffix(name, ".toml") {
		return LoadFile(name)
	}
	return Load(name)
}

// ModalPalette provides the modal-specific colors derived from the theme.
type ModalPalette struct {
	BaseBg      string
	ModalBorder string
	TextPrimary string
	TextMuted   string
	Highlight   string
}

// Modal returns the modal palette, falling back to base theme colors when needed.
func (t *Theme) Modal() ModalPalette {
	return ModalPalette{
		BaseBg:      coalesce(t.BaseBg, t.BgHighlight, t.Bg),
		ModalBorder: coalesce(t.ModalBorder, t.Accent),
		TextPrimary: coalesce(t.TextPrimary, t.Fg),
		TextMuted:   coalesce(t.TextMuted, t.FgMuted),
		Highlight:   coalesce(t.Highlight, t.BgSelection, t.Accent),
	}
}

func (t *Theme) fillFrom(base *Theme) {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&t.Bg, base.Bg)
	fill(&t.BgHighlight, base.BgHighlight)
	fill(&t.BgSelection, base.BgSelection)
	fill(&t.Fg, base.Fg)
	fill(&t.FgMuted, base.FgMuted)
	fill(&t.Accent, base.Accent)
	fill(&t.Pending, base.Pending)
	fill(&t.InProgress, base.InProgress)
	fill(&t.Paused, base.Paused)
	fill(&t.Finished, base.Finished)
	fill(&t.Unavailable, base.Unavailable)
	fill(&t.Now, base.Now)
	fill(&t.Warning, base.Warning)
	fill(&t.Conflict, base.Conflict)
	fill(&t.Base, base.Name)
}

func (t *Theme) applyDefaults() {
	if t.BaseBg == "" {
		t.BaseBg = coalesce(t.BgHighlight, t.Bg)
	}
	if t.ModalBorder == "" {
		t.ModalBorder = t.Accent
	}
	if t.TextPrimary == "" {
		t.TextPrimary = t.Fg
	}
	if t.TextMuted == "" {
		t.TextMuted = t.FgMuted
	}
	if t.Highlight == "" {
		t.Highlight = coalesce(t.BgSelection, t.Accent)
	}
	if t.Conflict == "" {
		t.Conflict = t.Warning
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns the built-in theme names.
func Available() []string {
	return []string{"mocha", "macchiato", "frappe", "latte"}
}

// IsAvailable reports whether a built-in theme name exists.
func IsAvailable(name string) bool {
	return slices.Contains(Available(), strings.ToLower(name))
}
