package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterViewState holds the strings needed to render the footer section.
type FooterViewState struct {
	InnerW     int
	PromptLine string
	StatusLine string
	HelpLine   string
	Bg         lipgloss.Color
}

// RenderFooter renders prompt, status and help lines, skipping empty ones.
func RenderFooter(state FooterViewState) string {
	lines := make([]string, 0, 3)
	for _, l := range []string{state.PromptLine, state.StatusLine, state.HelpLine} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return Fill(strings.Join(lines, "\n"), state.InnerW, len(lines), state.Bg)
}

// FooterHeight returns the number of lines RenderFooter will produce.
func FooterHeight(state FooterViewState) int {
	n := 0
	for _, l := range []string{state.PromptLine, state.StatusLine, state.HelpLine} {
		if l != "" {
			n++
		}
	}
	return n
}
