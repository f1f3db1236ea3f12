// Package view holds the rendering helpers the board screen is composed from.
package view

import "github.com/charmbracelet/lipgloss"

// ViewState is the rendered screen before the modal is laid over it.
type ViewState struct {
	Width       int
	Height      int
	Base        string
	Modal       string // empty when no modal is open
	ModalBg     lipgloss.Color
	Placeholder string
}

// Render composes the screen. Until the terminal size is known it returns
// the placeholder.
func Render(s ViewState) string {
	if s.Width == 0 || s.Height == 0 {
		if s.Placeholder == "" {
			return "Loading..."
		}
		return s.Placeholder
	}
	if s.Modal == "" {
		return s.Base
	}
	return Overlay(s.Base, s.Modal, s.Width, s.Height, s.ModalBg)
}
