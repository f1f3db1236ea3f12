package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles are the styles of a modal box.
type ModalStyles struct {
	Box          lipgloss.Style
	Header       lipgloss.Style
	Title        lipgloss.Style
	Body         lipgloss.Style
	Footer       lipgloss.Style
	Button       lipgloss.Style
	ActiveButton lipgloss.Style
}

// Modal renders a titled box with body and a row of buttons. The button at
// index active is highlighted; pass -1 for none.
func Modal(title, body string, buttons []string, active int, s ModalStyles) string {
	parts := []string{s.Header.Render(s.Title.Render(title))}
	if body != "" {
		parts = append(parts, body)
	}
	if row := Buttons(s, active, buttons...); row != "" {
		parts = append(parts, s.Footer.Render(row))
	}
	return s.Box.Render(strings.Join(parts, "\n\n"))
}

// Buttons joins labels with a body-styled gap.
func Buttons(s ModalStyles, active int, labels ...string) string {
	out := make([]string, len(labels))
	for i, label := range labels {
		st := s.Button
		if i == active {
			st = s.ActiveButton
		}
		out[i] = st.Render(label)
	}
	return strings.Join(out, s.Body.Render(" "))
}
