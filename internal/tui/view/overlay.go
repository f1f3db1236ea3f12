package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Fill places content at the top left of a w x h box and paints the unused
// cells with bg. Lines wider than w are left as they are.
func Fill(content string, w, h int, bg lipgloss.Color) string {
	if w <= 0 || h <= 0 {
		return content
	}
	pad := lipgloss.NewStyle().Background(bg)
	lines := strings.Split(content, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	for i, line := range lines {
		if gap := w - lipgloss.Width(line); gap > 0 {
			lines[i] = line + pad.Render(strings.Repeat(" ", gap))
		}
	}
	return strings.Join(lines, "\n")
}

// Overlay centers box over base, a w x h screen. Cells of base outside the
// box are kept, including their styling.
func Overlay(base, box string, w, h int, bg lipgloss.Color) string {
	boxLines := strings.Split(box, "\n")
	boxW := min(lipgloss.Width(box), w)
	if boxW == 0 {
		return base
	}
	top := max((h-len(boxLines))/2, 0)
	left := max((w-boxW)/2, 0)

	pad := lipgloss.NewStyle().Background(bg)
	screen := strings.Split(Fill(base, w, h, ""), "\n")
	for i, line := range boxLines {
		row := top + i
		if row >= len(screen) {
			break
		}
		if lw := lipgloss.Width(line); lw > boxW {
			line = ansi.Cut(line, 0, boxW)
		} else if lw < boxW {
			line += pad.Render(strings.Repeat(" ", boxW-lw))
		}
		line = keepBackground(line, bg) + ansi.ResetStyle
		screen[row] = ansi.Cut(screen[row], 0, left) + line + ansi.Cut(screen[row], left+boxW, w)
	}
	return strings.Join(screen, "\n")
}

// keepBackground re-opens bg after every reset inside line so nested styles
// do not punch holes in the box.
func keepBackground(line string, bg lipgloss.Color) string {
	if bg == "" {
		return line
	}
	seq := ansi.Style{}.BackgroundColor(ansi.HexColor(string(bg))).String()
	for _, reset := range []string{ansi.ResetStyle, "\x1b[0m", "\x1b[49m"} {
		line = strings.ReplaceAll(line, reset, reset+seq)
	}
	return line
}
