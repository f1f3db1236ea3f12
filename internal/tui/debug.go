package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/javiermolinar/bayboard/internal/timeline"
)

// Debug events go through the board logger; they are only written when the
// logger runs at debug level.

func (m Model) logKey(msg tea.KeyMsg) {
	m.logger.WithFields(log.Fields{
		"key":    msg.String(),
		"mode":   m.mode.String(),
		"row":    m.row,
		"day":    m.day,
		"minute": timeline.FormatClock(m.minute),
	}).Debug("key")
}

func (m Model) logMode(from, to Mode, reason string) {
	if from == to {
		return
	}
	m.logger.WithFields(log.Fields{
		"from":   from.String(),
		"to":     to.String(),
		"reason": reason,
	}).Debug("mode change")
}

func (m Model) logGesture(event string) {
	start, end, held := m.ghost()
	m.logger.WithFields(log.Fields{
		"task":       m.preview.TaskID,
		"dx":         m.dx,
		"start":      timeline.FormatClock(start),
		"end":        timeline.FormatClock(end),
		"held":       held,
		"target_row": m.targetRow,
		"target_day": m.targetDay,
	}).Debug(event)
}

func (m Model) logError(context string, err error) {
	m.logger.WithError(err).WithField("context", context).Debug("tui error")
}

func (mode Mode) String() string {
	switch mode {
	case ModeNormal:
		return "normal"
	case ModeRelocate:
		return "relocate"
	case ModeResize:
		return "resize"
	case ModePrompt:
		return "prompt"
	case ModeModal:
		return "modal"
	default:
		return "unknown"
	}
}
