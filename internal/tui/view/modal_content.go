package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TaskDetailModel contains the fields needed to render the task detail body.
type TaskDetailModel struct {
	Description string
	OrderID     string
	Kind        string
	Resource    string
	TimeRange   string
	DateLabel   string
	StatusLabel string
	Subtasks    []string
	Comments    []string
}

// TaskDetailStyles groups styles for the task detail body.
type TaskDetailStyles struct {
	BodyStyle  lipgloss.Style
	LabelStyle lipgloss.Style
	MetaStyle  lipgloss.Style
}

// RenderTaskDetailBody renders the modal body for task details.
func RenderTaskDetailBody(model TaskDetailModel, styles TaskDetailStyles) string {
	var body strings.Builder

	body.WriteString(" " + styles.BodyStyle.Render(model.Description) + "\n\n")
	field := func(label, value string) {
		if value == "" {
			return
		}
		body.WriteString(styles.LabelStyle.Render(" "+label) + styles.BodyStyle.Render(value) + "\n")
	}
	field("Order:", model.OrderID)
	field("Kind:", model.Kind)
	field("Resource:", model.Resource)
	field("Time:", model.TimeRange)
	field("Date:", model.DateLabel)
	field("Status:", model.StatusLabel)

	list := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		body.WriteString("\n" + styles.LabelStyle.Render(" "+title) + "\n")
		for _, item := range items {
			body.WriteString(styles.MetaStyle.Render("   • "+item) + "\n")
		}
	}
	list("Subtasks", model.Subtasks)
	list("Comments", model.Comments)

	return strings.TrimRight(body.String(), "\n")
}
