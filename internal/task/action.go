package task

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownAction is returned for an action kind Apply does not handle.
var ErrUnknownAction = errors.New("unknown task action")

// ActionKind identifies a status or field change.
type ActionKind string

const (
	ActionUpdate  ActionKind = "update"
	ActionStart   ActionKind = "start"
	ActionPause   ActionKind = "pause"
	ActionFinish  ActionKind = "finish"
	ActionComment ActionKind = "comment"
)

// Patch carries the payload of an action. Nil fields are left unchanged.
type Patch struct {
	Description *string
	Kind        *string
	OrderID     *string
	Subtasks    []string
	Comment     string
}

// Apply mutates t according to the action.
func Apply(t *Task, kind ActionKind, p Patch) error {
	switch kind {
	case ActionUpdate:
		if p.Description != nil {
			t.Description = *p.Description
		}
		if p.Kind != nil {
			t.Kind = *p.Kind
		}
		if p.OrderID != nil {
			t.OrderID = *p.OrderID
		}
		if p.Subtasks != nil {
			t.Subtasks = slices.Clone(p.Subtasks)
		}
	case ActionStart:
		t.Status = StatusInProgress
	case ActionPause:
		t.Status = StatusPaused
	case ActionFinish:
		t.Status = StatusFinished
	case ActionComment:
		comment := strings.TrimSpace(p.Comment)
		if comment == "" {
			return errors.New("comment cannot be empty")
		}
		t.Comments = append(t.Comments, comment)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, kind)
	}
	return nil
}
