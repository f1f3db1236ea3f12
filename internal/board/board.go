// Package board wires the timeline engines to a task collection and exposes
// the callbacks a renderer or CLI drives.
package board

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/javiermolinar/bayboard/internal/availability"
	"github.com/javiermolinar/bayboard/internal/dateutil"
	"github.com/javiermolinar/bayboard/internal/diag"
	"github.com/javiermolinar/bayboard/internal/gesture"
	"github.com/javiermolinar/bayboard/internal/layout"
	"github.com/javiermolinar/bayboard/internal/rows"
	"github.com/javiermolinar/bayboard/internal/task"
	"github.com/javiermolinar/bayboard/internal/timeline"
)

// Quick-create refusals.
var (
	ErrCellUnavailable = errors.New("cell falls in an unavailable range")
	ErrCellOccupied    = errors.New("a task already starts in this hour")
	ErrHourOutOfRange  = errors.New("hour is outside the board")
)

// TimingFunc is invoked after a gesture commits.
type TimingFunc func(taskID string, t timeline.Timing)

// ActionFunc is invoked after a status or field change.
type ActionFunc func(taskID string, kind task.ActionKind, p task.Patch)

// CreateFunc is invoked after a quick-create adds a task.
type CreateFunc func(t *task.Task)

// Options configures a Board.
type Options struct {
	Config      timeline.Config
	Layout      *task.Board
	Tasks       []*task.Task
	Diagnostics availability.Diagnostics
	Logger      log.FieldLogger
	OnTiming    TimingFunc
	OnAction    ActionFunc
	OnCreate    CreateFunc
	Now         func() time.Time
	NewID       func() string
}

// Board owns the task collection and the single gesture controller.
// It is not safe for concurrent use.
type Board struct {
	cfg      timeline.Config
	mapper   timeline.Mapper
	layout   *task.Board
	store    *task.MemStore
	calc     *availability.Calculator
	gestures *gesture.Controller
	logger   log.FieldLogger

	onTiming TimingFunc
	onAction ActionFunc
	onCreate CreateFunc
	now      func() time.Time
	newID    func() string
}

// New validates the configuration and tasks and returns a ready board.
func New(opts Options) (*Board, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("timeline config: %w", err)
	}
	if opts.Layout == nil {
		opts.Layout = &task.Board{}
	}
	for _, t := range opts.Tasks {
		if _, ok := opts.Layout.Resource(t.ResourceID); !ok {
			return nil, fmt.Errorf("task %s: %w: %s", t.ID, task.ErrUnknownResource, t.ResourceID)
		}
	}
	store, err := task.NewMemStore(opts.Tasks...)
	if err != nil {
		return nil, err
	}

	b := &Board{
		cfg:      opts.Config,
		mapper:   opts.Config.Mapper(),
		layout:   opts.Layout,
		store:    store,
		calc:     availability.New(opts.Config, opts.Diagnostics),
		logger:   opts.Logger,
		onTiming: opts.OnTiming,
		onAction: opts.OnAction,
		onCreate: opts.OnCreate,
		now:      opts.Now,
		newID:    opts.NewID,
	}
	if b.logger == nil {
		b.logger = diag.Discard()
	}
	if b.now == nil {
		b.now = time.Now
	}
	if b.newID == nil {
		b.newID = uuid.NewString
	}
	b.gestures = gesture.NewController(opts.Config, b.calc, opts.Layout)
	return b, nil
}

// Config returns the timeline configuration.
func (b *Board) Config() timeline.Config { return b.cfg }

// Mapper returns the coordinate mapper.
func (b *Board) Mapper() timeline.Mapper { return b.mapper }

// Layout returns the sections and resources.
func (b *Board) Layout() *task.Board { return b.layout }

// Calculator returns the availability calculator.
func (b *Board) Calculator() *availability.Calculator { return b.calc }

// Tasks returns every task in insertion order.
func (b *Board) Tasks() []*task.Task { return b.store.List() }

// Task returns a task by id.
func (b *Board) Task(id string) (*task.Task, error) { return b.store.Get(id) }

// Rows builds the view models for w.
func (b *Board) Rows(w dateutil.Window) []rows.Row {
	return rows.Build(b.layout, b.store.List(), b.calc, w)
}

// Geometry lays out the row's tasks on date.
func (b *Board) Geometry(r rows.Row, date time.Time) []layout.Geometry {
	return layout.Place(r.TasksOn(date), b.cfg, b.mapper)
}

// Gesture returns the kind of the running gesture.
func (b *Board) Gesture() gesture.Kind { return b.gestures.Active() }

// GestureSnapshot returns the captured state of the running gesture.
func (b *Board) GestureSnapshot() (gesture.Snapshot, bool) { return b.gestures.Snapshot() }

// BeginRelocate starts dragging a task.
func (b *Board) BeginRelocate(taskID string) error {
	t, err := b.store.Get(taskID)
	if err != nil {
		return err
	}
	if err := b.gestures.BeginRelocate(t); err != nil {
		return err
	}
	b.logger.WithFields(log.Fields{"task": taskID, "gesture": "relocate"}).Debug("gesture begin")
	return nil
}

// BeginResize starts moving one edge of a task.
func (b *Board) BeginResize(taskID string, edge gesture.Edge) error {
	t, err := b.store.Get(taskID)
	if err != nil {
		return err
	}
	if err := b.gestures.BeginResize(t, edge); err != nil {
		return err
	}
	b.logger.WithFields(log.Fields{"task": taskID, "gesture": "resize", "edge": edge}).Debug("gesture begin")
	return nil
}

// Move forwards pointer travel to the running gesture.
func (b *Board) Move(dx float64) (gesture.Preview, error) {
	return b.gestures.Move(dx)
}

// Cancel abandons the running gesture.
func (b *Board) Cancel() {
	if snap, ok := b.gestures.Snapshot(); ok {
		b.logger.WithField("task", snap.TaskID).Debug("gesture cancelled")
	}
	b.gestures.Cancel()
}

// End releases the running gesture and applies a committed outcome to the
// task collection before invoking OnTiming.
func (b *Board) End(d gesture.Drop) (gesture.Outcome, error) {
	out, err := b.gestures.End(d)
	if err != nil {
		return out, err
	}

	entry := b.logger.WithFields(log.Fields{
		"task":      out.TaskID,
		"gesture":   out.Kind.String(),
		"committed": out.Committed,
		"timing":    out.Timing.String(),
		"resource":  out.ResourceID,
		"reasons":   out.Reasons,
	})
	if !out.Committed {
		entry.Info("gesture reverted")
		return out, nil
	}

	if err := b.apply(out); err != nil {
		return out, err
	}
	entry.Info("gesture committed")
	if b.onTiming != nil {
		b.onTiming(out.TaskID, out.Timing)
	}
	return out, nil
}

func (b *Board) apply(out gesture.Outcome) error {
	t, err := b.store.Get(out.TaskID)
	if err != nil {
		return err
	}
	next := t.Clone()
	switch out.Kind {
	case gesture.KindRelocate:
		next.MoveTo(out.Date, out.Timing.Start(), out.Timing.End())
		next.ResourceID = out.ResourceID
		next.SectionID = out.SectionID
	default:
		next.ApplyTiming(out.Timing)
	}
	next.UpdatedAt = b.now()
	return b.store.Put(next)
}

// Act applies a status or field change and invokes OnAction.
func (b *Board) Act(taskID string, kind task.ActionKind, p task.Patch) error {
	t, err := b.store.Get(taskID)
	if err != nil {
		return err
	}
	next := t.Clone()
	if err := task.Apply(next, kind, p); err != nil {
		return err
	}
	next.UpdatedAt = b.now()
	if err := b.store.Put(next); err != nil {
		return err
	}
	b.logger.WithFields(log.Fields{"task": taskID, "action": kind, "status": next.Status}).Info("task action")
	if b.onAction != nil {
		b.onAction(taskID, kind, p)
	}
	return nil
}
