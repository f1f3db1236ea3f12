// Package gesture implements the relocate and resize gestures as an explicit
// begin/move/end/cancel state machine. At most one gesture is active at a
// time; the Controller is not safe for concurrent use.
package gesture

import (
	"errors"
	"time"

	"github.com/javiermolinar/bayboard/internal/availability"
	"github.com/javiermolinar/bayboard/internal/task"
	"github.com/javiermolinar/bayboard/internal/timeline"
)

// Controller errors.
var (
	ErrGestureActive = errors.New("a gesture is already active")
	ErrNoGesture     = errors.New("no active gesture")
	ErrNilTask       = errors.New("gesture needs a task")
	ErrInvalidEdge   = errors.New("edge must be start or end")
)

// Kind identifies the active gesture.
type Kind int

const (
	KindNone Kind = iota
	KindRelocate
	KindResize
)

func (k Kind) String() string {
	switch k {
	case KindRelocate:
		return "relocate"
	case KindResize:
		return "resize"
	default:
		return "none"
	}
}

// Edge selects the task boundary a resize gesture moves.
type Edge string

const (
	EdgeStart Edge = "start"
	EdgeEnd   Edge = "end"
)

// ParseEdge converts "start" or "end" to an Edge.
func ParseEdge(s string) (Edge, error) {
	switch Edge(s) {
	case EdgeStart, EdgeEnd:
		return Edge(s), nil
	default:
		return "", ErrInvalidEdge
	}
}

// Reason annotates how an outcome was reached. Reasons are informational;
// an outcome is never an error.
type Reason string

const (
	// ReasonConflict means a candidate intersected a disabled range.
	ReasonConflict Reason = "conflict"
	// ReasonClamped means a candidate was pulled back inside the day bounds
	// or the minimum duration.
	ReasonClamped Reason = "clamped"
	// ReasonFallbackTarget means the drop target could not be used and the
	// original date or resource was kept.
	ReasonFallbackTarget Reason = "fallback_target"
)

// Snapshot is the task state captured when a gesture begins.
type Snapshot struct {
	TaskID     string
	Start      int
	End        int
	ResourceID string
	SectionID  string
	Date       time.Time
}

// Duration returns the snapshot length in minutes.
func (s Snapshot) Duration() int {
	return s.End - s.Start
}

// Timing returns the snapshot clock interval.
func (s Snapshot) Timing() timeline.Timing {
	return timeline.TimingFromMinutes(s.Start, s.End)
}

// Drop describes the pointer release of a gesture: the encoded target under
// the pointer and the horizontal travel since begin.
type Drop struct {
	TargetID string
	Dx       float64
}

// Preview is the live visual state of the active gesture.
type Preview struct {
	Kind   Kind
	TaskID string
	Left   float64
	Width  float64
	Start  int // candidate start minute
	End    int // candidate end minute
	Held   bool
}

// Outcome is the result of ending a gesture. When Committed is false the
// fields carry the original snapshot.
type Outcome struct {
	Kind       Kind
	TaskID     string
	Committed  bool
	Timing     timeline.Timing
	Date       time.Time
	ResourceID string
	SectionID  string
	Conflict   *availability.Range
	Reasons    []Reason
}

// Has reports whether the outcome carries r.
func (o Outcome) Has(r Reason) bool {
	for _, x := range o.Reasons {
		if x == r {
			return true
		}
	}
	return false
}

// Controller drives one gesture at a time against a board.
type Controller struct {
	cfg    timeline.Config
	mapper timeline.Mapper
	calc   *availability.Calculator
	board  *task.Board

	kind Kind
	snap Snapshot
	dx   float64

	// resize state
	edge      Edge
	disabled  []availability.Range
	lastStart int
	lastEnd   int
	held      bool
	clamped   bool
}

// NewController creates an idle controller.
func NewController(cfg timeline.Config, calc *availability.Calculator, board *task.Board) *Controller {
	return &Controller{
		cfg:    cfg,
		mapper: cfg.Mapper(),
		calc:   calc,
		board:  board,
	}
}

// Active returns the kind of the running gesture, KindNone when idle.
func (c *Controller) Active() Kind {
	return c.kind
}

// Snapshot returns the captured state of the running gesture.
func (c *Controller) Snapshot() (Snapshot, bool) {
	return c.snap, c.kind != KindNone
}

// Edge returns the edge of the running resize gesture.
func (c *Controller) Edge() Edge {
	return c.edge
}

func (c *Controller) begin(t *task.Task, kind Kind) error {
	if c.kind != KindNone {
		return ErrGestureActive
	}
	if t == nil {
		return ErrNilTask
	}
	c.kind = kind
	c.dx = 0
	c.snap = Snapshot{
		TaskID:     t.ID,
		Start:      t.StartMinute(),
		End:        t.EndMinute(),
		ResourceID: t.ResourceID,
		SectionID:  t.SectionID,
		Date:       t.Date(),
	}
	return nil
}

// Move records the pointer travel since begin and returns the preview.
func (c *Controller) Move(dx float64) (Preview, error) {
	switch c.kind {
	case KindRelocate:
		return c.moveRelocate(dx), nil
	case KindResize:
		return c.moveResize(dx), nil
	default:
		return Preview{}, ErrNoGesture
	}
}

// End releases the pointer and returns the outcome. Resize gestures ignore
// the drop: the last accepted movement already holds the candidate.
func (c *Controller) End(d Drop) (Outcome, error) {
	var out Outcome
	switch c.kind {
	case KindRelocate:
		out = c.endRelocate(d)
	case KindResize:
		out = c.endResize()
	default:
		return Outcome{}, ErrNoGesture
	}
	c.reset()
	return out, nil
}

// Cancel abandons the running gesture without producing an outcome.
// Calling Cancel while idle is a no-op.
func (c *Controller) Cancel() {
	c.reset()
}

func (c *Controller) reset() {
	c.kind = KindNone
	c.snap = Snapshot{}
	c.dx = 0
	c.edge = ""
	c.disabled = nil
	c.lastStart, c.lastEnd = 0, 0
	c.held = false
	c.clamped = false
}

func (c *Controller) resource(id string) *task.Resource {
	if c.board == nil {
		return nil
	}
	r, _ := c.board.Resource(id)
	return r
}
