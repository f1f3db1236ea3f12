package board

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/javiermolinar/bayboard/internal/dateutil"
	"github.com/javiermolinar/bayboard/internal/gesture"
	"github.com/javiermolinar/bayboard/internal/task"
	"github.com/javiermolinar/bayboard/internal/timeline"
)

var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

type recorder struct {
	timings []string
	actions []task.ActionKind
	created []string
}

func newTestBoard(t *testing.T) (*Board, *recorder) {
	t.Helper()
	layout, tasks := Sample(monday)
	rec := &recorder{}
	ids := 0
	b, err := New(Options{
		Config: timeline.DefaultConfig(),
		Layout: layout,
		Tasks:  tasks,
		OnTiming: func(id string, tm timeline.Timing) {
			rec.timings = append(rec.timings, id+" "+tm.String())
		},
		OnAction: func(id string, kind task.ActionKind, _ task.Patch) {
			rec.actions = append(rec.actions, kind)
		},
		OnCreate: func(t *task.Task) {
			rec.created = append(rec.created, t.ID)
		},
		Now: func() time.Time { return monday.Add(8 * time.Hour) },
		NewID: func() string {
			ids++
			return fmt.Sprintf("new-%d", ids)
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b, rec
}

func TestNew_RejectsUnknownResource(t *testing.T) {
	layout, tasks := Sample(monday)
	tasks[0].ResourceID = "ghost"
	_, err := New(Options{Config: timeline.DefaultConfig(), Layout: layout, Tasks: tasks})
	if !errors.Is(err, task.ErrUnknownResource) {
		t.Errorf("New() = %v, want ErrUnknownResource", err)
	}
}

func TestNew_RejectsBadConfig(t *testing.T) {
	cfg := timeline.DefaultConfig()
	cfg.SnapMinutes = 7
	if _, err := New(Options{Config: cfg}); err == nil {
		t.Error("expected config error")
	}
}

func TestBoard_RelocateCommitUpdatesStore(t *testing.T) {
	b, rec := newTestBoard(t)

	if err := b.BeginRelocate("t5"); err != nil {
		t.Fatal(err)
	}
	// carla 10:00-12:00 dropped on ana's row one hour earlier
	drop := gesture.Drop{
		TargetID: gesture.EncodeTarget(gesture.Target{Date: monday, Hour: 9, ResourceID: "ana"}),
		Dx:       -120,
	}
	out, err := b.End(drop)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Committed {
		t.Fatalf("expected commit, got %+v", out)
	}

	got, _ := b.Task("t5")
	if got.ResourceID != "ana" || got.SectionID != "shop" {
		t.Errorf("task placement = %s/%s", got.ResourceID, got.SectionID)
	}
	if got.StartMinute() != 9*60 || got.EndMinute() != 11*60 {
		t.Errorf("task timing = %s", got.Timing())
	}
	if len(rec.timings) != 1 || rec.timings[0] != "t5 09:00-11:00" {
		t.Errorf("OnTiming calls = %v", rec.timings)
	}
	if b.Gesture() != gesture.KindNone {
		t.Error("gesture should be idle")
	}
}

func TestBoard_RelocateRejectLeavesStore(t *testing.T) {
	b, rec := newTestBoard(t)
	before, _ := b.Task("t1")

	_ = b.BeginRelocate("t1")
	// +4h puts the oil change on ana's lunch
	out, _ := b.End(gesture.Drop{
		TargetID: gesture.EncodeTarget(gesture.Target{Date: monday, Hour: 13, ResourceID: "ana"}),
		Dx:       480,
	})
	if out.Committed {
		t.Fatalf("expected revert, got %+v", out)
	}
	after, _ := b.Task("t1")
	if after != before || after.StartMinute() != 9*60 {
		t.Error("task should be untouched")
	}
	if len(rec.timings) != 0 {
		t.Errorf("OnTiming should not fire on revert: %v", rec.timings)
	}
}

func TestBoard_Resize(t *testing.T) {
	b, rec := newTestBoard(t)

	if err := b.BeginResize("t1", gesture.EdgeEnd); err != nil {
		t.Fatal(err)
	}
	if err := b.BeginRelocate("t2"); !errors.Is(err, gesture.ErrGestureActive) {
		t.Errorf("second gesture = %v, want ErrGestureActive", err)
	}
	if _, err := b.Move(60); err != nil {
		t.Fatal(err)
	}
	if _, err := b.End(gesture.Drop{}); err != nil {
		t.Fatal(err)
	}

	got, _ := b.Task("t1")
	if got.EndMinute() != 10*60+30 || !got.Start.Equal(timeline.At(monday, 9*60)) {
		t.Errorf("task timing = %s", got.Timing())
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be set")
	}
	if len(rec.timings) != 1 {
		t.Errorf("OnTiming calls = %v", rec.timings)
	}
}

func TestBoard_CancelDoesNotMutate(t *testing.T) {
	b, rec := newTestBoard(t)
	_ = b.BeginRelocate("t1")
	_, _ = b.Move(300)
	b.Cancel()

	got, _ := b.Task("t1")
	if got.StartMinute() != 9*60 || len(rec.timings) != 0 {
		t.Error("cancel should leave the task untouched")
	}
	if _, err := b.End(gesture.Drop{}); !errors.Is(err, gesture.ErrNoGesture) {
		t.Errorf("End after cancel = %v", err)
	}
}

func TestBoard_Act(t *testing.T) {
	b, rec := newTestBoard(t)

	if err := b.Act("t1", task.ActionStart, task.Patch{}); err != nil {
		t.Fatal(err)
	}
	if err := b.Act("t1", task.ActionComment, task.Patch{Comment: "needs filter"}); err != nil {
		t.Fatal(err)
	}
	got, _ := b.Task("t1")
	if got.Status != task.StatusInProgress || len(got.Comments) != 1 {
		t.Errorf("task = %+v", got)
	}
	if len(rec.actions) != 2 || rec.actions[0] != task.ActionStart {
		t.Errorf("OnAction calls = %v", rec.actions)
	}

	if err := b.Act("nope", task.ActionStart, task.Patch{}); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("Act(unknown) = %v", err)
	}
	if err := b.Act("t1", task.ActionComment, task.Patch{}); err == nil {
		t.Error("expected error for empty comment")
	}
	if len(rec.actions) != 2 {
		t.Error("failed actions must not invoke OnAction")
	}
}

func TestBoard_QuickCreate(t *testing.T) {
	tests := []struct {
		name    string
		cell    Cell
		wantErr error
	}{
		{name: "free hour", cell: Cell{ResourceID: "ana", Date: monday, Hour: 11}},
		{name: "before shift", cell: Cell{ResourceID: "ana", Date: monday, Hour: 7, Minute: 30}, wantErr: ErrCellUnavailable},
		{name: "click on lunch", cell: Cell{ResourceID: "ana", Date: monday, Hour: 13, Minute: 10}, wantErr: ErrCellUnavailable},
		{name: "hour already has a start", cell: Cell{ResourceID: "ana", Date: monday, Hour: 9, Minute: 45}, wantErr: ErrCellOccupied},
		{name: "off day", cell: Cell{ResourceID: "ana", Date: monday.AddDate(0, 0, 5), Hour: 10}, wantErr: ErrCellUnavailable},
		{name: "unknown resource", cell: Cell{ResourceID: "ghost", Date: monday, Hour: 10}, wantErr: task.ErrUnknownResource},
		{name: "outside board", cell: Cell{ResourceID: "ana", Date: monday, Hour: 21}, wantErr: ErrHourOutOfRange},
		{name: "free click but hour runs into lunch", cell: Cell{ResourceID: "ben", Date: monday, Hour: 12, Minute: 50}, wantErr: ErrCellUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, rec := newTestBoard(t)
			got, err := b.QuickCreate(tt.cell, "walk-in")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("QuickCreate() = %v, want %v", err, tt.wantErr)
				}
				if len(rec.created) != 0 {
					t.Error("refused create must not invoke OnCreate")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != "new-1" || got.Status != task.StatusPending || got.SectionID != "shop" {
				t.Errorf("task = %+v", got)
			}
			if got.StartMinute() != 11*60 || got.Duration() != 60 {
				t.Errorf("timing = %s", got.Timing())
			}
			if _, err := b.Task("new-1"); err != nil {
				t.Error("created task should be stored")
			}
			if len(rec.created) != 1 || rec.created[0] != "new-1" {
				t.Errorf("OnCreate calls = %v", rec.created)
			}
		})
	}
}

func TestBoard_RowsAndGeometry(t *testing.T) {
	b, _ := newTestBoard(t)
	rs := b.Rows(dateutil.NewWindow(monday, 1))
	if len(rs) != 3 || rs[0].Resource.ID != "ana" {
		t.Fatalf("rows = %d", len(rs))
	}

	geo := b.Geometry(rs[0], monday)
	if len(geo) != 3 {
		t.Fatalf("geometry = %+v", geo)
	}
	// oil change and brake pads overlap
	if geo[0].StackCount != 2 || geo[1].StackIndex != 1 || geo[2].StackCount != 1 {
		t.Errorf("stacking = %+v", geo)
	}
	if len(b.Disabled("ana", monday)) != 3 {
		t.Errorf("disabled = %v", b.Disabled("ana", monday))
	}
}

func TestBoard_QuickCreateRefusesPastDayEnd(t *testing.T) {
	cfg := timeline.DefaultConfig()
	cfg.DayEnd = 14*60 + 30
	layout, _ := Sample(monday)
	b, err := New(Options{Config: cfg, Layout: layout})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// ben works until 15:00, so only the day end stops a 14:00-15:00 task
	if _, err := b.QuickCreate(Cell{ResourceID: "ben", Date: monday, Hour: 14}, "late"); !errors.Is(err, ErrCellUnavailable) {
		t.Errorf("QuickCreate() = %v, want %v", err, ErrCellUnavailable)
	}
	if _, err := b.QuickCreate(Cell{ResourceID: "ben", Date: monday, Hour: 13}, "fits"); err != nil {
		t.Errorf("QuickCreate(13:00) = %v", err)
	}
}

func TestBoard_ResizeTaskEndingAtMidnight(t *testing.T) {
	cfg := timeline.DefaultConfig()
	cfg.DayStart, cfg.DayEnd = 0, timeline.MinutesPerDay
	night := &task.Resource{ID: "night", Name: "Night shift", WorkDays: []task.WorkDay{
		{Weekday: time.Monday, ShiftStart: 0, ShiftEnd: timeline.MinutesPerDay},
	}}
	layout := &task.Board{Sections: []*task.Section{{ID: "yard", Name: "Yard", Resources: []*task.Resource{night}}}}
	late := &task.Task{
		ID: "late", ResourceID: "night", SectionID: "yard", Status: task.StatusPending,
		Start: time.Date(2025, 1, 6, 23, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC),
	}
	b, err := New(Options{Config: cfg, Layout: layout, Tasks: []*task.Task{late}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	wantEnd := time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)
	steps := []struct {
		dx        float64
		wantStart time.Time
	}{
		{dx: -120, wantStart: time.Date(2025, 1, 6, 22, 0, 0, 0, time.UTC)},
		{dx: 60, wantStart: time.Date(2025, 1, 6, 22, 30, 0, 0, time.UTC)},
	}
	for _, s := range steps {
		if err := b.BeginResize("late", gesture.EdgeStart); err != nil {
			t.Fatal(err)
		}
		if _, err := b.Move(s.dx); err != nil {
			t.Fatal(err)
		}
		out, err := b.End(gesture.Drop{})
		if err != nil {
			t.Fatal(err)
		}
		if !out.Committed {
			t.Fatalf("outcome = %+v", out)
		}
		got, _ := b.Task("late")
		if !got.Start.Equal(s.wantStart) || !got.End.Equal(wantEnd) {
			t.Fatalf("after dx %v: task = %v - %v, want %v - %v", s.dx, got.Start, got.End, s.wantStart, wantEnd)
		}
	}
}
