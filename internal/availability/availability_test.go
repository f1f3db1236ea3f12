package availability

import (
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/bayboard/internal/task"
	"github.com/javiermolinar/bayboard/internal/timeline"
)

var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

type recorder struct {
	issues []Issue
}

func (r *recorder) InconsistentAvailability(i Issue) {
	r.issues = append(r.issues, i)
}

func mechanic(wd ...task.WorkDay) *task.Resource {
	return &task.Resource{ID: "u1", Name: "Ana", WorkDays: wd}
}

func standardDay() task.WorkDay {
	return task.WorkDay{
		Weekday:      time.Monday,
		ShiftStart:   8 * 60,
		ShiftEnd:     17 * 60,
		LunchStart:   13 * 60,
		LunchMinutes: 30,
	}
}

func TestCalculator_Ranges(t *testing.T) {
	calc := New(timeline.DefaultConfig(), nil)
	got := calc.Ranges(mechanic(standardDay()), monday.Add(10*time.Hour))

	want := []Range{
		{ResourceID: "u1", Date: monday, Start: 420, End: 480, Kind: KindBeforeShift},
		{ResourceID: "u1", Date: monday, Start: 780, End: 810, Kind: KindLunch},
		{ResourceID: "u1", Date: monday, Start: 1020, End: 1200, Kind: KindAfterShift},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d ranges, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("range %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCalculator_Ranges_EmptyDropped(t *testing.T) {
	cfg := timeline.DefaultConfig()
	cfg.DayStart = 8 * 60
	cfg.DayEnd = 17 * 60
	wd := standardDay()
	wd.LunchMinutes = 0

	got := New(cfg, nil).Ranges(mechanic(wd), monday)
	if len(got) != 0 {
		t.Errorf("expected no ranges when the shift covers the day, got %v", got)
	}
}

func TestCalculator_OffDay(t *testing.T) {
	cfg := timeline.DefaultConfig()
	calc := New(cfg, nil)
	tuesday := monday.AddDate(0, 0, 1)

	got := calc.Disabled(mechanic(standardDay()), tuesday)
	if len(got) != 1 {
		t.Fatalf("expected one off-day range, got %v", got)
	}
	if got[0].Kind != KindOffDay || got[0].Start != cfg.DayStart || got[0].End != cfg.DayEnd {
		t.Errorf("unexpected off-day range %+v", got[0])
	}
}

func TestCalculator_Inconsistent(t *testing.T) {
	tests := []struct {
		name      string
		day       task.WorkDay
		wantKinds []Kind
		wantIssue string
	}{
		{
			name:      "empty shift is off",
			day:       task.WorkDay{Weekday: time.Monday, ShiftStart: 17 * 60, ShiftEnd: 8 * 60},
			wantKinds: []Kind{KindOffDay},
			wantIssue: "empty",
		},
		{
			name: "lunch after shift is ignored",
			day: task.WorkDay{
				Weekday: time.Monday, ShiftStart: 8 * 60, ShiftEnd: 12 * 60,
				LunchStart: 13 * 60, LunchMinutes: 30,
			},
			wantKinds: []Kind{KindBeforeShift, KindAfterShift},
			wantIssue: "outside shift",
		},
		{
			name: "lunch crossing shift end is ignored",
			day: task.WorkDay{
				Weekday: time.Monday, ShiftStart: 8 * 60, ShiftEnd: 13 * 60,
				LunchStart: 12*60 + 45, LunchMinutes: 30,
			},
			wantKinds: []Kind{KindBeforeShift, KindAfterShift},
			wantIssue: "outside shift",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			got := New(timeline.DefaultConfig(), rec).Ranges(mechanic(tt.day), monday)

			if len(got) != len(tt.wantKinds) {
				t.Fatalf("got %v, want kinds %v", got, tt.wantKinds)
			}
			for i, k := range tt.wantKinds {
				if got[i].Kind != k {
					t.Errorf("range %d kind = %s, want %s", i, got[i].Kind, k)
				}
			}
			if len(rec.issues) != 1 {
				t.Fatalf("expected one issue, got %d", len(rec.issues))
			}
			if !strings.Contains(rec.issues[0].Reason, tt.wantIssue) {
				t.Errorf("issue reason %q does not mention %q", rec.issues[0].Reason, tt.wantIssue)
			}
			if rec.issues[0].ResourceID != "u1" {
				t.Errorf("issue resource = %q", rec.issues[0].ResourceID)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	r := func(start, end int, kind Kind) Range {
		return Range{ResourceID: "u1", Date: monday, Start: start, End: end, Kind: kind}
	}

	tests := []struct {
		name string
		in   []Range
		want [][2]int
	}{
		{name: "empty", in: nil, want: nil},
		{
			name: "adjacent ranges merge",
			in:   []Range{r(0, 480, KindBeforeShift), r(480, 510, KindLunch)},
			want: [][2]int{{0, 510}},
		},
		{
			name: "disjoint ranges stay apart",
			in:   []Range{r(0, 480, KindBeforeShift), r(600, 660, KindLunch)},
			want: [][2]int{{0, 480}, {600, 660}},
		},
		{
			name: "unsorted input",
			in:   []Range{r(600, 660, KindLunch), r(0, 480, KindBeforeShift), r(450, 500, KindLunch)},
			want: [][2]int{{0, 500}, {600, 660}},
		},
		{
			name: "contained range",
			in:   []Range{r(0, 600, KindBeforeShift), r(100, 200, KindLunch)},
			want: [][2]int{{0, 600}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Merge() = %v, want %v", got, tt.want)
			}
			for i, w := range tt.want {
				if got[i].Start != w[0] || got[i].End != w[1] {
					t.Errorf("range %d = [%d,%d), want [%d,%d)", i, got[i].Start, got[i].End, w[0], w[1])
				}
			}
		})
	}
}

func TestMerge_KeepsFirstKindAndDoesNotCrossDays(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)
	in := []Range{
		{Date: tuesday, Start: 0, End: 100, Kind: KindOffDay},
		{Date: monday, Start: 480, End: 510, Kind: KindLunch},
		{Date: monday, Start: 0, End: 480, Kind: KindBeforeShift},
	}
	got := Merge(in)
	if len(got) != 2 {
		t.Fatalf("Merge() = %v", got)
	}
	if !got[0].Date.Equal(monday) || got[0].Kind != KindBeforeShift || got[0].End != 510 {
		t.Errorf("first = %+v", got[0])
	}
	if !got[1].Date.Equal(tuesday) {
		t.Errorf("second = %+v", got[1])
	}
	if in[0].Date != tuesday {
		t.Error("Merge must not reorder its input")
	}
}

func TestCalculator_MergeIsIdempotent(t *testing.T) {
	calc := New(timeline.DefaultConfig(), nil)
	once := calc.Disabled(mechanic(standardDay()), monday)
	twice := Merge(once)
	if len(once) != len(twice) {
		t.Fatalf("merge not idempotent: %v vs %v", once, twice)
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("range %d changed: %v vs %v", i, once[i], twice[i])
		}
	}
}

func TestIntersects(t *testing.T) {
	calc := New(timeline.DefaultConfig(), nil)
	disabled := calc.Disabled(mechanic(standardDay()), monday)

	tests := []struct {
		name       string
		start, end int
		want       bool
	}{
		{"morning inside shift", 9 * 60, 10 * 60, false},
		{"touches lunch start", 12 * 60, 13 * 60, false},
		{"crosses lunch", 13 * 60, 14 * 60, true},
		{"starts at lunch end", 13*60 + 30, 14*60 + 30, false},
		{"before shift", 7 * 60, 8 * 60, true},
		{"runs past shift end", 16 * 60, 17*60 + 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intersects(disabled, tt.start, tt.end); got != tt.want {
				t.Errorf("Intersects(%d, %d) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}

	r, ok := FirstConflict(disabled, 13*60, 14*60)
	if !ok || r.Kind != KindLunch {
		t.Errorf("FirstConflict() = %+v, %v", r, ok)
	}
}

func TestCalculator_Window(t *testing.T) {
	calc := New(timeline.DefaultConfig(), nil)
	dates := []time.Time{monday, monday.AddDate(0, 0, 1)}
	got := calc.Window(mechanic(standardDay()), dates)

	if len(On(got, monday)) != 3 {
		t.Errorf("monday ranges = %v", On(got, monday))
	}
	tue := On(got, dates[1])
	if len(tue) != 1 || tue[0].Kind != KindOffDay {
		t.Errorf("tuesday ranges = %v", tue)
	}
}
