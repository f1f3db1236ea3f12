package ui

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/bayboard/internal/board"
	"github.com/javiermolinar/bayboard/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Board.Path = filepath.Join(dir, "board.toml")
	cfg.Log.Path = filepath.Join(dir, "debug.log")
	return cfg
}

func run(cfg *config.Config, args ...string) (string, error) {
	var out bytes.Buffer
	a := NewApp(cfg)
	a.root.SetOut(&out)
	a.root.SetErr(&out)
	a.root.SetArgs(append([]string{"--no-color"}, args...))
	err := a.Execute()
	return out.String(), err
}

func initBoard(t *testing.T, cfg *config.Config) {
	t.Helper()
	if out, err := run(cfg, "init", "--date", "2025-01-06"); err != nil {
		t.Fatalf("init: %v\n%s", err, out)
	}
}

func TestInit(t *testing.T) {
	cfg := testConfig(t)
	initBoard(t, cfg)

	layout, tasks, err := board.LoadFile(cfg.Board.Path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(layout.Sections) != 2 || len(tasks) != 5 {
		t.Fatalf("sections = %d tasks = %d", len(layout.Sections), len(tasks))
	}

	if _, err := run(cfg, "init"); !errors.Is(err, ErrBoardExists) {
		t.Fatalf("second init error = %v, want ErrBoardExists", err)
	}
	if _, err := run(cfg, "init", "--force"); err != nil {
		t.Fatalf("init --force: %v", err)
	}
}

func TestRows(t *testing.T) {
	cfg := testConfig(t)
	initBoard(t, cfg)

	out, err := run(cfg, "rows", "--date", "2025-01-06", "--geometry")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	for _, want := range []string{
		"ROWS: 2025-01-06",
		"WORKSHOP",
		"Ana Ruiz",
		"13:00-13:30  lunch",
		"09:00-10:00",
		"Oil change",
		"[1/2]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rows output missing %q\n%s", want, out)
		}
	}
}

func TestRows_Summary(t *testing.T) {
	cfg := testConfig(t)
	initBoard(t, cfg)

	out, err := run(cfg, "rows", "--date", "2025-01-06", "--summary")
	if err != nil {
		t.Fatalf("rows --summary: %v", err)
	}
	for _, want := range []string{"LOAD", "4h00 booked", "8h30 open", "3 tasks", "Total"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q\n%s", want, out)
		}
	}
}

func TestRows_MissingBoard(t *testing.T) {
	cfg := testConfig(t)
	if _, err := run(cfg, "rows"); err == nil {
		t.Fatal("expected error for a missing board file")
	}
}

func TestDrag(t *testing.T) {
	cfg := testConfig(t)
	initBoard(t, cfg)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "to another operator",
			args: []string{"drag", "t5", "--by", "-1h", "--to", "ana"},
			want: []string{"committed", "on_timing t5 09:00-11:00", "(ana)"},
		},
		{
			name: "into lunch",
			args: []string{"drag", "t1", "--by", "4h"},
			want: []string{"reverted", "conflict", "lunch"},
		},
		{
			name: "past the end of the day",
			args: []string{"drag", "t3", "--by", "8h"},
			want: []string{"reverted", "clamped"},
		},
		{
			name: "malformed target",
			args: []string{"drag", "t2", "--dx", "60", "--target", "garbage"},
			want: []string{"committed", "fallback_target", "10:00-11:30"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(cfg, tt.args...)
			if err != nil {
				t.Fatalf("drag: %v\n%s", err, out)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q\n%s", want, out)
				}
			}
		})
	}
}

func TestDrag_UnknownTask(t *testing.T) {
	cfg := testConfig(t)
	initBoard(t, cfg)
	if _, err := run(cfg, "drag", "nope"); err == nil {
		t.Fatal("expected error for an unknown task")
	}
}

func TestResize(t *testing.T) {
	cfg := testConfig(t)
	initBoard(t, cfg)

	out, err := run(cfg, "resize", "t1", "--edge", "end", "--by", "30m")
	if err != nil {
		t.Fatalf("resize: %v", err)
	}
	if !strings.Contains(out, "on_timing t1 09:00-10:30") {
		t.Errorf("output = %s", out)
	}

	out, err = run(cfg, "resize", "t3", "--edge", "start", "--dx", "-60", "--dx", "-240")
	if err != nil {
		t.Fatalf("resize: %v", err)
	}
	if !strings.Contains(out, "held") || !strings.Contains(out, "on_timing t3 13:30-15:30") {
		t.Errorf("output = %s", out)
	}

	if _, err := run(cfg, "resize", "t1", "--edge", "middle"); err == nil {
		t.Error("expected error for an invalid edge")
	}
}

func TestCreate(t *testing.T) {
	cfg := testConfig(t)
	initBoard(t, cfg)

	out, err := run(cfg, "create", "ben", "--date", "2025-01-06", "--at", "13:00", "--desc", "Tyre swap")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.Contains(out, "on_create") || !strings.Contains(out, "13:00-14:00  ben  pending  Tyre swap") {
		t.Errorf("output = %s", out)
	}

	if _, err := run(cfg, "create", "ben", "--date", "2025-01-06", "--at", "12:10"); !errors.Is(err, board.ErrCellUnavailable) {
		t.Errorf("lunch error = %v, want ErrCellUnavailable", err)
	}
	if _, err := run(cfg, "create", "ana", "--date", "2025-01-06", "--at", "9:50"); !errors.Is(err, board.ErrCellOccupied) {
		t.Errorf("occupied error = %v, want ErrCellOccupied", err)
	}
}

func TestAct(t *testing.T) {
	cfg := testConfig(t)
	initBoard(t, cfg)

	out, err := run(cfg, "act", "t1", "start")
	if err != nil {
		t.Fatalf("act: %v", err)
	}
	if !strings.Contains(out, "on_action t1 start") || !strings.Contains(out, "in_progress") {
		t.Errorf("output = %s", out)
	}

	out, err = run(cfg, "act", "t1", "comment", "--comment", "waiting for parts")
	if err != nil {
		t.Fatalf("act comment: %v", err)
	}
	if !strings.Contains(out, "comment: waiting for parts") {
		t.Errorf("output = %s", out)
	}

	out, err = run(cfg, "act", "t2", "update", "--desc", "Brake discs")
	if err != nil {
		t.Fatalf("act update: %v", err)
	}
	if !strings.Contains(out, "Brake discs") {
		t.Errorf("output = %s", out)
	}

	if _, err := run(cfg, "act", "t1", "explode"); err == nil {
		t.Error("expected error for an unknown action")
	}
}

func TestVersion(t *testing.T) {
	out, err := run(testConfig(t), "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "bayboard dev") {
		t.Errorf("version = %q", out)
	}
}
