package ui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/bayboard/internal/config"
)

func runConfig(t *testing.T, input string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	a := NewApp(config.Default())
	a.root.SetOut(&out)
	a.root.SetErr(&out)
	a.root.SetIn(strings.NewReader(input))
	a.root.SetArgs(append([]string{"--no-color", "config"}, args...))
	if err := a.Execute(); err != nil {
		t.Fatalf("config: %v\n%s", err, out.String())
	}
	return out.String()
}

func TestConfig_CreatesAndEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	// edit: day start, keep day end, snap 30, keep the rest, latte theme
	input := "y\n08:00\n\n30\n\n\n\n\n\nlatte\n"
	out := runConfig(t, input, "--path", path)
	for _, want := range []string{"Created " + path, "[timeline]", "Configuration saved!"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Timeline.DayStart != "08:00" || cfg.Timeline.SnapMinutes != 30 || cfg.UI.Theme != "latte" {
		t.Errorf("saved config = %+v %+v", cfg.Timeline, cfg.UI)
	}
	if cfg.Timeline.DayEnd != config.Default().Timeline.DayEnd {
		t.Errorf("day_end = %q, want default kept", cfg.Timeline.DayEnd)
	}
}

func TestConfig_RejectsInvalidNumberThenAccepts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	out := runConfig(t, "y\n\n\nabc\n20\n", "--path", path)
	if !strings.Contains(out, `Invalid number "abc"`) {
		t.Errorf("expected invalid number notice\n%s", out)
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timeline.SnapMinutes != 20 {
		t.Errorf("snap_minutes = %d, want 20", cfg.Timeline.SnapMinutes)
	}
}

func TestConfig_Show(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	out := runConfig(t, "", "--path", path, "--show")
	if !strings.Contains(out, "snap_minutes") || strings.Contains(out, "Created") {
		t.Errorf("show output = %s", out)
	}
}
