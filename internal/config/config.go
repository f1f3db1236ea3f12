// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/bayboard/internal/timeline"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BAYBOARD_"

// Config holds the application configuration.
type Config struct {
	Timeline TimelineConfig `toml:"timeline"`
	Board    BoardConfig    `toml:"board"`
	UI       UIConfig       `toml:"ui"`
	Log      LogConfig      `toml:"log"`
}

// TimelineConfig holds the board's time axis settings.
type TimelineConfig struct {
	DayStart           string  `toml:"day_start"` // e.g., "07:00"
	DayEnd             string  `toml:"day_end"`   // e.g., "20:00"
	SnapMinutes        int     `toml:"snap_minutes"`
	QuickCreateMinutes int     `toml:"quick_create_minutes"`
	VisibleDays        int     `toml:"visible_days"`
	MinResizeMinutes   int     `toml:"min_resize_minutes"`
	SlotWidthPx        float64 `toml:"slot_width_px"` // width of one hour column
	RowHeightPx        float64 `toml:"row_height_px"`
	StackGapPx         float64 `toml:"stack_gap_px"`
	StackGrouping      string  `toml:"stack_grouping"` // "pairwise" or "transitive"
}

// BoardConfig points at the board definition file.
type BoardConfig struct {
	Path string `toml:"path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// LogConfig holds diagnostics settings.
type LogConfig struct {
	Debug bool   `toml:"debug"`
	Path  string `toml:"path"`
	Level string `toml:"level"` // logrus level name
}

// Default returns the default configuration.
func Default() *Config {
	tl := timeline.DefaultConfig()
	return &Config{
		Timeline: TimelineConfig{
			DayStart:           timeline.FormatClock(tl.DayStart),
			DayEnd:             timeline.FormatClock(tl.DayEnd),
			SnapMinutes:        tl.SnapMinutes,
			QuickCreateMinutes: tl.QuickCreateMinutes,
			VisibleDays:        tl.VisibleDays,
			MinResizeMinutes:   tl.MinResizeMinutes,
			SlotWidthPx:        tl.SlotWidthPx,
			RowHeightPx:        tl.RowHeightPx,
			StackGapPx:         tl.StackGapPx,
			StackGrouping:      string(tl.StackGrouping),
		},
		Board: BoardConfig{
			Path: filepath.Join(configDir(), "board.toml"),
		},
		UI: UIConfig{
			Theme: "frappe",
		},
		Log: LogConfig{
			Path:  defaultLogPath(),
			Level: "info",
		},
	}
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "bayboard")
}

// defaultLogPath returns the default debug log path.
func defaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bayboard-debug.log"
	}
	return filepath.Join(home, ".local", "state", "bayboard", "debug.log")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Board.Path = expandPath(cfg.Board.Path)
	cfg.Log.Path = expandPath(cfg.Log.Path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	strs := map[string]*string{
		"DAY_START":      &cfg.Timeline.DayStart,
		"DAY_END":        &cfg.Timeline.DayEnd,
		"STACK_GROUPING": &cfg.Timeline.StackGrouping,
		"BOARD_PATH":     &cfg.Board.Path,
		"UI_THEME":       &cfg.UI.Theme,
		"LOG_PATH":       &cfg.Log.Path,
		"LOG_LEVEL":      &cfg.Log.Level,
	}
	for name, dst := range strs {
		if v := os.Getenv(EnvPrefix + name); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"SNAP_MINUTES":         &cfg.Timeline.SnapMinutes,
		"QUICK_CREATE_MINUTES": &cfg.Timeline.QuickCreateMinutes,
		"VISIBLE_DAYS":         &cfg.Timeline.VisibleDays,
		"MIN_RESIZE_MINUTES":   &cfg.Timeline.MinResizeMinutes,
	}
	for name, dst := range ints {
		v := os.Getenv(EnvPrefix + name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = n
	}

	if v := os.Getenv(EnvPrefix + "DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sDEBUG: %w", EnvPrefix, err)
		}
		cfg.Log.Debug = debug
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Timeline converts the [timeline] section into the engine configuration.
func (c *Config) Timeline() (timeline.Config, error) {
	start, err := timeline.ParseClock(c.Timeline.DayStart)
	if err != nil {
		return timeline.Config{}, fmt.Errorf("day_start: %w", err)
	}
	end, err := timeline.ParseClock(c.Timeline.DayEnd)
	if err != nil {
		return timeline.Config{}, fmt.Errorf("day_end: %w", err)
	}
	grouping := timeline.Grouping(strings.ToLower(c.Timeline.StackGrouping))
	if grouping == "" {
		grouping = timeline.GroupPairwise
	}
	return timeline.Config{
		DayStart:           start,
		DayEnd:             end,
		SnapMinutes:        c.Timeline.SnapMinutes,
		QuickCreateMinutes: c.Timeline.QuickCreateMinutes,
		VisibleDays:        c.Timeline.VisibleDays,
		MinResizeMinutes:   c.Timeline.MinResizeMinutes,
		SlotWidthPx:        c.Timeline.SlotWidthPx,
		RowHeightPx:        c.Timeline.RowHeightPx,
		StackGapPx:         c.Timeline.StackGapPx,
		StackGrouping:      grouping,
	}, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	tl, err := c.Timeline()
	if err != nil {
		return err
	}
	if err := tl.Validate(); err != nil {
		return err
	}
	if c.Board.Path == "" {
		return errors.New("board path must be set")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.Log.Debug && c.Log.Path == "" {
		return errors.New("log path must be set when debug is enabled")
	}
	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
