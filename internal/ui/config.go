package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/bayboard/internal/config"
	"github.com/javiermolinar/bayboard/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var path string
	var show bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  bayboard config
  bayboard config --show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := &configEditor{in: bufio.NewReader(cmd.InOrStdin()), out: cmd.OutOrStdout()}
			return e.run(path, show)
		},
	}
	cmd.Flags().StringVar(&path, "path", config.DefaultConfigPath(), "Config file to edit")
	cmd.Flags().BoolVar(&show, "show", false, "Print the configuration and exit")
	return cmd
}

// configEditor walks the user through the config sections.
type configEditor struct {
	in  *bufio.Reader
	out io.Writer
	eof bool
}

func (e *configEditor) run(path string, show bool) error {
	fmt.Fprintf(e.out, "Config file: %s\n\n", path)

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if show {
		e.print(cfg)
		return nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(e.out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(path); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(e.out, "Created %s\n\n", path)
	}

	e.print(cfg)
	if !e.yesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Timeline.DayStart = e.value("Day start", cfg.Timeline.DayStart)
	cfg.Timeline.DayEnd = e.value("Day end", cfg.Timeline.DayEnd)
	cfg.Timeline.SnapMinutes = e.number("Snap minutes (divides 60)", cfg.Timeline.SnapMinutes)
	cfg.Timeline.QuickCreateMinutes = e.number("Quick-create minutes", cfg.Timeline.QuickCreateMinutes)
	cfg.Timeline.VisibleDays = e.number("Visible days", cfg.Timeline.VisibleDays)
	cfg.Timeline.MinResizeMinutes = e.number("Minimum task minutes when resizing", cfg.Timeline.MinResizeMinutes)
	cfg.Timeline.StackGrouping = e.value("Stack grouping (pairwise, transitive)", cfg.Timeline.StackGrouping)
	cfg.Board.Path = e.value("Board file", cfg.Board.Path)
	cfg.UI.Theme = e.theme(cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintln(e.out, "\nConfiguration saved!")
	return nil
}

func (e *configEditor) print(cfg *config.Config) {
	rows := []struct{ section, key, value string }{
		{"timeline", "day_start", cfg.Timeline.DayStart},
		{"timeline", "day_end", cfg.Timeline.DayEnd},
		{"timeline", "snap_minutes", strconv.Itoa(cfg.Timeline.SnapMinutes)},
		{"timeline", "quick_create_minutes", strconv.Itoa(cfg.Timeline.QuickCreateMinutes)},
		{"timeline", "visible_days", strconv.Itoa(cfg.Timeline.VisibleDays)},
		{"timeline", "min_resize_minutes", strconv.Itoa(cfg.Timeline.MinResizeMinutes)},
		{"timeline", "slot_width_px", fmt.Sprintf("%g", cfg.Timeline.SlotWidthPx)},
		{"timeline", "row_height_px", fmt.Sprintf("%g", cfg.Timeline.RowHeightPx)},
		{"timeline", "stack_gap_px", fmt.Sprintf("%g", cfg.Timeline.StackGapPx)},
		{"timeline", "stack_grouping", cfg.Timeline.StackGrouping},
		{"board", "path", cfg.Board.Path},
		{"ui", "theme", cfg.UI.Theme},
		{"log", "debug", strconv.FormatBool(cfg.Log.Debug)},
		{"log", "path", cfg.Log.Path},
		{"log", "level", cfg.Log.Level},
	}

	fmt.Fprintln(e.out, "Current configuration:")
	fmt.Fprintln(e.out, "──────────────────────")
	section := ""
	for _, r := range rows {
		if r.section != section {
			if section != "" {
				fmt.Fprintln(e.out)
			}
			section = r.section
			fmt.Fprintf(e.out, "[%s]\n", section)
		}
		fmt.Fprintf(e.out, "  %-20s = %s\n", r.key, r.value)
	}
}

func (e *configEditor) yesNo(question string) bool {
	fmt.Fprintf(e.out, "%s [y/N]: ", question)
	input, _ := e.in.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

// value prompts for a string. Empty input or end of input keeps current.
func (e *configEditor) value(label, current string) string {
	if current == "" {
		fmt.Fprintf(e.out, "  %s: ", label)
	} else {
		fmt.Fprintf(e.out, "  %s [%s]: ", label, current)
	}
	input, err := e.in.ReadString('\n')
	if err != nil {
		e.eof = true
	}
	if input = strings.TrimSpace(input); input == "" {
		return current
	}
	return input
}

func (e *configEditor) number(label string, current int) int {
	for {
		value := e.value(label, strconv.Itoa(current))
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
		if e.eof {
			return current
		}
		fmt.Fprintf(e.out, "  Invalid number %q\n", value)
	}
}

func (e *configEditor) theme(current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s, or a .toml file)", options)
	for {
		value := e.value(label, current)
		if strings.HasSuffix(value, ".toml") {
			return value
		}
		if value = strings.ToLower(value); theme.IsAvailable(value) {
			return value
		}
		if e.eof {
			return current
		}
		fmt.Fprintf(e.out, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
