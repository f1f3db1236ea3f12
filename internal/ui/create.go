package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/bayboard/internal/board"
	"github.com/javiermolinar/bayboard/internal/dateutil"
	"github.com/javiermolinar/bayboard/internal/task"
	"github.com/javiermolinar/bayboard/internal/timeline"
)

func (a *App) createCmd() *cobra.Command {
	var dateStr string
	var at string
	var desc string

	cmd := &cobra.Command{
		Use:   "create <resource-id>",
		Short: "Quick-create a task in an operator's hour cell",
		Long: `Create a pending task starting at the top of the clicked hour, lasting
quick_create_minutes. The click is refused when it falls in an unavailable
range or when a task already starts in that hour.

Examples:
  bayboard create ben --at 13:00 --desc "Tyre swap"
  bayboard create ana --date tomorrow --at 9:20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateutil.ParseRelativeDate(dateStr, time.Now())
			if err != nil {
				return err
			}
			minute, err := timeline.ParseClock(at)
			if err != nil {
				return fmt.Errorf("--at: %w", err)
			}
			out := cmd.OutOrStdout()
			s, err := a.openSession(&hooks{
				onCreate: func(t *task.Task) {
					fmt.Fprintf(out, "%s %s\n", formatMuted("on_create"), t.ID)
				},
			})
			if err != nil {
				return err
			}
			defer func() { _ = s.close() }()

			t, err := s.board.QuickCreate(board.Cell{
				ResourceID: args[0],
				Date:       date,
				Hour:       minute / 60,
				Minute:     minute % 60,
			}, desc)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s\n", formatOK("created"), FormatTask(t))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "Day of the cell (default today)")
	cmd.Flags().StringVar(&at, "at", "", "Clicked time, HH:MM")
	cmd.Flags().StringVar(&desc, "desc", "New task", "Task description")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}
