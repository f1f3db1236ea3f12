package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/bayboard/internal/dateutil"
	"github.com/javiermolinar/bayboard/internal/summary"
)

func (a *App) rowsCmd() *cobra.Command {
	var dateStr string
	var days int
	var week bool
	var geometry bool
	var load bool

	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Print resource rows with unavailable ranges and tasks",
		Long: `Print one row per operator, grouped by section, for the visible days.

Each day lists the merged unavailable ranges (before shift, lunch, after
shift, day off) and the tasks that start on it.

Examples:
  bayboard rows
  bayboard rows --date tomorrow --days 3
  bayboard rows --week --geometry
  bayboard rows --week --summary`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, err := dateutil.ParseRelativeDate(dateStr, time.Now())
			if err != nil {
				return err
			}
			s, err := a.openSession(nil)
			if err != nil {
				return err
			}
			defer func() { _ = s.close() }()

			if days <= 0 {
				days = s.board.Config().VisibleDays
			}
			w := dateutil.NewWindow(date, days)
			if week {
				w = w.Week()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", formatHeader("ROWS: "+w.String()))
			rs := s.board.Rows(w)
			PrintRows(out, rs, w.Dates(), s.board.Geometry, PrintOpts{Geometry: geometry})
			if load {
				PrintSummary(out, summary.Summarize(rs, w.Dates(), s.board.Config()))
			}

			if issues := s.issues(); len(issues) > 0 {
				fmt.Fprintln(out)
				for _, i := range issues {
					fmt.Fprintf(out, "%s %s\n", formatWarn("warning:"), FormatIssue(i))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "First day (today, tomorrow, monday, next-week, YYYY-MM-DD)")
	cmd.Flags().IntVar(&days, "days", 0, "Number of days (default from config)")
	cmd.Flags().BoolVarP(&week, "week", "w", false, "Show the Monday-Sunday week containing the date")
	cmd.Flags().BoolVarP(&geometry, "geometry", "g", false, "Print the pixel box of every task")
	cmd.Flags().BoolVarP(&load, "summary", "s", false, "Print booked and open hours per operator")
	return cmd
}
