package ui

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/bayboard/internal/board"
	"github.com/javiermolinar/bayboard/internal/dateutil"
)

// ErrBoardExists is returned by init when the board file is already there.
var ErrBoardExists = errors.New("board file already exists (use --force to overwrite)")

func (a *App) initCmd() *cobra.Command {
	var force bool
	var dateStr string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample board file",
		Long: `Write a small workshop board with two sections, three operators and a
few tasks on the given date to the board path.

Examples:
  bayboard init
  bayboard init --date next-monday --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, err := dateutil.ParseRelativeDate(dateStr, time.Now())
			if err != nil {
				return err
			}
			path := a.path()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%w: %s", ErrBoardExists, path)
			}
			layout, tasks := board.Sample(date)
			if err := board.SaveFile(path, layout, tasks); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s with %d tasks on %s\n",
				path, len(tasks), date.Format("Mon Jan 2"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing board file")
	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "Day of the sample tasks (default today)")
	return cmd
}
