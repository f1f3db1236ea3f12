package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/javiermolinar/bayboard/internal/board"
	"github.com/javiermolinar/bayboard/internal/dateutil"
	"github.com/javiermolinar/bayboard/internal/gesture"
	"github.com/javiermolinar/bayboard/internal/timeline"
)

// moveFlags are the pointer travel options shared by drag and resize.
type moveFlags struct {
	dx []float64
	by string
}

func (f *moveFlags) register(fs *pflag.FlagSet) {
	fs.Float64SliceVar(&f.dx, "dx", nil, "Pointer travel in pixels; repeat to simulate several moves")
	fs.StringVar(&f.by, "by", "", "Travel as a duration, e.g. 90m or -1h15m")
}

// moves returns the successive pointer positions, in pixels.
func (f *moveFlags) moves(m timeline.Mapper) ([]float64, error) {
	moves := append([]float64(nil), f.dx...)
	if f.by != "" {
		d, err := time.ParseDuration(f.by)
		if err != nil {
			return nil, fmt.Errorf("--by: %w", err)
		}
		moves = append(moves, m.ToPixel(int(d.Minutes())))
	}
	if len(moves) == 0 {
		moves = []float64{0}
	}
	return moves, nil
}

func timingHook(w io.Writer) *hooks {
	return &hooks{
		onTiming: func(taskID string, t timeline.Timing) {
			fmt.Fprintf(w, "%s %s %s\n", formatMuted("on_timing"), taskID, t)
		},
	}
}

func runMoves(w io.Writer, b *board.Board, moves []float64) error {
	for _, dx := range moves {
		p, err := b.Move(dx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  move dx=%-6.0f %s\n", dx, FormatPreview(p))
	}
	return nil
}

func (a *App) dragCmd() *cobra.Command {
	var mf moveFlags
	var toResource string
	var dateStr string
	var target string

	cmd := &cobra.Command{
		Use:   "drag <task-id>",
		Short: "Simulate dragging a task to another time, day or operator",
		Long: `Begin a relocation gesture on a task, apply the pointer moves and drop it.

The drop is committed unless the new interval overlaps an unavailable range of
the target operator, in which case the task keeps its original placement.
The result is printed; the board file is not modified.

Examples:
  bayboard drag t5 --by -1h --to ana
  bayboard drag t1 --dx 60 --dx 480 --date tomorrow
  bayboard drag t1 --dx 120 --target time-2025-01-07_10-user-ben`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			s, err := a.openSession(timingHook(out))
			if err != nil {
				return err
			}
			defer func() { _ = s.close() }()
			b := s.board

			t, err := b.Task(args[0])
			if err != nil {
				return err
			}
			moves, err := mf.moves(b.Mapper())
			if err != nil {
				return err
			}

			if target == "" {
				date := t.Date()
				if dateStr != "" {
					if date, err = dateutil.ParseRelativeDate(dateStr, time.Now()); err != nil {
						return err
					}
				}
				resource := t.ResourceID
				if toResource != "" {
					resource = toResource
				}
				last := moves[len(moves)-1]
				start := t.StartMinute() + b.Mapper().ToMinutes(last)
				target = gesture.EncodeTarget(gesture.Target{
					Date:       date,
					Hour:       timeline.Clamp(start/60, 0, 23),
					ResourceID: resource,
				})
			}

			if err := b.BeginRelocate(t.ID); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s %s\n", formatHeader("drag"), t.ID, t.Timing())
			if err := runMoves(out, b, moves); err != nil {
				b.Cancel()
				return err
			}
			o, err := b.End(gesture.Drop{TargetID: target, Dx: moves[len(moves)-1]})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "  drop %s\n%s\n", target, FormatOutcome(o))
			return nil
		},
	}

	mf.register(cmd.Flags())
	cmd.Flags().StringVar(&toResource, "to", "", "Target operator id (default the task's own)")
	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "Target day (default the task's own)")
	cmd.Flags().StringVar(&target, "target", "", "Raw drop target id, overrides --to and --date")
	return cmd
}

func (a *App) resizeCmd() *cobra.Command {
	var mf moveFlags
	var edgeStr string

	cmd := &cobra.Command{
		Use:   "resize <task-id>",
		Short: "Simulate dragging one edge of a task",
		Long: `Begin a resize gesture on a task edge, apply the pointer moves and release.

Moves that would overlap an unavailable range are held: the task keeps the last
free interval. The edge is kept at least min_resize_minutes from the other one.

Examples:
  bayboard resize t1 --edge end --by 30m
  bayboard resize t3 --edge start --dx -60 --dx -240`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			edge, err := gesture.ParseEdge(edgeStr)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			s, err := a.openSession(timingHook(out))
			if err != nil {
				return err
			}
			defer func() { _ = s.close() }()
			b := s.board

			moves, err := mf.moves(b.Mapper())
			if err != nil {
				return err
			}
			if err := b.BeginResize(args[0], edge); err != nil {
				return err
			}
			snap, _ := b.GestureSnapshot()
			fmt.Fprintf(out, "%s %s %s edge=%s\n", formatHeader("resize"), snap.TaskID, snap.Timing(), edge)
			if err := runMoves(out, b, moves); err != nil {
				b.Cancel()
				return err
			}
			o, err := b.End(gesture.Drop{})
			if err != nil {
				return err
			}
			fmt.Fprintln(out, FormatOutcome(o))
			return nil
		},
	}

	mf.register(cmd.Flags())
	cmd.Flags().StringVarP(&edgeStr, "edge", "e", string(gesture.EdgeEnd), "Edge to move: start or end")
	return cmd
}
