package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/bayboard/internal/task"
)

func (a *App) actCmd() *cobra.Command {
	var comment string
	var desc string
	var kind string
	var order string
	var subtasks []string

	cmd := &cobra.Command{
		Use:   "act <task-id> <update|start|pause|finish|comment>",
		Short: "Apply a status or field change to a task",
		Long: `Apply an action to a task and print the result.

Examples:
  bayboard act t1 start
  bayboard act t1 comment --comment "waiting for parts"
  bayboard act t2 update --desc "Brake pads and discs" --subtask pads --subtask discs`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			s, err := a.openSession(&hooks{
				onAction: func(taskID string, k task.ActionKind, _ task.Patch) {
					fmt.Fprintf(out, "%s %s %s\n", formatMuted("on_action"), taskID, k)
				},
			})
			if err != nil {
				return err
			}
			defer func() { _ = s.close() }()

			p := task.Patch{Comment: comment, Subtasks: subtasks}
			flags := cmd.Flags()
			if flags.Changed("desc") {
				p.Description = &desc
			}
			if flags.Changed("kind") {
				p.Kind = &kind
			}
			if flags.Changed("order") {
				p.OrderID = &order
			}

			if err := s.board.Act(args[0], task.ActionKind(args[1]), p); err != nil {
				return err
			}
			t, err := s.board.Task(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(out, FormatTask(t))
			for _, c := range t.Comments {
				fmt.Fprintf(out, "  %s %s\n", formatMuted("comment:"), c)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&comment, "comment", "m", "", "Comment text (comment action)")
	cmd.Flags().StringVar(&desc, "desc", "", "New description (update action)")
	cmd.Flags().StringVar(&kind, "kind", "", "New operation type (update action)")
	cmd.Flags().StringVar(&order, "order", "", "New order id (update action)")
	cmd.Flags().StringArrayVar(&subtasks, "subtask", nil, "Replace subtasks (update action, repeatable)")
	return cmd
}
