package cli

import (
	"fmt"

	"github.com/alexanderramin/triage/internal/cli/formatter"
	"github.com/alexanderramin/triage/internal/domain"
	"github.com/alexanderramin/triage/internal/repository"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage project tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskSetCmd(app),
		newTaskRemoveCmd(app),
	)
	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var status, deadline, assignee string

	cmd := &cobra.Command{
		Use:   "add PROJECT TITLE",
		Short: "Add a task to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.Projects.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			d, err := parseOptionalDate("deadline", deadline)
			if err != nil {
				return err
			}

			t := &domain.Task{
				ProjectID: p.ID,
				Title:     args[1],
				Status:    domain.TaskStatus(status),
				Assignee:  assignee,
				Deadline:  d,
			}
			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %s to %s (%s)\n", t.Title, p.DisplayID(), shortRef(t.ID))
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "pending, in_progress, completed or blocked")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Who owns the task")
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var project, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var filter repository.TaskFilter
			if project != "" {
				p, err := app.Projects.Resolve(ctx, project)
				if err != nil {
					return err
				}
				filter.ProjectID = p.ID
			}
			if status != "" {
				s, err := domain.ParseTaskStatus(status)
				if err != nil {
					return err
				}
				filter.Status = s
			}

			tasks, err := app.Tasks.List(ctx, filter)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
				return nil
			}
			labels, err := projectLabels(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskList(tasks, labels))
			return nil
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "Only tasks of this project")
	cmd.Flags().StringVar(&status, "status", "", "Only tasks with this status")
	return cmd
}

func newTaskSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set ID STATUS",
		Short: "Change a task's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			status, err := domain.ParseTaskStatus(args[1])
			if err != nil {
				return err
			}
			t, err := app.Tasks.SetStatus(ctx, id, status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s is now %s\n", t.Title, t.Status)
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed task %s\n", shortRef(id))
			return nil
		},
	}
}
