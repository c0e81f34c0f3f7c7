package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/triage/internal/app"
	"github.com/alexanderramin/triage/internal/cli/formatter"
	"github.com/alexanderramin/triage/internal/domain"
	"github.com/alexanderramin/triage/internal/repository"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectUpdateCmd(app),
		newProjectRemoveCmd(app),
	)
	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var v projectFormValues
	var status, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project (interactive form when --title is omitted on a terminal)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if v.Title == "" {
				if !app.interactive() {
					return fmt.Errorf("--title is required")
				}
				statuses, err := app.Statuses.List(ctx)
				if err != nil {
					return err
				}
				if err := projectForm(&v, statuses).Run(); err != nil {
					return err
				}
			} else {
				id, err := resolveStatusID(ctx, app, status)
				if err != nil {
					return err
				}
				v.StatusID = id
			}

			p, err := v.toProject()
			if err != nil {
				return err
			}
			p.Description = description
			if err := app.Projects.Create(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Title, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&v.ShortID, "id", "", "Short ID (3-6 uppercase letters + 2-4 digits, e.g. ERP01)")
	cmd.Flags().StringVar(&v.Title, "title", "", "Project title")
	cmd.Flags().StringVar(&v.Client, "client", "", "Client name")
	cmd.Flags().StringVar(&description, "description", "", "Free-form description")
	cmd.Flags().StringVar(&status, "status", "", "Status name or ID")
	cmd.Flags().StringVar(&v.Priority, "priority", "", "Priority: low, medium, high, urgent (or baixa, média, alta, urgente)")
	cmd.Flags().StringVar(&v.Progress, "progress", "", "Progress percentage (0-100)")
	cmd.Flags().StringVar(&v.Start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&v.Deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var status, priority, client string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var filter repository.ProjectFilter
			var err error
			if filter.StatusID, err = resolveStatusID(ctx, app, status); err != nil {
				return err
			}
			if filter.Priority, err = domain.ParsePriority(priority); err != nil {
				return err
			}
			filter.Client = client

			projects, err := app.Projects.List(ctx, filter)
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}
			statuses, err := app.Statuses.List(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects, statusNames(statuses)))
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Only projects with this status (name or ID)")
	cmd.Flags().StringVar(&priority, "priority", "", "Only projects with this priority")
	cmd.Flags().StringVar(&client, "client", "", "Only projects of this client")
	return cmd
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a project's criticality breakdown, health and tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.Projects.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			detail, err := projectDetail(cmd, app, p.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox(p.DisplayID(), detail))
			return nil
		},
	}
}

// projectDetail renders the board row and tasks of one project.
func projectDetail(cmd *cobra.Command, a *App, projectID string) (string, error) {
	ctx := cmd.Context()
	now := a.now()
	req := app.NewBoardRequest()
	req.Now = &now
	req.ProjectScope = []string{projectID}

	board, err := a.Board.GetBoard(ctx, req)
	if err != nil {
		return "", err
	}
	if len(board.Projects) == 0 {
		return "", fmt.Errorf("project %s: %w", projectID, repository.ErrNotFound)
	}
	tasks, err := a.Tasks.List(ctx, repository.TaskFilter{ProjectID: projectID})
	if err != nil {
		return "", err
	}
	return formatter.FormatProjectDetail(board.Projects[0], tasks), nil
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var shortID, title, client, description, status, priority, progress, start, deadline string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a project; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.Projects.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("id") {
				p.ShortID = shortID
			}
			if flags.Changed("title") {
				p.Title = title
			}
			if flags.Changed("client") {
				p.Client = client
			}
			if flags.Changed("description") {
				p.Description = description
			}
			if flags.Changed("status") {
				if p.StatusID, err = resolveStatusID(ctx, app, status); err != nil {
					return err
				}
			}
			if flags.Changed("priority") {
				p.Priority = domain.Priority(priority)
			}
			if flags.Changed("progress") {
				if p.Progress, err = parseProgress(progress); err != nil {
					return err
				}
			}
			if flags.Changed("start") {
				if p.StartDate, err = parseDateUpdate("start date", start); err != nil {
					return err
				}
			}
			if flags.Changed("deadline") {
				if p.Deadline, err = parseDateUpdate("deadline", deadline); err != nil {
					return err
				}
			}

			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s [%s]\n", p.Title, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "New short ID")
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&client, "client", "", "New client")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&status, "status", "", "New status name or ID (empty clears)")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority")
	cmd.Flags().StringVar(&progress, "progress", "", "New progress percentage")
	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD, or none)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "New deadline (YYYY-MM-DD, or none)")
	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a project and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.Projects.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			if !yes {
				if !app.interactive() {
					return errors.New("refusing to delete without --yes")
				}
				if err := confirmForm(fmt.Sprintf("Delete %s and all its tasks?", p.Title), &yes).Run(); err != nil {
					return err
				}
				if !yes {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Projects.Delete(ctx, p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed project %s [%s]\n", p.Title, p.DisplayID())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
