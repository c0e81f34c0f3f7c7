package cli

import (
	"time"

	"github.com/alexanderramin/triage/internal/app"
	"github.com/alexanderramin/triage/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Statuses service.ProjectStatusService
	Projects service.ProjectService
	Tasks    service.TaskService
	Board    app.BoardUseCase
	Import   app.ImportPortfolioUseCase
	Reports  app.ReportUseCase

	// IsInteractive reports whether stdin is a terminal. Forms and the
	// interactive board only run when it returns true.
	IsInteractive func() bool
	// Now overrides the reference time of board and report commands.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// GlobalFlags declares the persistent flags shared by every command. The
// entrypoint parses them once before wiring so configuration can read them.
func GlobalFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("triage", pflag.ContinueOnError)
	fs.String("config", "", "Config file (default ~/.triage/config.yaml)")
	fs.String("db", "", "SQLite database path (default ~/.triage/triage.db)")
	fs.String("log-level", "", "Log level: debug, info, warn or error")
	fs.Bool("log-use-cases", false, "Log every service use case")
	return fs
}

// NewRootCmd creates the top-level "triage" command and registers all
// subcommands against the provided App. Without a subcommand it prints the
// active board.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "triage",
		Short:         "Project criticality scoring and health triage",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, app, boardOptions{})
		},
	}
	root.PersistentFlags().AddFlagSet(GlobalFlags())

	root.AddCommand(
		newStatusCmd(app),
		newProjectCmd(app),
		newTaskCmd(app),
		newBoardCmd(app),
		newImportCmd(app),
		newReportCmd(app),
	)
	return root
}
