package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import statuses, projects and tasks from a YAML or JSON file",
		Long: `Import a portfolio document. The whole file is validated first and
written in a single transaction: either everything is imported or nothing is.
Projects reference statuses by name, either declared in the same file or
already stored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d statuses, %d projects and %d tasks\n",
				result.StatusCount, len(result.ProjectIDs), result.TaskCount)
			return nil
		},
	}
}
