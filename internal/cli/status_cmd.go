package cli

import (
	"fmt"

	"github.com/alexanderramin/triage/internal/cli/formatter"
	"github.com/alexanderramin/triage/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "status",
		Aliases: []string{"phase"},
		Short:   "Manage the project status taxonomy",
		Long: "Manage project statuses. Each status may carry a scoring phase key\n" +
			"(--phase) that selects its criticality weight.",
	}
	cmd.AddCommand(
		newStatusAddCmd(app),
		newStatusListCmd(app),
		newStatusRemoveCmd(app),
		newStatusSeedCmd(app),
	)
	return cmd
}

func newStatusAddCmd(app *App) *cobra.Command {
	var phase string
	var final bool
	var order int

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a project status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := domain.ParsePhase(phase)
			if err != nil {
				return err
			}
			st := &domain.ProjectStatus{Name: args[0], Phase: p, IsFinal: final, OrderIndex: order}
			if !cmd.Flags().Changed("order") {
				existing, err := app.Statuses.List(cmd.Context())
				if err != nil {
					return err
				}
				st.OrderIndex = len(existing)
			}
			if err := app.Statuses.Create(cmd.Context(), st); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created status %s (phase: %s)\n",
				st.Name, domain.CoalesceStr(string(st.EffectivePhase()), "custom"))
			return nil
		},
	}
	cmd.Flags().StringVar(&phase, "phase", "", "Scoring phase key (ambiente, poc, mvp, desenvolvimento, testes, homologacao, producao)")
	cmd.Flags().BoolVar(&final, "final", false, "Mark as a final (completed/archived) status")
	cmd.Flags().IntVar(&order, "order", 0, "Display order (default: append)")
	return cmd
}

func newStatusListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List project statuses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := app.Statuses.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(statuses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No statuses found. Run 'triage status seed' for the default taxonomy.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStatusList(statuses))
			return nil
		},
	}
}

func newStatusRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME|ID",
		Short: "Delete a project status; its projects keep no status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.Statuses.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := app.Statuses.Delete(cmd.Context(), st.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed status %s\n", st.Name)
			return nil
		},
	}
}

func newStatusSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default status taxonomy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Statuses.SeedDefaults(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d statuses\n", n)
			return nil
		},
	}
}
