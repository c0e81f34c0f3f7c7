package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/triage/internal/app"
	"github.com/alexanderramin/triage/internal/cli/formatter"
	"github.com/alexanderramin/triage/internal/intelligence"
	"github.com/spf13/cobra"
)

type boardOptions struct {
	all         bool
	projects    []string
	interactive bool
	json        bool
}

func newBoardCmd(a *App) *cobra.Command {
	var opts boardOptions

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Rank projects by criticality and show their health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, a, opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "Include projects in a final status")
	cmd.Flags().StringSliceVarP(&opts.projects, "project", "p", nil, "Restrict to these projects (short ID or ID, repeatable)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Browse the board in a terminal UI")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the board as JSON")
	cmd.MarkFlagsMutuallyExclusive("interactive", "json")
	return cmd
}

func runBoard(cmd *cobra.Command, a *App, opts boardOptions) error {
	now := a.now()
	req := app.BoardRequest{
		Now:          &now,
		ProjectScope: opts.projects,
		IncludeFinal: opts.all,
	}

	if opts.interactive {
		if !a.interactive() {
			return fmt.Errorf("--interactive needs a terminal")
		}
		return runBoardTUI(cmd.Context(), a, req)
	}

	resp, err := a.Board.GetBoard(cmd.Context(), req)
	if err != nil {
		return err
	}

	if opts.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		trace := intelligence.BuildPortfolioTrace(resp, intelligence.ScopePortfolio)
		return enc.Encode(struct {
			intelligence.PortfolioTrace
			Warnings []string `json:"warnings"`
		}{trace, resp.Warnings})
	}

	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBoard(resp))
	return nil
}
