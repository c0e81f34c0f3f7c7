package cli

import (
	"fmt"

	"github.com/alexanderramin/triage/internal/app"
	"github.com/alexanderramin/triage/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newReportCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate and browse client reports",
	}
	cmd.AddCommand(
		newReportGenerateCmd(a),
		newReportListCmd(a),
		newReportShowCmd(a),
	)
	return cmd
}

func newReportGenerateCmd(a *App) *cobra.Command {
	var project, title string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a report for the portfolio or a single project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := a.now()
			resp, err := a.Reports.Generate(cmd.Context(), app.ReportRequest{
				Now:        &now,
				ProjectRef: project,
				Title:      title,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatReport(resp.Report))
			if resp.Fallback {
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim("LLM unavailable, deterministic report used: "+resp.FallbackReason))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", "", "Report on a single project (short ID or ID)")
	cmd.Flags().StringVar(&title, "title", "", "Report title")
	return cmd
}

func newReportListCmd(a *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			reports, err := a.Reports.List(ctx, project)
			if err != nil {
				return err
			}
			if len(reports) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No reports found.")
				return nil
			}
			labels, err := projectLabels(ctx, a)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatReportList(reports, labels))
			return nil
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", "", "Only reports of this project")
	return cmd
}

func newReportShowCmd(a *App) *cobra.Command {
	var markdown, render bool
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Print a stored report (full ID or listed prefix)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			reports, err := a.Reports.List(ctx, "")
			if err != nil {
				return err
			}
			id, err := matchReportID(reports, args[0])
			if err != nil {
				return err
			}
			r, err := a.Reports.Get(ctx, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case markdown:
				fmt.Fprint(out, formatter.ReportMarkdown(r))
			case render:
				text, err := formatter.RenderMarkdown(formatter.ReportMarkdown(r), 80, a.interactive())
				if err != nil {
					return err
				}
				fmt.Fprint(out, text)
			default:
				fmt.Fprintln(out, formatter.FormatReport(r))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Print the report as Markdown source")
	cmd.Flags().BoolVar(&render, "render", false, "Render the report as Markdown in the terminal")
	cmd.MarkFlagsMutuallyExclusive("markdown", "render")
	return cmd
}
