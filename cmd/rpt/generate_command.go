package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"rpt/internal/budget"
	"rpt/internal/report"
)

const dateFlagLayout = "2006-01-02"

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var input string
	var output string
	var format string
	var dateFlag string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a budget report",
		Long: `Generate a budget report from a spreadsheet.

The report is written into the reports directory as
project_report_YYYY-MM-DD.html (or .md). Existing reports are never
overwritten: later runs on the same day get _v2, _v3, ... suffixes.
Sections can be customised with introduction.md, key_points.md,
chart_description.md, and status.md in the content directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			opts := report.Options{Input: input, Output: output, Format: format}
			if strings.TrimSpace(dateFlag) != "" {
				date, err := time.ParseInLocation(dateFlagLayout, strings.TrimSpace(dateFlag), time.Local)
				if err != nil {
					return fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", dateFlag)
				}
				opts.Date = date
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			if ctx.isVerbose() && !jsonOut {
				inputLabel := input
				if inputLabel == "" {
					inputLabel = cfg.Budget.Input
				}
				outputLabel := output
				if outputLabel == "" {
					outputLabel = "auto-generated"
				}
				fmt.Fprintln(out, renderStatusLine("Input file", statusInfo, inputLabel, colorize))
				fmt.Fprintln(out, renderStatusLine("Output file", statusInfo, outputLabel, colorize))
			}

			res, err := report.Generate(cmd.Context(), cfg, opts, logger)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, res)
			}

			fmt.Fprintln(out, renderStatusLine("Report", statusOK, res.Path, colorize))
			if res.ChartPath != "" {
				fmt.Fprintln(out, renderStatusLine("Chart", statusOK, res.ChartPath, colorize))
			}
			fmt.Fprintln(out, renderStatusLine("File size", statusInfo, humanize.Bytes(uint64(res.Size)), colorize))
			fmt.Fprintln(out, renderStatusLine("Sections", statusInfo, strings.Join(res.Sections, ", "), colorize))
			if res.Summary.HasAnalysis {
				fmt.Fprintln(out, renderStatusLine("Utilization", statusInfo, budget.FormatPercent(res.Summary.Utilization), colorize))
			} else {
				fmt.Fprintln(out, renderStatusLine("Utilization", statusWarn, "budget columns not found; default findings used", colorize))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Input spreadsheet (.xlsx or .csv; default from config: budget.xlsx)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file name inside the reports directory (.html/.htm or .md/.markdown)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Report format: html or markdown (default from config)")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Report date as YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output result as JSON")
	return cmd
}
