package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rpt/internal/budget"
	"rpt/internal/config"
	"rpt/internal/report"
)

func newBudgetCommand(ctx *commandContext) *cobra.Command {
	budgetCmd := &cobra.Command{
		Use:   "budget",
		Short: "Inspect budget spreadsheets",
	}
	budgetCmd.AddCommand(newBudgetShowCommand(ctx))
	return budgetCmd
}

type budgetView struct {
	Table   *budget.Table  `json:"table"`
	Summary budget.Summary `json:"summary"`
}

func newBudgetShowCommand(ctx *commandContext) *cobra.Command {
	var input string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display the budget table and its summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := strings.TrimSpace(input)
			if path == "" {
				path = cfg.Budget.Input
			}
			if expanded, err := config.ExpandPath(path); err == nil {
				path = expanded
			}

			table, err := budget.Load(cmd.Context(), path, budget.Options{Sheet: cfg.Budget.Sheet})
			if err != nil {
				return fmt.Errorf("load budget data: %w", err)
			}
			summary := budget.Summarize(table, report.Columns(cfg))
			if jsonOut {
				return writeJSON(cmd, budgetView{Table: table, Summary: summary})
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprint(out, renderBudgetTable(table))
			fmt.Fprintln(out, renderStatusLine("Total budget", statusInfo, budget.FormatCurrency(summary.TotalBudgeted), colorize))
			fmt.Fprintln(out, renderStatusLine("Remaining", statusInfo, budget.FormatCurrency(summary.TotalRemaining), colorize))
			fmt.Fprintln(out, renderStatusLine("Utilization", utilizationKind(summary.Utilization), budget.FormatPercent(summary.Utilization), colorize))
			if summary.Highest != nil {
				fmt.Fprintln(out, renderStatusLine("Highest", statusInfo, taskLabel(*summary.Highest), colorize))
			}
			if summary.Lowest != nil {
				fmt.Fprintln(out, renderStatusLine("Lowest", statusInfo, taskLabel(*summary.Lowest), colorize))
			}
			if !summary.HasAnalysis {
				fmt.Fprintln(out, renderStatusLine("Analysis", statusWarn,
					fmt.Sprintf("needs %q, %q and %q columns", cfg.Budget.TaskColumn, cfg.Budget.BudgetedColumn, cfg.Budget.RemainingColumn), colorize))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Input spreadsheet (.xlsx or .csv; default from config)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func renderBudgetTable(t *budget.Table) string {
	aligns := make([]columnAlignment, len(t.Columns))
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		values := make([]string, len(row))
		for i, cell := range row {
			values[i] = budget.FormatCell(cell)
			if cell.Numeric && i < len(aligns) {
				aligns[i] = alignRight
			}
		}
		rows = append(rows, values)
	}
	return renderTable(t.Columns, rows, aligns)
}

func taskLabel(task budget.TaskUtilization) string {
	return fmt.Sprintf("%s at %s", task.Task, budget.FormatPercent(task.Utilization))
}

// utilizationKind flags spending that has overrun the budget.
func utilizationKind(utilization float64) statusKind {
	if utilization > 100 {
		return statusWarn
	}
	return statusInfo
}
