package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"rpt/internal/budget"
	"rpt/internal/history"
)

const shortIDLength = 8

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List previously generated reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				entries, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if jsonOut {
					if entries == nil {
						entries = []history.Entry{}
					}
					return writeJSON(cmd, entries)
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No reports recorded yet")
					return nil
				}
				fmt.Fprint(out, renderHistoryTable(entries, time.Now()))
				return nil
			})
		},
	}
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show (0 for all)")
	historyCmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryPruneCommand(ctx))
	return historyCmd
}

func (c *commandContext) withHistory(fn func(*history.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := history.Open(cfg)
	if err != nil {
		return fmt.Errorf("open report history: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func renderHistoryTable(entries []history.Entry, now time.Time) string {
	headers := []string{"ID", "Generated", "Format", "Budget", "Utilization", "Size", "Path"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			shortID(e.ID),
			humanize.RelTime(e.GeneratedAt, now, "ago", "from now"),
			e.Format,
			budget.FormatCurrency(e.TotalBudgeted),
			budget.FormatPercent(e.Utilization),
			humanize.Bytes(uint64(e.SizeBytes)),
			e.OutputPath,
		})
	}
	return renderTable(headers, rows, aligns)
}

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one recorded report (an ID prefix is enough)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				entry, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, entry)
				}
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				lines := []statusField{
					{"ID", entry.ID},
					{"Generated", entry.GeneratedAt.Local().Format(time.RFC1123)},
					{"Report", entry.OutputPath},
					{"Format", entry.Format},
					{"Input", entry.InputPath},
					{"Rows", strconv.Itoa(entry.RowCount)},
					{"Total budget", budget.FormatCurrency(entry.TotalBudgeted)},
					{"Remaining", budget.FormatCurrency(entry.TotalRemaining)},
					{"Utilization", budget.FormatPercent(entry.Utilization)},
					{"Size", humanize.Bytes(uint64(entry.SizeBytes))},
					{"Status included", yesNo(entry.StatusIncluded)},
				}
				if entry.Sheet != "" {
					lines = append(lines, statusField{"Sheet", entry.Sheet})
				}
				for _, line := range lines {
					fmt.Fprintln(out, renderStatusLine(line.label, statusInfo, line.value, colorize))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

type statusField struct {
	label string
	value string
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var olderThan string

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Forget reports older than a given age (files are kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			age := time.Duration(cfg.History.RetentionDays) * 24 * time.Hour
			if strings.TrimSpace(olderThan) != "" {
				age, err = parseAge(olderThan)
				if err != nil {
					return err
				}
			}
			if age <= 0 {
				return errors.New("prune needs --older-than or history.retention_days in config")
			}
			return ctx.withHistory(func(store *history.Store) error {
				removed, err := store.Prune(cmd.Context(), time.Now().Add(-age))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d history %s older than %s\n", removed, plural(removed, "entry", "entries"), formatAge(age))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&olderThan, "older-than", "", "Age such as 30d, 12h, or 90m (default: history.retention_days)")
	return cmd
}

// parseAge accepts Go durations plus a whole-day "Nd" form.
func parseAge(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid age %q", value)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	age, err := time.ParseDuration(value)
	if err != nil || age <= 0 {
		return 0, fmt.Errorf("invalid age %q (use forms like 30d or 12h)", value)
	}
	return age, nil
}

func formatAge(age time.Duration) string {
	if age%(24*time.Hour) == 0 {
		return fmt.Sprintf("%dd", int(age/(24*time.Hour)))
	}
	return age.String()
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
