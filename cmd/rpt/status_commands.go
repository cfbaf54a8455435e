package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"rpt/internal/fileutil"
	"rpt/internal/markdown"
	"rpt/internal/statusdoc"
)

const statusWrapWidth = 78

func newStatusCommand(ctx *commandContext) *cobra.Command {
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Check, display, and scaffold project status documents",
	}
	statusCmd.AddCommand(newStatusCheckCommand(ctx))
	statusCmd.AddCommand(newStatusShowCommand(ctx))
	statusCmd.AddCommand(newStatusInitCommand(ctx))
	return statusCmd
}

// statusPath resolves the optional FILE argument, defaulting to the
// configured status file in the content directory.
func (c *commandContext) statusPath(args []string) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0]), nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	return cfg.ContentFile(cfg.Report.StatusFile), nil
}

type statusCheckResult struct {
	File     string              `json:"file"`
	OK       bool                `json:"ok"`
	Sections int                 `json:"sections"`
	Problems []statusdoc.Problem `json:"problems"`
}

func newStatusCheckCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "check [FILE]",
		Short: "Verify the four required sections",
		Long: `Verify that a status document has exactly the sections Summary,
Deliverables Progress, Challenges, and Next Period Activities, in that
order, that none is empty, and that the last three each list at least one
item. Exits non-zero when any check fails.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ctx.statusPath(args)
			if err != nil {
				return err
			}
			doc, err := statusdoc.ParseFile(path)
			if err != nil {
				return err
			}
			problems := doc.Check()
			result := statusCheckResult{
				File:     path,
				OK:       len(problems) == 0,
				Sections: len(doc.Sections),
				Problems: problems,
			}
			if result.Problems == nil {
				result.Problems = []statusdoc.Problem{}
			}

			if jsonOut {
				if err := writeJSON(cmd, result); err != nil {
					return err
				}
			} else {
				writeCheckResult(cmd.OutOrStdout(), doc, result)
			}
			if !result.OK {
				return fmt.Errorf("%s: %d problem(s) found", path, len(problems))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func writeCheckResult(out io.Writer, doc *statusdoc.Document, result statusCheckResult) {
	colorize := shouldColorize(out)
	for _, title := range statusdoc.SectionTitles {
		kind, message := statusOK, ""
		if section, ok := doc.Section(title); ok {
			if items := len(section.Items()); items > 0 {
				message = fmt.Sprintf("%d item(s)", items)
			}
		}
		for _, p := range result.Problems {
			if p.Section == title {
				kind, message = statusError, p.Message
				break
			}
		}
		fmt.Fprintln(out, renderStatusLine(title, kind, message, colorize))
	}
	for _, p := range result.Problems {
		switch p.Code {
		case statusdoc.ProblemUnexpected, statusdoc.ProblemDuplicate, statusdoc.ProblemOrder:
			label := "Layout"
			if p.Line > 0 {
				label = fmt.Sprintf("Line %d", p.Line)
			}
			fmt.Fprintln(out, renderStatusLine(label, statusError, p.Message, colorize))
		}
	}
	if result.OK {
		fmt.Fprintln(out, renderStatusLine("Result", statusOK, "status document is complete", colorize))
	}
}

func newStatusShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show [FILE]",
		Short: "Display the sections of a status document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ctx.statusPath(args)
			if err != nil {
				return err
			}
			doc, err := statusdoc.ParseFile(path)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, doc)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			if doc.Title != "" {
				fmt.Fprintln(out, doc.Title)
				fmt.Fprintln(out)
			}
			for i, section := range doc.Sections {
				if i > 0 {
					fmt.Fprintln(out)
				}
				for _, line := range renderSectionHeader(section.Title, colorize) {
					fmt.Fprintln(out, line)
				}
				writeBlocks(out, section.Blocks)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func writeBlocks(out io.Writer, blocks []markdown.Block) {
	if len(blocks) == 0 {
		fmt.Fprintln(out, statusIndent+"(empty)")
		return
	}
	for _, block := range blocks {
		if block.Kind == markdown.Bullets {
			for _, item := range block.Items {
				wrapped := text.WrapSoft(item, statusWrapWidth-4)
				fmt.Fprintln(out, statusIndent+"- "+strings.ReplaceAll(wrapped, "\n", "\n"+statusIndent+"  "))
			}
			continue
		}
		wrapped := text.WrapSoft(block.Text, statusWrapWidth-2)
		fmt.Fprintln(out, statusIndent+strings.ReplaceAll(wrapped, "\n", "\n"+statusIndent))
	}
}

func newStatusInitCommand(ctx *commandContext) *cobra.Command {
	var period string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init [FILE]",
		Short: "Create a status document with the four required sections",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ctx.statusPath(args)
			if err != nil {
				return err
			}
			if !overwrite {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("status document already exists at %s (use --overwrite to replace it)", path)
				} else if !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("check status path: %w", err)
				}
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create status directory: %w", err)
			}
			body := statusdoc.Scaffold(period)
			if _, err := fileutil.WriteAtomic(path, func(w io.Writer) error {
				_, err := io.WriteString(w, body)
				return err
			}); err != nil {
				return fmt.Errorf("write status document: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote status document to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&period, "period", "", "Reporting period shown in the title, e.g. \"Q3 2026\"")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing document")
	return cmd
}
