package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"rpt/internal/budget"
	"rpt/internal/config"
	"rpt/internal/fileutil"
	"rpt/internal/history"
	"rpt/internal/logging"
)

// lockWait bounds how long generation waits for another run to release the
// reports directory.
const lockWait = 10 * time.Second

// Options tune a single generation run. Zero values fall back to config.
type Options struct {
	// Input overrides the configured budget file.
	Input string
	// Output is a custom file name placed inside the reports directory. An
	// extension, when present, must name the report format.
	Output string
	// Format is html or markdown.
	Format string
	// Date is the report date; defaults to Now.
	Date time.Time
	// Now supplies the clock used for naming and history.
	Now func() time.Time
}

// Result describes a written report.
type Result struct {
	ID        string         `json:"id"`
	Path      string         `json:"path"`
	ChartPath string         `json:"chart_path,omitempty"`
	Format    string         `json:"format"`
	Input     string         `json:"input"`
	Size      int64          `json:"size_bytes"`
	Versioned bool           `json:"versioned"`
	Summary   budget.Summary `json:"summary"`
	Sections  []string       `json:"sections"`
}

// Generate loads the budget, assembles the report, and writes it under the
// reports directory.
func Generate(ctx context.Context, cfg *config.Config, opts Options, logger *slog.Logger) (*Result, error) {
	if cfg == nil {
		return nil, errors.New("generate report: config is nil")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	started := now()
	date := opts.Date
	if date.IsZero() {
		date = started
	}

	format, err := resolveFormat(cfg, opts)
	if err != nil {
		return nil, err
	}

	input := strings.TrimSpace(opts.Input)
	if input == "" {
		input = cfg.Budget.Input
	}
	if expanded, err := config.ExpandPath(input); err == nil {
		input = expanded
	}

	id := uuid.NewString()
	ctx = logging.WithRunID(ctx, id)
	builder := NewBuilder(cfg, logger)
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "generate"))
	logger.Info("starting report generation",
		logging.String("input", input),
		logging.String("format", format))

	table, err := budget.Load(ctx, input, budget.Options{Sheet: cfg.Budget.Sheet})
	if err != nil {
		return nil, fmt.Errorf("load budget data: %w", err)
	}
	logger.Info("budget data loaded",
		logging.String("source", table.Source),
		logging.Any("columns", table.Columns),
		logging.Int("rows", len(table.Rows)))

	rep, err := builder.Build(ctx, table, date)
	if err != nil {
		return nil, err
	}

	lockCtx, cancel := context.WithTimeout(ctx, lockWait)
	defer cancel()
	lock, err := fileutil.LockDirContext(lockCtx, cfg.Paths.ReportsDir)
	if err != nil {
		return nil, fmt.Errorf("lock reports directory: %w", err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Debug("release reports lock failed", logging.Error(err))
		}
	}()

	result := &Result{ID: id, Format: format, Input: input, Summary: rep.Summary}
	for _, section := range rep.Sections {
		result.Sections = append(result.Sections, section.Title)
	}

	result.Path, result.Versioned, err = outputPath(cfg, opts.Output, format, date, now())
	if err != nil {
		return nil, err
	}
	if result.Versioned {
		logger.Info("report file exists, creating new version", logging.String("path", result.Path))
	}

	if err := writeReport(rep, format, result); err != nil {
		return nil, err
	}
	logger.Info("report saved",
		logging.String("path", result.Path),
		logging.Int64("size_bytes", result.Size),
		logging.Duration("elapsed", now().Sub(started)))

	if cfg.History.Enabled {
		recordHistory(ctx, cfg, rep, result, table, now(), logger)
	}
	return result, nil
}

// resolveFormat prefers the explicit format, then the extension of a custom
// output name, then the configured default.
func resolveFormat(cfg *config.Config, opts Options) (string, error) {
	format := config.NormalizeFormat(opts.Format)
	if format == "" && strings.TrimSpace(opts.Output) != "" {
		if inferred := config.NormalizeFormat(strings.TrimPrefix(filepath.Ext(opts.Output), ".")); supportedFormat(inferred) {
			format = inferred
		}
	}
	if format == "" {
		format = cfg.Report.Format
	}
	if !supportedFormat(format) {
		return "", fmt.Errorf("unsupported report format %q (use %s or %s)", format, config.FormatHTML, config.FormatMarkdown)
	}
	return format, nil
}

func supportedFormat(format string) bool {
	return format == config.FormatHTML || format == config.FormatMarkdown
}

// outputPath places custom names in the reports directory as given, so an
// existing file is replaced. Dated default names are versioned instead.
func outputPath(cfg *config.Config, custom, format string, date, now time.Time) (string, bool, error) {
	dir := cfg.Paths.ReportsDir
	ext := config.FormatExtension(format)
	if custom = strings.TrimSpace(custom); custom != "" {
		// .htm and .markdown name the same formats as .html and .md.
		if own := filepath.Ext(custom); own != "" && config.NormalizeFormat(strings.TrimPrefix(own, ".")) == format {
			ext = own
		}
		name, err := fileutil.OutputName(custom, ext)
		if err != nil {
			return "", false, fmt.Errorf("output name for %s report: %w", format, err)
		}
		return filepath.Join(dir, name), false, nil
	}
	name := fileutil.DatedName(cfg.Report.FilePrefix, date, ext)
	path, err := fileutil.UniquePath(dir, name, cfg.Report.MaxVersions, now)
	if err != nil {
		return "", false, fmt.Errorf("choose output name: %w", err)
	}
	return path, filepath.Base(path) != name, nil
}

// writeReport saves the report and, for markdown, the chart beside it. The
// chart is removed again when the report itself cannot be written.
func writeReport(rep *Report, format string, result *Result) error {
	render := func(w io.Writer) error { return RenderHTML(w, rep) }
	if format == config.FormatMarkdown {
		chartRef := ""
		if len(rep.ChartSVG) > 0 {
			result.ChartPath = strings.TrimSuffix(result.Path, filepath.Ext(result.Path)) + ".svg"
			if _, err := fileutil.WriteAtomic(result.ChartPath, func(w io.Writer) error {
				_, err := w.Write(rep.ChartSVG)
				return err
			}); err != nil {
				return fmt.Errorf("write chart: %w", err)
			}
			chartRef = filepath.Base(result.ChartPath)
		}
		render = func(w io.Writer) error { return RenderMarkdown(w, rep, chartRef) }
	}

	size, err := fileutil.WriteAtomic(result.Path, render)
	if err != nil {
		if result.ChartPath != "" {
			_ = os.Remove(result.ChartPath)
			result.ChartPath = ""
		}
		return fmt.Errorf("save report: %w", err)
	}
	result.Size = size
	return nil
}

// recordHistory logs failures instead of returning them; the report is
// already on disk.
func recordHistory(ctx context.Context, cfg *config.Config, rep *Report, result *Result, table *budget.Table, now time.Time, logger *slog.Logger) {
	store, err := history.Open(cfg)
	if err != nil {
		logging.WarnWithContext(logger, "report history unavailable", "history_open_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run not recorded in history"))
		return
	}
	defer store.Close()

	if _, err := store.Record(ctx, history.Entry{
		ID:             result.ID,
		OutputPath:     result.Path,
		Format:         result.Format,
		InputPath:      result.Input,
		Sheet:          table.Sheet,
		GeneratedAt:    now,
		RowCount:       rep.Summary.RowCount,
		TotalBudgeted:  rep.Summary.TotalBudgeted,
		TotalRemaining: rep.Summary.TotalRemaining,
		Utilization:    rep.Summary.Utilization,
		SizeBytes:      result.Size,
		StatusIncluded: rep.StatusIncluded,
	}); err != nil {
		logging.WarnWithContext(logger, "failed to record report history", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run not recorded in history"))
		return
	}

	if days := cfg.History.RetentionDays; days > 0 {
		removed, err := store.Prune(ctx, now.AddDate(0, 0, -days))
		if err != nil {
			logger.Debug("history prune failed", logging.Error(err))
		} else if removed > 0 {
			logger.Info("pruned report history", logging.Int64("removed", removed), logging.Int("retention_days", days))
		}
	}
}
