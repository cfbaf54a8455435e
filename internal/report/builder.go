package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"rpt/internal/budget"
	"rpt/internal/chart"
	"rpt/internal/config"
	"rpt/internal/logging"
	"rpt/internal/markdown"
	"rpt/internal/statusdoc"
)

var defaultKeyPoints = []string{
	"Budget tracking is current and accurate",
	"All expenditures are within approved parameters",
	"Financial controls are operating effectively",
	"Regular monitoring continues as scheduled",
}

const defaultChartDescription = "The chart below provides a visual comparison of budgeted amounts versus remaining funds for each project component."

// Builder assembles reports from a budget table and the content directory.
type Builder struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewBuilder returns a Builder. logger should not carry a component or run
// id yet; Build adds both. A nil logger discards output.
func NewBuilder(cfg *config.Config, logger *slog.Logger) *Builder {
	return &Builder{cfg: cfg, logger: logging.NewComponentLogger(logger, "report")}
}

// Columns maps the configured column names onto budget.Columns. Blank
// settings keep the standard workbook names.
func Columns(cfg *config.Config) budget.Columns {
	cols := budget.DefaultColumns()
	for _, override := range []struct {
		dst *string
		val string
	}{
		{&cols.Task, cfg.Budget.TaskColumn},
		{&cols.Budgeted, cfg.Budget.BudgetedColumn},
		{&cols.Remaining, cfg.Budget.RemainingColumn},
		{&cols.TotalsLabel, cfg.Budget.TotalsLabel},
	} {
		if v := strings.TrimSpace(override.val); v != "" {
			*override.dst = v
		}
	}
	return cols
}

// Title returns the report heading for date.
func Title(prefix string, date time.Time) string {
	return fmt.Sprintf("%s - %s", prefix, date.Format(titleDateLayout))
}

// SummaryLine is the one-line overview printed above the budget table.
func SummaryLine(s budget.Summary) string {
	return fmt.Sprintf("Total Budget: %s | Utilization Rate: %s | Remaining: %s",
		budget.FormatCurrency(s.TotalBudgeted),
		budget.FormatPercent(s.Utilization),
		budget.FormatCurrency(s.TotalRemaining))
}

// Findings derives key findings from a summary. It returns nil when the
// table lacks the columns or rows needed for a ranking.
func Findings(s budget.Summary) []string {
	if !s.HasAnalysis || s.Highest == nil || s.Lowest == nil {
		return nil
	}
	return []string{
		fmt.Sprintf("Overall budget utilization stands at %s", budget.FormatPercent(s.Utilization)),
		fmt.Sprintf("Highest utilization: %s at %s", s.Highest.Task, budget.FormatPercent(s.Highest.Utilization)),
		fmt.Sprintf("Lowest utilization: %s at %s", s.Lowest.Task, budget.FormatPercent(s.Lowest.Utilization)),
		fmt.Sprintf("Total remaining funds: %s", budget.FormatCurrency(s.TotalRemaining)),
	}
}

// Build assembles the report sections for table as of date.
func (b *Builder) Build(ctx context.Context, table *budget.Table, date time.Time) (*Report, error) {
	if table == nil {
		return nil, errors.New("build report: budget table is nil")
	}
	logger := logging.WithContext(ctx, b.logger)
	summary := budget.Summarize(table, Columns(b.cfg))

	rep := &Report{
		Title:   Title(b.cfg.Report.TitlePrefix, date),
		Date:    date,
		Table:   table,
		Summary: summary,
	}

	rep.Sections = append(rep.Sections, b.proseSection(logger, SectionExecutiveSummary, IntroductionFile, defaultIntroduction(date)))

	rep.Sections = append(rep.Sections, Section{
		Title:  SectionBudgetDetails,
		Blocks: []markdown.Block{{Kind: markdown.Paragraph, Text: SummaryLine(summary)}},
		Table:  true,
	})

	points := Findings(summary)
	if points == nil {
		logger.Debug("using default key findings",
			logging.Bool("has_analysis", summary.HasAnalysis),
			logging.Int("rows", summary.RowCount))
		points = defaultKeyPoints
	}
	rep.Sections = append(rep.Sections, b.proseSection(logger, SectionKeyFindings, KeyPointsFile, markdown.BulletList(points)))

	if b.cfg.Chart.Enabled {
		section := b.proseSection(logger, SectionVisualization, ChartDescriptionFile, defaultChartDescription)
		svg, err := b.renderChart(table)
		if err != nil {
			logging.WarnWithContext(logger, "budget chart skipped", "chart_render_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "report has no chart"))
		} else {
			rep.ChartSVG = svg
			section.Chart = true
		}
		rep.Sections = append(rep.Sections, section)
	}

	if b.cfg.Report.IncludeStatus {
		if section, ok := b.statusSection(logger); ok {
			rep.Sections = append(rep.Sections, section)
			rep.StatusIncluded = true
		}
	}
	return rep, nil
}

func defaultIntroduction(date time.Time) string {
	return fmt.Sprintf("This report provides a comprehensive overview of budget allocation and expenditure status as of %s.\n\n"+
		"Key metrics include budget utilization rates, remaining fund allocation, and project-specific financial performance indicators.",
		date.Format(titleDateLayout))
}

// proseSection reads an override file and falls back to built-in text when
// the file cannot supply any.
func (b *Builder) proseSection(logger *slog.Logger, title, file, fallback string) Section {
	path := b.cfg.ContentFile(file)
	content, ok, err := markdown.ReadOptional(path)
	switch {
	case err != nil:
		logging.WarnWithContext(logger, "content file unreadable", "content_read_failed",
			logging.String("file", path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "using default content"))
	case !ok:
		logger.Info("content file not found or empty, using default content", logging.String("file", path))
	default:
		logger.Debug("using content override", logging.String("section", title), logging.String("file", path))
		return Section{Title: title, Blocks: markdown.ParseBlocks(content), Source: path}
	}
	return Section{Title: title, Blocks: markdown.ParseBlocks(fallback)}
}

func (b *Builder) renderChart(table *budget.Table) ([]byte, error) {
	bars := budget.ChartSeries(table, Columns(b.cfg))
	groups := make([]chart.Group, 0, len(bars))
	for _, bar := range bars {
		groups = append(groups, chart.Group{Label: bar.Label, Values: []float64{bar.Budgeted, bar.Remaining}})
	}
	series := []chart.Series{
		{Name: b.cfg.Budget.BudgetedColumn, Color: b.cfg.Chart.BudgetedColor},
		{Name: b.cfg.Budget.RemainingColumn, Color: b.cfg.Chart.RemainingColor},
	}
	var buf bytes.Buffer
	err := chart.BarChart(&buf, series, groups, chart.Options{
		Width:      b.cfg.Chart.Width,
		Height:     b.cfg.Chart.Height,
		Title:      chartTitle,
		XLabel:     chartXLabel,
		YLabel:     chartYLabel,
		FormatTick: budget.FormatNumber,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (b *Builder) statusSection(logger *slog.Logger) (Section, bool) {
	path := b.cfg.ContentFile(b.cfg.Report.StatusFile)
	doc, err := statusdoc.ParseFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("no status document", logging.String("file", path))
		return Section{}, false
	}
	if err != nil {
		logging.WarnWithContext(logger, "status document unreadable", "status_read_failed",
			logging.String("file", path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "project status section omitted"))
		return Section{}, false
	}
	if problems := doc.Check(); len(problems) > 0 {
		messages := make([]string, len(problems))
		for i, p := range problems {
			messages[i] = p.String()
		}
		logging.WarnWithContext(logger, "status document has structural problems", "status_check_failed",
			logging.String("file", path),
			logging.Int("problems", len(problems)),
			logging.Any("details", messages),
			logging.String(logging.FieldImpact, "project status included as written"))
	}

	section := Section{Title: SectionProjectStatus, Blocks: doc.Preamble, Source: path}
	for _, s := range doc.Sections {
		section.Subsections = append(section.Subsections, Section{Title: s.Title, Blocks: s.Blocks})
	}
	return section, true
}
