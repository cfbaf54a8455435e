package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeBudget(); err != nil {
		return err
	}
	c.normalizeReport()
	c.normalizeChart()
	c.normalizeLogging()
	if c.History.RetentionDays < 0 {
		c.History.RetentionDays = 0
	}
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("RPT_REPORTS_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.ReportsDir = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("RPT_CONTENT_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.ContentDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.ReportsDir) == "" {
		c.Paths.ReportsDir = defaultReportsDir
	}
	if strings.TrimSpace(c.Paths.ContentDir) == "" {
		c.Paths.ContentDir = defaultContentDir
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir()
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}

	var err error
	if c.Paths.ReportsDir, err = expandPath(c.Paths.ReportsDir); err != nil {
		return fmt.Errorf("paths.reports_dir: %w", err)
	}
	if c.Paths.ContentDir, err = expandPath(c.Paths.ContentDir); err != nil {
		return fmt.Errorf("paths.content_dir: %w", err)
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeBudget() error {
	c.Budget.Input = strings.TrimSpace(c.Budget.Input)
	if c.Budget.Input == "" {
		c.Budget.Input = defaultBudgetInput
	}
	c.Budget.Sheet = strings.TrimSpace(c.Budget.Sheet)
	c.Budget.TaskColumn = fallback(c.Budget.TaskColumn, defaultTaskColumn)
	c.Budget.BudgetedColumn = fallback(c.Budget.BudgetedColumn, defaultBudgetedColumn)
	c.Budget.RemainingColumn = fallback(c.Budget.RemainingColumn, defaultRemainingColumn)
	c.Budget.TotalsLabel = fallback(c.Budget.TotalsLabel, defaultTotalsLabel)
	return nil
}

func (c *Config) normalizeReport() {
	c.Report.Format = NormalizeFormat(c.Report.Format)
	if c.Report.Format == "" {
		c.Report.Format = defaultReportFormat
	}
	c.Report.FilePrefix = fallback(c.Report.FilePrefix, defaultFilePrefix)
	c.Report.TitlePrefix = fallback(c.Report.TitlePrefix, defaultTitlePrefix)
	c.Report.StatusFile = fallback(c.Report.StatusFile, defaultStatusFile)
	if c.Report.MaxVersions <= 0 {
		c.Report.MaxVersions = defaultMaxVersions
	}
}

func (c *Config) normalizeChart() {
	if c.Chart.Width <= 0 {
		c.Chart.Width = defaultChartWidth
	}
	if c.Chart.Height <= 0 {
		c.Chart.Height = defaultChartHeight
	}
	c.Chart.BudgetedColor = fallback(c.Chart.BudgetedColor, defaultBudgetedColor)
	c.Chart.RemainingColor = fallback(c.Chart.RemainingColor, defaultRemainingColor)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// NormalizeFormat maps user supplied format names onto the canonical values.
// Unknown names are returned lowercased so validation can reject them.
func NormalizeFormat(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "md", "markdown":
		return FormatMarkdown
	case "htm", "html":
		return FormatHTML
	default:
		return value
	}
}

// FormatExtension returns the file extension used for a report format.
func FormatExtension(format string) string {
	if NormalizeFormat(format) == FormatMarkdown {
		return ".md"
	}
	return ".html"
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func fallback(value, def string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	return value
}
