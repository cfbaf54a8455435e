package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateBudget(); err != nil {
		return err
	}
	if err := c.validateReport(); err != nil {
		return err
	}
	if err := c.validateChart(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateBudget() error {
	columns := map[string]string{
		"budget.task_column":      c.Budget.TaskColumn,
		"budget.budgeted_column":  c.Budget.BudgetedColumn,
		"budget.remaining_column": c.Budget.RemainingColumn,
	}
	seen := make(map[string]string, len(columns))
	for key, value := range columns {
		folded := strings.ToLower(value)
		if other, ok := seen[folded]; ok {
			return fmt.Errorf("%s and %s must name different columns", other, key)
		}
		seen[folded] = key
	}
	return nil
}

func (c *Config) validateReport() error {
	switch c.Report.Format {
	case FormatHTML, FormatMarkdown:
	default:
		return fmt.Errorf("report.format must be %q or %q, got %q", FormatHTML, FormatMarkdown, c.Report.Format)
	}
	if strings.ContainsAny(c.Report.FilePrefix, `/\`) {
		return errors.New("report.file_prefix must not contain path separators")
	}
	if c.Report.MaxVersions < 2 {
		return errors.New("report.max_versions must be at least 2")
	}
	return nil
}

func (c *Config) validateChart() error {
	if !c.Chart.Enabled {
		return nil
	}
	if err := ensurePositiveMap(map[string]int{
		"chart.width":  c.Chart.Width,
		"chart.height": c.Chart.Height,
	}); err != nil {
		return err
	}
	if !hexColor.MatchString(c.Chart.BudgetedColor) {
		return fmt.Errorf("chart.budgeted_color must be a hex colour, got %q", c.Chart.BudgetedColor)
	}
	if !hexColor.MatchString(c.Chart.RemainingColor) {
		return fmt.Errorf("chart.remaining_color must be a hex colour, got %q", c.Chart.RemainingColor)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
