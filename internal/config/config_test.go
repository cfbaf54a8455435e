package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"rpt/internal/config"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("RPT_REPORTS_DIR", "")
	t.Setenv("RPT_CONTENT_DIR", "")
	return home
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	home := isolateHome(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(home, ".config", "rpt", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(home, ".local", "state", "rpt")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if !filepath.IsAbs(cfg.Paths.ReportsDir) || filepath.Base(cfg.Paths.ReportsDir) != "reports" {
		t.Fatalf("expected absolute reports dir, got %q", cfg.Paths.ReportsDir)
	}
	if cfg.Budget.Input != "budget.xlsx" {
		t.Fatalf("unexpected budget input %q", cfg.Budget.Input)
	}
	if cfg.Report.Format != config.FormatHTML {
		t.Fatalf("unexpected default format %q", cfg.Report.Format)
	}
	if cfg.Chart.BudgetedColor != "#2E8B57" || cfg.Chart.RemainingColor != "#4169E1" {
		t.Fatalf("unexpected chart colours %q %q", cfg.Chart.BudgetedColor, cfg.Chart.RemainingColor)
	}
	if cfg.HistoryPath() != filepath.Join(wantState, "history.db") {
		t.Fatalf("unexpected history path %q", cfg.HistoryPath())
	}
}

func TestLoadCustomPath(t *testing.T) {
	isolateHome(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "rpt.toml")

	type payload struct {
		Paths struct {
			ReportsDir string `toml:"reports_dir"`
		} `toml:"paths"`
		Budget struct {
			Input       string `toml:"input"`
			TotalsLabel string `toml:"totals_label"`
		} `toml:"budget"`
		Report struct {
			Format string `toml:"format"`
		} `toml:"report"`
	}
	custom := payload{}
	custom.Paths.ReportsDir = filepath.Join(tempDir, "out")
	custom.Budget.Input = "q3.csv"
	custom.Budget.TotalsLabel = "  Grand Total "
	custom.Report.Format = "MD"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Paths.ReportsDir != filepath.Join(tempDir, "out") {
		t.Fatalf("unexpected reports dir %q", cfg.Paths.ReportsDir)
	}
	if cfg.Budget.Input != "q3.csv" {
		t.Fatalf("unexpected input %q", cfg.Budget.Input)
	}
	if cfg.Budget.TotalsLabel != "Grand Total" {
		t.Fatalf("expected trimmed totals label, got %q", cfg.Budget.TotalsLabel)
	}
	if cfg.Report.Format != config.FormatMarkdown {
		t.Fatalf("expected markdown format, got %q", cfg.Report.Format)
	}
	if cfg.Budget.TaskColumn != "Task" {
		t.Fatalf("expected default task column to survive partial config, got %q", cfg.Budget.TaskColumn)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	isolateHome(t)
	configPath := filepath.Join(t.TempDir(), "rpt.toml")
	if err := os.WriteFile(configPath, []byte("[paths]\nreport_dir = \"typo\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestEnvironmentOverridesPaths(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	t.Setenv("RPT_REPORTS_DIR", filepath.Join(dir, "reports"))
	t.Setenv("RPT_CONTENT_DIR", filepath.Join(dir, "content"))

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.ReportsDir != filepath.Join(dir, "reports") {
		t.Fatalf("unexpected reports dir %q", cfg.Paths.ReportsDir)
	}
	if got := cfg.ContentFile("introduction.md"); got != filepath.Join(dir, "content", "introduction.md") {
		t.Fatalf("unexpected content file %q", got)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"format", func(c *config.Config) { c.Report.Format = "docx" }, "report.format"},
		{"prefix", func(c *config.Config) { c.Report.FilePrefix = "a/b" }, "report.file_prefix"},
		{"versions", func(c *config.Config) { c.Report.MaxVersions = 1 }, "report.max_versions"},
		{"colour", func(c *config.Config) { c.Chart.BudgetedColor = "green" }, "chart.budgeted_color"},
		{"width", func(c *config.Config) { c.Chart.Width = 0 }, "chart.width"},
		{"columns", func(c *config.Config) { c.Budget.RemainingColumn = "budgeted" }, "must name different columns"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error to mention %q, got %v", tc.want, err)
			}
		})
	}
}

func TestDisabledChartSkipsChartValidation(t *testing.T) {
	cfg := config.Default()
	cfg.Chart.Enabled = false
	cfg.Chart.Width = -1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected disabled chart to skip validation, got %v", err)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	isolateHome(t)
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Report.MaxVersions != 100 {
		t.Fatalf("unexpected max versions %d", cfg.Report.MaxVersions)
	}
}

func TestFormatHelpers(t *testing.T) {
	if config.NormalizeFormat(" Markdown ") != config.FormatMarkdown {
		t.Fatal("expected markdown normalization")
	}
	if config.FormatExtension("md") != ".md" || config.FormatExtension("html") != ".html" {
		t.Fatal("unexpected format extensions")
	}
}
