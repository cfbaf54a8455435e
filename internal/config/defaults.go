package config

const (
	defaultConfigPath       = "~/.config/rpt/config.toml"
	defaultReportsDir       = "reports"
	defaultContentDir       = "."
	defaultStateDirFallback = "~/.local/state/rpt"
	defaultLogDir           = "~/.local/state/rpt/logs"
	defaultBudgetInput      = "budget.xlsx"
	defaultTaskColumn       = "Task"
	defaultBudgetedColumn   = "Budgeted"
	defaultRemainingColumn  = "Remaining"
	defaultTotalsLabel      = "TOTALS"
	defaultReportFormat     = FormatHTML
	defaultFilePrefix       = "project_report"
	defaultTitlePrefix      = "Budget Report"
	defaultStatusFile       = "status.md"
	defaultMaxVersions      = 100
	defaultChartWidth       = 960
	defaultChartHeight      = 640
	defaultBudgetedColor    = "#2E8B57"
	defaultRemainingColor   = "#4169E1"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultRetentionDays    = 365
)

// Report output formats.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ReportsDir: defaultReportsDir,
			ContentDir: defaultContentDir,
			StateDir:   defaultStateDir(),
			LogDir:     defaultLogDir,
		},
		Budget: Budget{
			Input:           defaultBudgetInput,
			TaskColumn:      defaultTaskColumn,
			BudgetedColumn:  defaultBudgetedColumn,
			RemainingColumn: defaultRemainingColumn,
			TotalsLabel:     defaultTotalsLabel,
		},
		Report: Report{
			Format:        defaultReportFormat,
			FilePrefix:    defaultFilePrefix,
			TitlePrefix:   defaultTitlePrefix,
			IncludeStatus: true,
			StatusFile:    defaultStatusFile,
			MaxVersions:   defaultMaxVersions,
		},
		Chart: Chart{
			Enabled:        true,
			Width:          defaultChartWidth,
			Height:         defaultChartHeight,
			BudgetedColor:  defaultBudgetedColor,
			RemainingColor: defaultRemainingColor,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled:       true,
			RetentionDays: defaultRetentionDays,
		},
	}
}
