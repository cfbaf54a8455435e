package report

import (
	"time"

	"rpt/internal/budget"
	"rpt/internal/markdown"
)

// Section titles in report order.
const (
	SectionExecutiveSummary = "Executive Summary"
	SectionBudgetDetails    = "Budget Allocation Details"
	SectionKeyFindings      = "Key Findings"
	SectionVisualization    = "Budget Visualization"
	SectionProjectStatus    = "Project Status"
)

// Override files looked up in the content directory.
const (
	IntroductionFile     = "introduction.md"
	KeyPointsFile        = "key_points.md"
	ChartDescriptionFile = "chart_description.md"
)

const (
	chartTitle      = "Budget Status by Task"
	chartXLabel     = "Project Tasks"
	chartYLabel     = "Amount ($)"
	titleDateLayout = "January 02, 2006"
)

// Section is one headed part of a report.
type Section struct {
	Title  string           `json:"title"`
	Blocks []markdown.Block `json:"blocks,omitempty"`
	// Source is the override file the prose came from; empty for built-in text.
	Source string `json:"source,omitempty"`
	// Table places the budget table after the prose.
	Table bool `json:"table,omitempty"`
	// Chart places the budget chart after the prose.
	Chart       bool      `json:"chart,omitempty"`
	Subsections []Section `json:"subsections,omitempty"`
}

// Report is an assembled report ready to render.
type Report struct {
	Title    string         `json:"title"`
	Date     time.Time      `json:"date"`
	Sections []Section      `json:"sections"`
	Table    *budget.Table  `json:"-"`
	Summary  budget.Summary `json:"summary"`
	// ChartSVG holds the rendered chart, nil when charts are disabled.
	ChartSVG []byte `json:"-"`
	// StatusIncluded reports whether a status document was appended.
	StatusIncluded bool `json:"status_included"`
}

// Section returns the section with the given title.
func (r *Report) Section(title string) (Section, bool) {
	for _, s := range r.Sections {
		if s.Title == title {
			return s, true
		}
	}
	return Section{}, false
}
