package budget

import (
	"math"
	"strconv"
	"strings"
)

// Columns names the columns analysis reads.
type Columns struct {
	Task        string
	Budgeted    string
	Remaining   string
	TotalsLabel string
}

// DefaultColumns matches the layout of the standard budget workbook.
func DefaultColumns() Columns {
	return Columns{Task: "Task", Budgeted: "Budgeted", Remaining: "Remaining", TotalsLabel: "TOTALS"}
}

// TaskUtilization is one task's share of its budget already spent.
type TaskUtilization struct {
	Task        string  `json:"task"`
	Budgeted    float64 `json:"budgeted"`
	Remaining   float64 `json:"remaining"`
	Utilization float64 `json:"utilization"`
}

// Summary holds the figures derived from a budget table.
type Summary struct {
	RowCount       int               `json:"row_count"`
	HasAnalysis    bool              `json:"has_analysis"`
	HasTotalsRow   bool              `json:"has_totals_row"`
	TotalBudgeted  float64           `json:"total_budgeted"`
	TotalRemaining float64           `json:"total_remaining"`
	Utilization    float64           `json:"utilization"`
	Tasks          []TaskUtilization `json:"tasks,omitempty"`
	Highest        *TaskUtilization  `json:"highest,omitempty"`
	Lowest         *TaskUtilization  `json:"lowest,omitempty"`
}

// Utilization computes (budgeted - remaining) / budgeted as a percentage.
// A zero or negative budget yields 0.
func Utilization(budgeted, remaining float64) float64 {
	if budgeted <= 0 {
		return 0
	}
	return (budgeted - remaining) / budgeted * 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

type rowView struct {
	table *Table
	cols  Columns
	task  int
	bud   int
	rem   int
}

func newRowView(t *Table, cols Columns) rowView {
	return rowView{
		table: t,
		cols:  cols,
		task:  t.ColumnIndex(cols.Task),
		bud:   t.ColumnIndex(cols.Budgeted),
		rem:   t.ColumnIndex(cols.Remaining),
	}
}

func (v rowView) label(i int) string {
	if v.task >= 0 {
		if name := v.table.Rows[i][v.task].Raw; name != "" {
			return name
		}
	}
	return "Row " + strconv.Itoa(i+1)
}

func (v rowView) isTotals(i int) bool {
	if v.task < 0 || v.cols.TotalsLabel == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(v.table.Rows[i][v.task].Raw), v.cols.TotalsLabel)
}

func (v rowView) number(i, col int) float64 {
	if col < 0 {
		return 0
	}
	cell := v.table.Rows[i][col]
	if !cell.Numeric {
		return 0
	}
	return cell.Value
}

// Summarize totals the table and ranks tasks by utilization. The totals row
// does not contribute to sums. Highest and lowest are only set when the table
// has more than one row and at least one task has a positive budget; ties keep
// the earliest row.
func Summarize(t *Table, cols Columns) Summary {
	summary := Summary{}
	if t == nil {
		return summary
	}
	summary.RowCount = len(t.Rows)
	view := newRowView(t, cols)

	for i := range t.Rows {
		if view.isTotals(i) {
			summary.HasTotalsRow = true
			continue
		}
		summary.TotalBudgeted += view.number(i, view.bud)
		summary.TotalRemaining += view.number(i, view.rem)
	}
	summary.Utilization = Utilization(summary.TotalBudgeted, summary.TotalRemaining)

	if view.bud < 0 || view.rem < 0 {
		return summary
	}
	summary.HasAnalysis = true

	for i := range t.Rows {
		if view.isTotals(i) {
			continue
		}
		budgeted := view.number(i, view.bud)
		if budgeted <= 0 {
			continue
		}
		remaining := view.number(i, view.rem)
		summary.Tasks = append(summary.Tasks, TaskUtilization{
			Task:        view.label(i),
			Budgeted:    budgeted,
			Remaining:   remaining,
			Utilization: round1(Utilization(budgeted, remaining)),
		})
	}

	if summary.RowCount > 1 && len(summary.Tasks) > 0 {
		hi, lo := 0, 0
		for i, task := range summary.Tasks {
			if task.Utilization > summary.Tasks[hi].Utilization {
				hi = i
			}
			if task.Utilization < summary.Tasks[lo].Utilization {
				lo = i
			}
		}
		highest, lowest := summary.Tasks[hi], summary.Tasks[lo]
		summary.Highest = &highest
		summary.Lowest = &lowest
	}
	return summary
}

// Bar is one task in the budget chart.
type Bar struct {
	Label     string  `json:"label"`
	Budgeted  float64 `json:"budgeted"`
	Remaining float64 `json:"remaining"`
}

// ChartSeries returns one bar per task excluding the totals row. When that
// leaves nothing, every row is charted.
func ChartSeries(t *Table, cols Columns) []Bar {
	if t == nil {
		return nil
	}
	view := newRowView(t, cols)
	collect := func(skipTotals bool) []Bar {
		var bars []Bar
		for i := range t.Rows {
			if skipTotals && view.isTotals(i) {
				continue
			}
			bars = append(bars, Bar{
				Label:     view.label(i),
				Budgeted:  view.number(i, view.bud),
				Remaining: view.number(i, view.rem),
			})
		}
		return bars
	}
	bars := collect(true)
	if len(bars) == 0 {
		bars = collect(false)
	}
	return bars
}
