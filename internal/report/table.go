package report

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"rpt/internal/budget"
)

// budgetTable lays out every row of t, totals included, with numeric
// columns right aligned.
func budgetTable(t *budget.Table) table.Writer {
	tw := table.NewWriter()
	style := table.StyleDefault
	style.Format.Header = text.FormatDefault
	style.HTML = table.HTMLOptions{
		CSSClass:    "budget-table",
		EmptyColumn: "&nbsp;",
		EscapeText:  true,
		Newline:     "<br/>",
	}
	tw.SetStyle(style)

	columns := len(t.Columns)
	header := make(table.Row, columns)
	for i, name := range t.Columns {
		header[i] = name
	}
	tw.AppendHeader(header)

	numeric := make([]bool, columns)
	for _, row := range t.Rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = budget.FormatCell(row[i])
				numeric[i] = numeric[i] || row[i].Numeric
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if numeric[i] {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: align,
		})
	}
	tw.SetColumnConfigs(configs)
	return tw
}
