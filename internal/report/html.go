package report

import (
	"embed"
	"html/template"
	"io"

	"rpt/internal/markdown"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var htmlTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))

type htmlDocument struct {
	Title    string
	Sections []htmlSection
}

type htmlSection struct {
	Title       string
	Level       int
	Blocks      []htmlBlock
	Table       template.HTML
	Chart       template.HTML
	Subsections []htmlSection
}

type htmlBlock struct {
	Text  string
	Items []string
}

// RenderHTML writes rep as a standalone HTML page with the chart inlined.
func RenderHTML(w io.Writer, rep *Report) error {
	doc := htmlDocument{Title: rep.Title}
	for _, section := range rep.Sections {
		doc.Sections = append(doc.Sections, newHTMLSection(rep, section, 2))
	}
	return htmlTemplate.Execute(w, doc)
}

func newHTMLSection(rep *Report, section Section, level int) htmlSection {
	out := htmlSection{Title: section.Title, Level: level}
	for _, block := range section.Blocks {
		if block.Kind == markdown.Bullets {
			out.Blocks = append(out.Blocks, htmlBlock{Items: block.Items})
			continue
		}
		out.Blocks = append(out.Blocks, htmlBlock{Text: block.Text})
	}
	if section.Table && rep.Table != nil && len(rep.Table.Columns) > 0 {
		// go-pretty escapes cell text.
		out.Table = template.HTML(budgetTable(rep.Table).RenderHTML())
	}
	if section.Chart && len(rep.ChartSVG) > 0 {
		// The chart renderer escapes every label it emits.
		out.Chart = template.HTML(rep.ChartSVG)
	}
	for _, sub := range section.Subsections {
		out.Subsections = append(out.Subsections, newHTMLSection(rep, sub, level+1))
	}
	return out
}
