package report

import (
	"fmt"
	"io"
	"strings"

	"rpt/internal/markdown"
)

// RenderMarkdown writes rep as a markdown document. chartRef is the path
// the chart image is linked from; the chart is omitted when it is empty.
func RenderMarkdown(w io.Writer, rep *Report, chartRef string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", rep.Title)
	for _, section := range rep.Sections {
		writeMarkdownSection(&b, rep, section, 2, chartRef)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeMarkdownSection(b *strings.Builder, rep *Report, section Section, level int, chartRef string) {
	fmt.Fprintf(b, "\n%s %s\n", strings.Repeat("#", level), section.Title)
	writeMarkdownBlocks(b, section.Blocks)
	if section.Table && rep.Table != nil && len(rep.Table.Columns) > 0 {
		b.WriteString("\n")
		b.WriteString(budgetTable(rep.Table).RenderMarkdown())
		b.WriteString("\n")
	}
	if section.Chart && chartRef != "" {
		fmt.Fprintf(b, "\n![%s](%s)\n", chartTitle, chartRef)
	}
	for _, sub := range section.Subsections {
		writeMarkdownSection(b, rep, sub, level+1, chartRef)
	}
}

func writeMarkdownBlocks(b *strings.Builder, blocks []markdown.Block) {
	for _, block := range blocks {
		b.WriteString("\n")
		if block.Kind == markdown.Bullets {
			b.WriteString(markdown.BulletList(block.Items))
			b.WriteString("\n")
			continue
		}
		b.WriteString(block.Text)
		b.WriteString("\n")
	}
}
