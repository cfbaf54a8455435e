package statusdoc

import (
	"strings"

	"rpt/internal/markdown"
)

// Scaffold returns a new status report that passes Check. period labels the
// reporting window in the title and may be empty.
func Scaffold(period string) string {
	title := "Project Status Report"
	if p := strings.TrimSpace(period); p != "" {
		title += " - " + p
	}
	doc := Document{
		Title: title,
		Sections: []Section{
			{Title: TitleSummary, Blocks: []markdown.Block{
				{Kind: markdown.Paragraph, Text: "Summarize overall progress, schedule, and budget position for the period."},
			}},
			{Title: TitleDeliverables, Blocks: []markdown.Block{
				{Kind: markdown.Bullets, Items: []string{"Deliverable name: status and percent complete"}},
			}},
			{Title: TitleChallenges, Blocks: []markdown.Block{
				{Kind: markdown.Bullets, Items: []string{"Issue or risk and the mitigation in place"}},
			}},
			{Title: TitleNextPeriod, Blocks: []markdown.Block{
				{Kind: markdown.Bullets, Items: []string{"Planned activity and owner"}},
			}},
		},
	}
	return doc.Markdown()
}
