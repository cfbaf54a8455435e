package report_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"rpt/internal/report"
	"rpt/internal/testsupport"
)

func buildSample(t *testing.T, opts ...testsupport.ConfigOption) *report.Report {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	table := loadSample(t, cfg.Budget.Input, testsupport.SampleBudget)
	rep, err := report.NewBuilder(cfg, nil).Build(context.Background(), table, reportDate)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return rep
}

func TestRenderMarkdown(t *testing.T) {
	rep := buildSample(t)
	var buf bytes.Buffer
	if err := report.RenderMarkdown(&buf, rep, "chart.svg"); err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"# Budget Report - January 25, 2026\n",
		"\n## Executive Summary\n",
		"\n## Budget Allocation Details\n\nTotal Budget: $75,000",
		"| Task |",
		"Development",
		"50,000",
		"\n## Key Findings\n\n- Overall budget utilization stands at 53.3%\n",
		"![Budget Status by Task](chart.svg)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("markdown missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "## Key Findings") > strings.Index(out, "## Budget Visualization") {
		t.Fatal("sections out of order")
	}

	buf.Reset()
	if err := report.RenderMarkdown(&buf, rep, ""); err != nil {
		t.Fatalf("RenderMarkdown without chart: %v", err)
	}
	if strings.Contains(buf.String(), "![") {
		t.Fatal("chart link rendered without a chart reference")
	}
}

func TestRenderHTML(t *testing.T) {
	rep := buildSample(t, testsupport.WithContent(map[string]string{
		report.IntroductionFile: "Costs <rose> & fell.",
	}))
	var buf bytes.Buffer
	if err := report.RenderHTML(&buf, rep); err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"<title>Budget Report - January 25, 2026</title>",
		"<h2>Executive Summary</h2>",
		"Costs &lt;rose&gt; &amp; fell.",
		`class="budget-table"`,
		"Development",
		"<li>Highest utilization: Design at 80.0%</li>",
		"<svg",
		"Budget Status by Task",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("html missing %q", want)
		}
	}
}
