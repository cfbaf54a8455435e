package statusdoc_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"rpt/internal/markdown"
	"rpt/internal/statusdoc"
)

const sampleReport = `# Project Status Report - March

Prepared for the steering group.

## Summary

The project remains on schedule. Spending tracks the approved plan.

## Deliverables Progress

- Requirements document: complete
- Data migration: 60% complete,
  validation scripts in review

## Challenges

- Vendor onboarding slipped two weeks

## Next Period Activities

Focus areas:

- Finish migration dry run
- Start user acceptance testing
`

func mustParse(t *testing.T, text string) *statusdoc.Document {
	t.Helper()
	doc, err := statusdoc.Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

func TestParseSections(t *testing.T) {
	doc := mustParse(t, sampleReport)

	if doc.Title != "Project Status Report - March" {
		t.Fatalf("unexpected title %q", doc.Title)
	}
	wantPreamble := []markdown.Block{{Kind: markdown.Paragraph, Text: "Prepared for the steering group."}}
	if diff := cmp.Diff(wantPreamble, doc.Preamble); diff != "" {
		t.Fatalf("preamble mismatch (-want +got):\n%s", diff)
	}

	var titles []string
	for _, s := range doc.Sections {
		titles = append(titles, s.Title)
	}
	if diff := cmp.Diff(statusdoc.SectionTitles, titles); diff != "" {
		t.Fatalf("section titles mismatch (-want +got):\n%s", diff)
	}

	deliverables, ok := doc.Section("deliverables  progress")
	if !ok {
		t.Fatal("expected loose title lookup to succeed")
	}
	wantItems := []string{"Requirements document: complete", "Data migration: 60% complete, validation scripts in review"}
	if diff := cmp.Diff(wantItems, deliverables.Items()); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
	if deliverables.Line != 9 {
		t.Fatalf("expected heading line 9, got %d", deliverables.Line)
	}

	next, _ := doc.Section(statusdoc.TitleNextPeriod)
	if len(next.Blocks) != 2 || next.Blocks[0].Kind != markdown.Paragraph {
		t.Fatalf("expected paragraph then list, got %+v", next.Blocks)
	}
}

func TestCheckAcceptsCompleteReport(t *testing.T) {
	if problems := mustParse(t, sampleReport).Check(); len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
}

func TestCheckWithoutTitleHeading(t *testing.T) {
	text := "# Summary\n\nAll good.\n\n# Deliverables Progress\n\n- one\n\n# Challenges\n\n- two\n\n# Next Period Activities\n\n- three\n"
	doc := mustParse(t, text)
	if doc.Title != "" {
		t.Fatalf("expected no title, got %q", doc.Title)
	}
	if problems := doc.Check(); len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
}

func TestCheckReportsProblems(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		codes []statusdoc.ProblemCode
	}{
		{
			name:  "missing section",
			text:  "## Summary\n\ntext\n\n## Deliverables Progress\n\n- a\n\n## Challenges\n\n- b\n",
			codes: []statusdoc.ProblemCode{statusdoc.ProblemMissing},
		},
		{
			name:  "empty section",
			text:  "## Summary\n\n## Deliverables Progress\n\n- a\n\n## Challenges\n\n- b\n\n## Next Period Activities\n\n- c\n",
			codes: []statusdoc.ProblemCode{statusdoc.ProblemEmpty},
		},
		{
			name:  "list section without items",
			text:  "## Summary\n\ntext\n\n## Deliverables Progress\n\nAll delivered.\n\n## Challenges\n\n- b\n\n## Next Period Activities\n\n- c\n",
			codes: []statusdoc.ProblemCode{statusdoc.ProblemNoItems},
		},
		{
			name:  "duplicate and unexpected",
			text:  "## Summary\n\ntext\n\n## Summary\n\nagain\n\n## Budget\n\nx\n\n## Deliverables Progress\n\n- a\n\n## Challenges\n\n- b\n\n## Next Period Activities\n\n- c\n",
			codes: []statusdoc.ProblemCode{statusdoc.ProblemDuplicate, statusdoc.ProblemUnexpected},
		},
		{
			name:  "misordered",
			text:  "## Challenges\n\n- b\n\n## Summary\n\ntext\n\n## Deliverables Progress\n\n- a\n\n## Next Period Activities\n\n- c\n",
			codes: []statusdoc.ProblemCode{statusdoc.ProblemOrder},
		},
		{
			name: "no headings",
			text: "Just prose.\n",
			codes: []statusdoc.ProblemCode{
				statusdoc.ProblemMissing, statusdoc.ProblemMissing,
				statusdoc.ProblemMissing, statusdoc.ProblemMissing,
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			problems := mustParse(t, tc.text).Check()
			var codes []statusdoc.ProblemCode
			for _, p := range problems {
				codes = append(codes, p.Code)
			}
			if diff := cmp.Diff(tc.codes, codes); diff != "" {
				t.Fatalf("problem codes mismatch (-want +got):\n%s\nproblems: %v", diff, problems)
			}
		})
	}
}

func TestCheckSuggestsCloseTitle(t *testing.T) {
	text := "## Summary\n\ntext\n\n## Deliverables\n\n- a\n\n## Challenges\n\n- b\n\n## Next Period Activities\n\n- c\n"
	problems := mustParse(t, text).Check()
	if len(problems) != 2 {
		t.Fatalf("expected unexpected and missing problems, got %v", problems)
	}
	if problems[0].Code != statusdoc.ProblemUnexpected || problems[0].Suggestion != statusdoc.TitleDeliverables {
		t.Fatalf("expected suggestion %q, got %+v", statusdoc.TitleDeliverables, problems[0])
	}
	if problems[0].Line != 5 {
		t.Fatalf("expected line 5, got %d", problems[0].Line)
	}
	if problems[1].Code != statusdoc.ProblemMissing {
		t.Fatalf("expected missing section problem, got %+v", problems[1])
	}
}

func TestHeadingsInsideCodeFenceAreIgnored(t *testing.T) {
	text := "## Summary\n\n```\n## Challenges\n```\n\n## Deliverables Progress\n\n- a\n"
	doc := mustParse(t, text)
	if len(doc.Sections) != 2 {
		t.Fatalf("expected fenced heading to stay inside Summary, got %d sections", len(doc.Sections))
	}
}

func TestScaffoldPassesCheck(t *testing.T) {
	text := statusdoc.Scaffold("Q3 2026")
	doc := mustParse(t, text)
	if doc.Title != "Project Status Report - Q3 2026" {
		t.Fatalf("unexpected scaffold title %q", doc.Title)
	}
	if problems := doc.Check(); len(problems) != 0 {
		t.Fatalf("scaffold should pass check, got %v", problems)
	}
}

func TestMarkdownRoundTrip(t *testing.T) {
	doc := mustParse(t, sampleReport)
	again := mustParse(t, doc.Markdown())
	if diff := cmp.Diff(doc.Sections, again.Sections, cmpopts.IgnoreFields(statusdoc.Section{}, "Line")); diff != "" {
		t.Fatalf("round trip changed sections (-first +second):\n%s", diff)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.md")
	if err := os.WriteFile(path, []byte(sampleReport), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := statusdoc.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(doc.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(doc.Sections))
	}
	if _, err := statusdoc.ParseFile(filepath.Join(t.TempDir(), "nope.md")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
