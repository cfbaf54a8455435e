package statusdoc

import (
	"fmt"
	"strings"

	"rpt/internal/textutil"
)

// suggestThreshold is the minimum title similarity for a "did you mean" hint.
const suggestThreshold = 0.4

// ProblemCode classifies a structural problem in a status report.
type ProblemCode string

const (
	ProblemMissing    ProblemCode = "missing_section"
	ProblemDuplicate  ProblemCode = "duplicate_section"
	ProblemUnexpected ProblemCode = "unexpected_section"
	ProblemOrder      ProblemCode = "section_order"
	ProblemEmpty      ProblemCode = "empty_section"
	ProblemNoItems    ProblemCode = "no_list_items"
)

// Problem is one failed check.
type Problem struct {
	Code    ProblemCode `json:"code"`
	Section string      `json:"section,omitempty"`
	Line    int         `json:"line,omitempty"`
	Message string      `json:"message"`
	// Suggestion names the required section an unexpected heading most
	// resembles, when one is close enough.
	Suggestion string `json:"suggestion,omitempty"`
}

func (p Problem) String() string {
	if p.Line > 0 {
		return fmt.Sprintf("line %d: %s", p.Line, p.Message)
	}
	return p.Message
}

// Check verifies the four-section layout. A nil result means the document
// has exactly the required sections, in order, each non-empty, and every
// list section carries at least one bullet item.
func (d *Document) Check() []Problem {
	var problems []Problem
	seen := make(map[string]Section, len(SectionTitles))
	var order []string

	for _, section := range d.Sections {
		canonical, ok := CanonicalTitle(section.Title)
		if !ok {
			problems = append(problems, unexpected(section))
			continue
		}
		if first, dup := seen[canonical]; dup {
			problems = append(problems, Problem{
				Code:    ProblemDuplicate,
				Section: canonical,
				Line:    section.Line,
				Message: fmt.Sprintf("section %q repeats the one on line %d", canonical, first.Line),
			})
			continue
		}
		seen[canonical] = section
		order = append(order, canonical)
	}

	for _, title := range SectionTitles {
		if _, ok := seen[title]; !ok {
			problems = append(problems, Problem{
				Code:    ProblemMissing,
				Section: title,
				Message: fmt.Sprintf("missing section %q", title),
			})
		}
	}

	if !inCanonicalOrder(order) {
		problems = append(problems, Problem{
			Code:    ProblemOrder,
			Message: fmt.Sprintf("sections appear as %s; expected %s", strings.Join(quoted(order), ", "), strings.Join(quoted(SectionTitles), ", ")),
		})
	}

	for _, title := range SectionTitles {
		section, ok := seen[title]
		if !ok {
			continue
		}
		if section.Empty() {
			problems = append(problems, Problem{
				Code:    ProblemEmpty,
				Section: title,
				Line:    section.Line,
				Message: fmt.Sprintf("section %q is empty", title),
			})
			continue
		}
		if listSections[title] && len(section.Items()) == 0 {
			problems = append(problems, Problem{
				Code:    ProblemNoItems,
				Section: title,
				Line:    section.Line,
				Message: fmt.Sprintf("section %q needs at least one list item", title),
			})
		}
	}
	return problems
}

func unexpected(section Section) Problem {
	p := Problem{
		Code:    ProblemUnexpected,
		Section: section.Title,
		Line:    section.Line,
		Message: fmt.Sprintf("unexpected section %q; expected only %s", section.Title, strings.Join(quoted(SectionTitles), ", ")),
	}
	if suggestion, ok := textutil.Closest(section.Title, SectionTitles, suggestThreshold); ok {
		p.Suggestion = suggestion
		p.Message = fmt.Sprintf("unexpected section %q; did you mean %q?", section.Title, suggestion)
	}
	return p
}

func inCanonicalOrder(order []string) bool {
	rank := make(map[string]int, len(SectionTitles))
	for i, title := range SectionTitles {
		rank[title] = i
	}
	for i := 1; i < len(order); i++ {
		if rank[order[i]] < rank[order[i-1]] {
			return false
		}
	}
	return true
}

func quoted(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprintf("%q", v)
	}
	return out
}
