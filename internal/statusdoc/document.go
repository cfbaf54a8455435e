package statusdoc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"

	"rpt/internal/markdown"
)

// Canonical section titles in document order.
const (
	TitleSummary      = "Summary"
	TitleDeliverables = "Deliverables Progress"
	TitleChallenges   = "Challenges"
	TitleNextPeriod   = "Next Period Activities"
)

// SectionTitles lists the required sections in the order they must appear.
var SectionTitles = []string{TitleSummary, TitleDeliverables, TitleChallenges, TitleNextPeriod}

// listSections must each carry at least one bullet item.
var listSections = map[string]bool{
	TitleDeliverables: true,
	TitleChallenges:   true,
	TitleNextPeriod:   true,
}

// Section is one top-level heading and the content beneath it.
type Section struct {
	Title  string           `json:"title"`
	Line   int              `json:"line"`
	Blocks []markdown.Block `json:"blocks"`
}

// Items returns every bullet item in the section.
func (s Section) Items() []string {
	var items []string
	for _, block := range s.Blocks {
		if block.Kind == markdown.Bullets {
			items = append(items, block.Items...)
		}
	}
	return items
}

// Empty reports whether the section has no content at all.
func (s Section) Empty() bool {
	return len(s.Blocks) == 0
}

// Document is a parsed status report.
type Document struct {
	Title    string           `json:"title,omitempty"`
	Preamble []markdown.Block `json:"preamble,omitempty"`
	Sections []Section        `json:"sections"`
}

// ParseFile opens and parses the status report at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open status report: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

type rawLine struct {
	number  int
	text    string
	heading markdown.Heading
	isHead  bool
}

// Parse splits a markdown status report into top-level sections.
//
// Sections start at the shallowest heading level found in the file. A lone
// heading at that level which opens the file and is followed by deeper
// headings is the document title, and the next level down forms the sections,
// unless that heading is itself a required section title. Deeper headings
// inside a section are kept as paragraphs.
func Parse(r io.Reader) (*Document, error) {
	var lines []rawLine
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	inFence := false
	for n := 1; scanner.Scan(); n++ {
		text := strings.TrimRight(scanner.Text(), "\r")
		line := rawLine{number: n, text: text}
		if strings.HasPrefix(strings.TrimSpace(text), "```") {
			inFence = !inFence
		} else if !inFence {
			line.heading, line.isHead = markdown.ParseHeading(text)
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read status report: %w", err)
	}

	doc := &Document{}
	sectionLevel, titleIdx := sectionLevel(lines)
	if titleIdx >= 0 {
		doc.Title = lines[titleIdx].heading.Title
	}

	var (
		current *Section
		body    []string
		pre     []string
	)
	flush := func() {
		if current != nil {
			current.Blocks = markdown.ParseBlocks(strings.Join(body, "\n"))
			doc.Sections = append(doc.Sections, *current)
		}
		body = nil
	}
	for idx, line := range lines {
		if idx == titleIdx {
			continue
		}
		if line.isHead && line.heading.Level == sectionLevel {
			flush()
			current = &Section{Title: line.heading.Title, Line: line.number}
			continue
		}
		text := line.text
		if line.isHead {
			text = line.heading.Title
		}
		if current == nil {
			pre = append(pre, text)
			continue
		}
		body = append(body, text)
	}
	flush()
	doc.Preamble = markdown.ParseBlocks(strings.Join(pre, "\n"))
	return doc, nil
}

func sectionLevel(lines []rawLine) (level int, titleIdx int) {
	counts := map[int]int{}
	first, shallowest := -1, 0
	for idx, line := range lines {
		if !line.isHead {
			continue
		}
		if first < 0 {
			first = idx
		}
		counts[line.heading.Level]++
		if shallowest == 0 || line.heading.Level < shallowest {
			shallowest = line.heading.Level
		}
	}
	if shallowest == 0 {
		return 0, -1
	}
	_, isSection := CanonicalTitle(lines[first].heading.Title)
	if counts[shallowest] == 1 && lines[first].heading.Level == shallowest && !isSection {
		next := 0
		for lvl := range counts {
			if lvl > shallowest && (next == 0 || lvl < next) {
				next = lvl
			}
		}
		if next != 0 {
			return next, first
		}
	}
	return shallowest, -1
}

var folder = cases.Fold()

// normalizeTitle folds case and collapses whitespace so titles compare loosely.
func normalizeTitle(title string) string {
	return folder.String(strings.Join(strings.Fields(title), " "))
}

// CanonicalTitle maps a heading onto one of SectionTitles.
func CanonicalTitle(title string) (string, bool) {
	key := normalizeTitle(title)
	for _, canonical := range SectionTitles {
		if normalizeTitle(canonical) == key {
			return canonical, true
		}
	}
	return "", false
}

// Section returns the first section whose heading matches title.
func (d *Document) Section(title string) (Section, bool) {
	key := normalizeTitle(title)
	for _, section := range d.Sections {
		if normalizeTitle(section.Title) == key {
			return section, true
		}
	}
	return Section{}, false
}

// Markdown renders the document with canonical spacing.
func (d *Document) Markdown() string {
	var b strings.Builder
	level := "#"
	if d.Title != "" {
		b.WriteString("# " + d.Title + "\n\n")
		level = "##"
	}
	writeBlocks(&b, d.Preamble)
	for _, section := range d.Sections {
		b.WriteString(level + " " + section.Title + "\n\n")
		writeBlocks(&b, section.Blocks)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeBlocks(b *strings.Builder, blocks []markdown.Block) {
	for _, block := range blocks {
		if block.Kind == markdown.Bullets {
			b.WriteString(markdown.BulletList(block.Items))
		} else {
			b.WriteString(block.Text)
		}
		b.WriteString("\n\n")
	}
}
