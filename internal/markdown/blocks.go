package markdown

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// BlockKind distinguishes paragraphs from bullet lists.
type BlockKind int

const (
	Paragraph BlockKind = iota
	Bullets
)

func (k BlockKind) String() string {
	if k == Bullets {
		return "bullets"
	}
	return "paragraph"
}

// Block is one blank-line separated unit of content.
type Block struct {
	Kind  BlockKind `json:"kind"`
	Text  string    `json:"text,omitempty"`
	Items []string  `json:"items,omitempty"`
}

// Heading is an ATX heading line such as "## Challenges".
type Heading struct {
	Level int
	Title string
}

// ParseHeading reports whether line is an ATX heading and returns it.
func ParseHeading(line string) (Heading, bool) {
	trimmed := strings.TrimSpace(line)
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return Heading{}, false
	}
	rest := trimmed[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return Heading{}, false
	}
	title := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(rest), "#"))
	return Heading{Level: level, Title: title}, true
}

func bulletText(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		return strings.TrimSpace(trimmed[2:]), true
	}
	return "", false
}

// ParseBlocks splits text into paragraphs and bullet lists. Lines inside a
// list that carry no marker continue the previous item. A paragraph that is
// directly followed by list lines without a blank line is split in two.
func ParseBlocks(text string) []Block {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var blocks []Block
	for _, chunk := range strings.Split(text, "\n\n") {
		blocks = append(blocks, parseChunk(chunk)...)
	}
	return blocks
}

func parseChunk(chunk string) []Block {
	var (
		blocks []Block
		para   []string
		items  []string
	)
	flushPara := func() {
		if len(para) > 0 {
			blocks = append(blocks, Block{Kind: Paragraph, Text: strings.Join(para, " ")})
			para = nil
		}
	}
	flushItems := func() {
		if len(items) > 0 {
			blocks = append(blocks, Block{Kind: Bullets, Items: items})
			items = nil
		}
	}
	for _, line := range strings.Split(chunk, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if item, ok := bulletText(trimmed); ok {
			flushPara()
			if item != "" {
				items = append(items, item)
			}
			continue
		}
		if len(items) > 0 {
			items[len(items)-1] = items[len(items)-1] + " " + trimmed
			continue
		}
		para = append(para, trimmed)
	}
	flushPara()
	flushItems()
	return blocks
}

// BulletList renders items as a markdown list.
func BulletList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}

// ReadOptional returns the trimmed content of path. ok is false when the file
// does not exist or holds only whitespace.
func ReadOptional(path string) (content string, ok bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", path, err)
	}
	content = strings.TrimSpace(string(data))
	return content, content != "", nil
}
