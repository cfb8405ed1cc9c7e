// Package markdown turns model answers written in a small Markdown dialect into
// display blocks. Supported: # / ## / ### headings, **bold** spans, "* " and "- "
// lists, "N. " lists and plain paragraphs. Everything else is literal text.
package markdown

import (
	"regexp"
	"strings"
)

type BlockKind string

const (
	KindHeading       BlockKind = "heading"
	KindUnorderedList BlockKind = "unordered_list"
	KindOrderedList   BlockKind = "ordered_list"
	KindParagraph     BlockKind = "paragraph"
)

type RunKind string

const (
	RunPlain RunKind = "plain"
	RunBold  RunKind = "bold"
)

// Run is a span of inline text.
type Run struct {
	Kind RunKind `json:"kind"`
	Text string  `json:"text"`
}

// Block is one rendered unit. Level is set for headings, Items for lists and
// Inline for headings and paragraphs. Emphasized marks a paragraph that is a
// single bold span, shown as a stand-out title.
type Block struct {
	Kind       BlockKind `json:"kind"`
	Level      int       `json:"level,omitempty"`
	Inline     []Run     `json:"inline,omitempty"`
	Items      [][]Run   `json:"items,omitempty"`
	Emphasized bool      `json:"emphasized,omitempty"`
}

var (
	blockSeparator = regexp.MustCompile(`\n\s*\n`)
	orderedItem    = regexp.MustCompile(`^\d+\.\s`)
	boldSpan       = regexp.MustCompile(`\*\*.*?\*\*`)
)

var headingPrefixes = []struct {
	prefix string
	level  int
}{
	{"# ", 1},
	{"## ", 2},
	{"### ", 3},
}

// Render splits text into blocks separated by blank lines and classifies each one.
// It is pure: the same input always yields the same blocks.
func Render(text string) []Block {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var blocks []Block
	for _, raw := range blockSeparator.Split(text, -1) {
		block := strings.TrimSpace(raw)
		if block == "" {
			continue
		}
		blocks = append(blocks, classify(block))
	}
	return blocks
}

func classify(block string) Block {
	for _, h := range headingPrefixes {
		if strings.HasPrefix(block, h.prefix) {
			return Block{Kind: KindHeading, Level: h.level, Inline: Inline(block[len(h.prefix):])}
		}
	}

	lines := strings.Split(block, "\n")
	if allLines(lines, isUnorderedItem) {
		items := make([][]Run, len(lines))
		for i, line := range lines {
			items[i] = Inline(strings.TrimSpace(line)[2:])
		}
		return Block{Kind: KindUnorderedList, Items: items}
	}
	if allLines(lines, orderedItem.MatchString) {
		items := make([][]Run, len(lines))
		for i, line := range lines {
			items[i] = Inline(orderedItem.ReplaceAllString(strings.TrimSpace(line), ""))
		}
		return Block{Kind: KindOrderedList, Items: items}
	}

	return Block{Kind: KindParagraph, Inline: Inline(block), Emphasized: isStandaloneBold(block)}
}

func isUnorderedItem(line string) bool {
	return strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "- ")
}

func allLines(lines []string, match func(string) bool) bool {
	for _, line := range lines {
		if !match(strings.TrimSpace(line)) {
			return false
		}
	}
	return true
}

// isStandaloneBold reports whether the block is exactly one **...** span.
func isStandaloneBold(block string) bool {
	if len(block) < 4 || !strings.HasPrefix(block, "**") || !strings.HasSuffix(block, "**") {
		return false
	}
	return !strings.Contains(block[2:len(block)-2], "**")
}

// Inline splits text on non-nested **bold** spans. Empty runs are dropped.
func Inline(text string) []Run {
	var runs []Run
	appendRun := func(kind RunKind, s string) {
		if s != "" {
			runs = append(runs, Run{Kind: kind, Text: s})
		}
	}

	last := 0
	for _, loc := range boldSpan.FindAllStringIndex(text, -1) {
		appendRun(RunPlain, text[last:loc[0]])
		appendRun(RunBold, text[loc[0]+2:loc[1]-2])
		last = loc[1]
	}
	appendRun(RunPlain, text[last:])
	return runs
}

// PlainText flattens runs back into text without markup.
func PlainText(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}
