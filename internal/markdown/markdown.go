// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown parses documentation files into their structural
// elements: headings, fenced code blocks, links, inline code spans, list
// items, blockquotes, and plain paragraph lines. It is a single-pass line
// scanner, not a full CommonMark implementation; it recognizes exactly the
// constructs the extraction and enhancement stages consume.
package markdown

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrEncoding reports that a file's content is not valid UTF-8. The parser
// refuses such files entirely rather than guessing a legacy encoding.
var ErrEncoding = errors.New("content is not valid UTF-8")

// Heading is one ATX heading (# through ######).
type Heading struct {
	// Level is the heading depth, 1 through 6.
	Level int `json:"level" yaml:"level"`

	// Text is the heading text with the marker and surrounding space removed.
	Text string `json:"text" yaml:"text"`

	// Line is the 1-based line number of the heading.
	Line int `json:"line" yaml:"line"`
}

// CodeBlock is one fenced code block.
type CodeBlock struct {
	// Language is the info string's first word, empty when the fence is bare.
	Language string `json:"language,omitempty" yaml:"language,omitempty"`

	// Content is the block body between the fences, without the fences.
	Content string `json:"content" yaml:"content"`

	// Line is the 1-based line number of the opening fence.
	Line int `json:"line" yaml:"line"`
}

// Link is one inline link.
type Link struct {
	// Text is the bracketed link text.
	Text string `json:"text" yaml:"text"`

	// URL is the parenthesized link target.
	URL string `json:"url" yaml:"url"`

	// Line is the 1-based line number the link appears on.
	Line int `json:"line" yaml:"line"`
}

// CodeSpan is one inline code span (single backticks).
type CodeSpan struct {
	// Text is the span content without the backticks.
	Text string `json:"text" yaml:"text"`

	// Line is the 1-based line number the span appears on.
	Line int `json:"line" yaml:"line"`
}

// ListItem is one list item line.
type ListItem struct {
	// Text is the item text with the marker removed.
	Text string `json:"text" yaml:"text"`

	// Ordered reports whether the item used a numbered marker.
	Ordered bool `json:"ordered" yaml:"ordered"`

	// Line is the 1-based line number of the item.
	Line int `json:"line" yaml:"line"`
}

// Blockquote is one blockquote line.
type Blockquote struct {
	// Text is the quoted text with the marker removed.
	Text string `json:"text" yaml:"text"`

	// Line is the 1-based line number of the quote.
	Line int `json:"line" yaml:"line"`
}

// Paragraph is one plain prose line: non-blank, outside fences, and not one
// of the marked constructs. The extractor scans these for sentence patterns.
type Paragraph struct {
	// Text is the line content, trimmed.
	Text string `json:"text" yaml:"text"`

	// Line is the 1-based line number.
	Line int `json:"line" yaml:"line"`
}

// Structure holds every element found in one file, each collection in
// source order.
type Structure struct {
	Headings    []Heading    `json:"headings" yaml:"headings"`
	CodeBlocks  []CodeBlock  `json:"code_blocks" yaml:"code_blocks"`
	Links       []Link       `json:"links" yaml:"links"`
	CodeSpans   []CodeSpan   `json:"code_spans" yaml:"code_spans"`
	ListItems   []ListItem   `json:"list_items" yaml:"list_items"`
	Blockquotes []Blockquote `json:"blockquotes" yaml:"blockquotes"`
	Paragraphs  []Paragraph  `json:"paragraphs" yaml:"paragraphs"`
}

var (
	orderedItemPattern = regexp.MustCompile(`^\d+[.)]\s+`)
	linkPattern        = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]+)(?:\s+"[^"]*")?\)`)
	codeSpanPattern    = regexp.MustCompile("`([^`\n]+)`")
)

// ParseFile reads and parses one markdown file. A missing file surfaces the
// underlying os.ErrNotExist; content that is not valid UTF-8 surfaces
// ErrEncoding. Parsing itself cannot fail: any readable UTF-8 file yields a
// structure, possibly with every collection empty.
func ParseFile(path string) (*Structure, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading markdown %s: %w", path, err)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("parsing %s: %w", path, ErrEncoding)
	}
	return Parse(string(content)), nil
}

// Parse scans content line by line and collects structural elements.
// Lines inside fenced code blocks are excluded from heading, list,
// blockquote, link, and code-span matching. A fence left open at the end
// of input closes there.
func Parse(content string) *Structure {
	st := &Structure{}
	lines := strings.Split(content, "\n")

	inFence := false
	var fenceMarker string
	var block CodeBlock
	var blockLines []string

	for i, line := range lines {
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)

		if inFence {
			if isFence(trimmed, fenceMarker) {
				block.Content = strings.Join(blockLines, "\n")
				st.CodeBlocks = append(st.CodeBlocks, block)
				inFence = false
				blockLines = nil
				continue
			}
			blockLines = append(blockLines, line)
			continue
		}

		if marker, lang, ok := openFence(trimmed); ok {
			inFence = true
			fenceMarker = marker
			block = CodeBlock{Language: lang, Line: lineNo}
			continue
		}

		if level, text, ok := parseHeading(trimmed); ok {
			st.Headings = append(st.Headings, Heading{Level: level, Text: text, Line: lineNo})
		} else if text, ordered, ok := parseListItem(trimmed); ok {
			st.ListItems = append(st.ListItems, ListItem{Text: text, Ordered: ordered, Line: lineNo})
		} else if text, ok := parseBlockquote(trimmed); ok {
			st.Blockquotes = append(st.Blockquotes, Blockquote{Text: text, Line: lineNo})
		} else if trimmed != "" {
			st.Paragraphs = append(st.Paragraphs, Paragraph{Text: trimmed, Line: lineNo})
		}

		st.Links = append(st.Links, findLinks(line, lineNo)...)
		st.CodeSpans = append(st.CodeSpans, findCodeSpans(line, lineNo)...)
	}

	if inFence {
		block.Content = strings.Join(blockLines, "\n")
		st.CodeBlocks = append(st.CodeBlocks, block)
	}

	return st
}

// openFence reports whether a line opens a fenced code block and returns the
// fence marker and the info string's first word.
func openFence(trimmed string) (marker, lang string, ok bool) {
	for _, m := range []string{"```", "~~~"} {
		if !strings.HasPrefix(trimmed, m) {
			continue
		}
		info := strings.TrimLeft(trimmed, string(m[0]))
		if fields := strings.Fields(info); len(fields) > 0 {
			lang = fields[0]
		}
		return m, lang, true
	}
	return "", "", false
}

// isFence reports whether a line closes a block opened with marker.
func isFence(trimmed, marker string) bool {
	if !strings.HasPrefix(trimmed, marker) {
		return false
	}
	return strings.TrimRight(trimmed, string(marker[0])) == ""
}

// parseHeading matches ATX headings: one to six # characters, a space, text.
func parseHeading(trimmed string) (level int, text string, ok bool) {
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}
	rest := trimmed[level:]
	if rest == "" {
		return level, "", true
	}
	if rest[0] != ' ' && rest[0] != '\t' {
		return 0, "", false
	}
	return level, strings.TrimSpace(rest), true
}

// parseListItem matches unordered (-, *, +) and ordered (1. / 1)) items.
func parseListItem(trimmed string) (text string, ordered, ok bool) {
	for _, m := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(trimmed, m) {
			return strings.TrimSpace(trimmed[len(m):]), false, true
		}
	}
	if loc := orderedItemPattern.FindStringIndex(trimmed); loc != nil {
		return strings.TrimSpace(trimmed[loc[1]:]), true, true
	}
	return "", false, false
}

// parseBlockquote matches lines starting with >.
func parseBlockquote(trimmed string) (text string, ok bool) {
	if trimmed == ">" {
		return "", true
	}
	if strings.HasPrefix(trimmed, "> ") {
		return strings.TrimSpace(trimmed[2:]), true
	}
	return "", false
}

// findLinks collects inline links on one line, skipping image embeds.
func findLinks(line string, lineNo int) []Link {
	var links []Link
	for _, m := range linkPattern.FindAllStringSubmatchIndex(line, -1) {
		if m[0] > 0 && line[m[0]-1] == '!' {
			continue
		}
		links = append(links, Link{
			Text: line[m[2]:m[3]],
			URL:  line[m[4]:m[5]],
			Line: lineNo,
		})
	}
	return links
}

// findCodeSpans collects single-backtick spans on one line.
func findCodeSpans(line string, lineNo int) []CodeSpan {
	var spans []CodeSpan
	for _, m := range codeSpanPattern.FindAllStringSubmatch(line, -1) {
		spans = append(spans, CodeSpan{Text: m[1], Line: lineNo})
	}
	return spans
}
