// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preserve checks that enhancing a documentation file left the
// original content intact: everything after the enhanced file's frontmatter
// must equal the original file. The default mode tolerates whitespace-only
// drift (trailing spaces, CRLF endings, trailing newlines) as a warning;
// strict mode accepts nothing but byte equality.
package preserve

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// ErrNoFrontmatter reports an enhanced file that does not carry the expected
// frontmatter envelope.
var ErrNoFrontmatter = errors.New("no frontmatter envelope")

// State is the outcome of a preservation check. Values double as process
// exit codes.
type State int

const (
	// Match means the content is identical.
	Match State = 0

	// WhitespaceOnly means the content differs only in whitespace. The
	// check passed with a warning.
	WhitespaceOnly State = 1

	// Mismatch means content was lost or altered.
	Mismatch State = 2
)

func (s State) String() string {
	switch s {
	case Match:
		return "match"
	case WhitespaceOnly:
		return "whitespace-only"
	case Mismatch:
		return "mismatch"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Result holds the outcome of one preservation check.
type Result struct {
	// State classifies the comparison.
	State State

	// Diff is a unified diff from original to enhanced content, set only on
	// mismatch.
	Diff string
}

// Code returns the process exit code for the result.
func (r *Result) Code() int { return int(r.State) }

// CompareFiles reads both files and compares the enhanced file's content
// section against the original. Unreadable files and a missing frontmatter
// envelope are errors; content differences are reported in the Result.
func CompareFiles(originalPath, enhancedPath string, strict bool) (*Result, error) {
	original, err := os.ReadFile(originalPath)
	if err != nil {
		return nil, fmt.Errorf("reading original %s: %w", originalPath, err)
	}
	enhanced, err := os.ReadFile(enhancedPath)
	if err != nil {
		return nil, fmt.Errorf("reading enhanced %s: %w", enhancedPath, err)
	}

	body, err := ContentAfterFrontmatter(string(enhanced))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", enhancedPath, err)
	}

	return Compare(string(original), body, originalPath, enhancedPath, strict), nil
}

// Compare classifies the difference between the original content and the
// enhanced file's content section.
func Compare(original, body, fromLabel, toLabel string, strict bool) *Result {
	if original == body {
		return &Result{State: Match}
	}
	if !strict && normalize(original) == normalize(body) {
		return &Result{State: WhitespaceOnly}
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(body),
		FromFile: fromLabel,
		ToFile:   toLabel,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		text = fmt.Sprintf("(diff unavailable: %v)", err)
	}
	return &Result{State: Mismatch, Diff: text}
}

// ContentAfterFrontmatter returns everything after the closing frontmatter
// delimiter. The file must open with a "---" line and contain a second one;
// a single blank separator line after the closing delimiter belongs to the
// envelope, not the content, and is dropped.
func ContentAfterFrontmatter(enhanced string) (string, error) {
	lines := strings.SplitAfter(enhanced, "\n")
	if len(lines) == 0 || !isDelimiter(lines[0]) {
		return "", ErrNoFrontmatter
	}
	for i := 1; i < len(lines); i++ {
		if !isDelimiter(lines[i]) {
			continue
		}
		body := strings.Join(lines[i+1:], "")
		body = strings.TrimPrefix(body, "\n")
		return body, nil
	}
	return "", ErrNoFrontmatter
}

// isDelimiter matches a frontmatter delimiter line: three hyphens alone,
// allowing trailing whitespace.
func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t\r\n") == "---"
}

// normalize flattens whitespace-only differences: line endings become LF,
// trailing blanks are stripped per line, and trailing newlines are dropped.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
