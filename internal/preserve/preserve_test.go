// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preserve

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/archdoc/internal/libdocs"
)

const originalDoc = `# Channels

A channel multiplexes one connection.

- Open lazily
- Close deliberately
`

func TestContentAfterFrontmatter(t *testing.T) {
	tests := []struct {
		name     string
		enhanced string
		want     string
		wantErr  bool
	}{
		{
			name:     "standard envelope",
			enhanced: "---\nlibrary: pika\n---\n\n# Channels\nbody\n",
			want:     "# Channels\nbody\n",
		},
		{
			name:     "no separator blank line",
			enhanced: "---\nlibrary: pika\n---\n# Channels\n",
			want:     "# Channels\n",
		},
		{
			name:     "two blank lines keeps one",
			enhanced: "---\na: b\n---\n\n\n# T\n",
			want:     "\n# T\n",
		},
		{
			name:     "empty content",
			enhanced: "---\na: b\n---",
			want:     "",
		},
		{
			name:     "original frontmatter stays in content",
			enhanced: "---\na: b\n---\n\n---\ntheir: frontmatter\n---\nbody\n",
			want:     "---\ntheir: frontmatter\n---\nbody\n",
		},
		{
			name:     "delimiter with trailing spaces",
			enhanced: "---  \na: b\n---\t\nbody\n",
			want:     "body\n",
		},
		{
			name:     "missing opening delimiter",
			enhanced: "# Channels\nbody\n",
			wantErr:  true,
		},
		{
			name:     "missing closing delimiter",
			enhanced: "---\na: b\nbody\n",
			wantErr:  true,
		},
		{
			name:     "empty file",
			enhanced: "",
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ContentAfterFrontmatter(tt.enhanced)
			if tt.wantErr {
				if !errors.Is(err, ErrNoFrontmatter) {
					t.Fatalf("error = %v, want ErrNoFrontmatter", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("content = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		original string
		body     string
		strict   bool
		want     State
	}{
		{"identical", originalDoc, originalDoc, false, Match},
		{"identical strict", originalDoc, originalDoc, true, Match},
		{"trailing spaces", "a\nb\n", "a  \nb\n", false, WhitespaceOnly},
		{"trailing spaces strict", "a\nb\n", "a  \nb\n", true, Mismatch},
		{"crlf endings", "a\nb\n", "a\r\nb\r\n", false, WhitespaceOnly},
		{"extra trailing newlines", "a\nb\n", "a\nb\n\n\n", false, WhitespaceOnly},
		{"missing line", "a\nb\nc\n", "a\nc\n", false, Mismatch},
		{"reworded line", "the original text\n", "the edited text\n", false, Mismatch},
		{"interior blank line added", "a\nb\n", "a\n\nb\n", false, Mismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Compare(tt.original, tt.body, "original.md", "enhanced.md", tt.strict)
			if res.State != tt.want {
				t.Fatalf("state = %v, want %v", res.State, tt.want)
			}
			if res.Code() != int(tt.want) {
				t.Errorf("code = %d, want %d", res.Code(), int(tt.want))
			}
			if tt.want == Mismatch {
				if res.Diff == "" {
					t.Fatal("mismatch result carries no diff")
				}
				if !strings.Contains(res.Diff, "original.md") || !strings.Contains(res.Diff, "enhanced.md") {
					t.Errorf("diff missing file labels:\n%s", res.Diff)
				}
			} else if res.Diff != "" {
				t.Errorf("non-mismatch result carries a diff:\n%s", res.Diff)
			}
		})
	}
}

func TestCompareDiffContent(t *testing.T) {
	res := Compare("keep\nlost line\nkeep2\n", "keep\nkeep2\n", "a.md", "b.md", false)
	if res.State != Mismatch {
		t.Fatalf("state = %v, want Mismatch", res.State)
	}
	if !strings.Contains(res.Diff, "-lost line") {
		t.Errorf("diff does not show the lost line:\n%s", res.Diff)
	}
}

func TestCompareFiles(t *testing.T) {
	dir := t.TempDir()
	origPath := filepath.Join(dir, "channels.md")
	if err := os.WriteFile(origPath, []byte(originalDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("preserved", func(t *testing.T) {
		enhPath := filepath.Join(dir, "channels-enhanced.md")
		enhanced := "---\nlibrary: pika\n---\n\n" + originalDoc
		if err := os.WriteFile(enhPath, []byte(enhanced), 0o644); err != nil {
			t.Fatal(err)
		}
		res, err := CompareFiles(origPath, enhPath, true)
		if err != nil {
			t.Fatalf("CompareFiles: %v", err)
		}
		if res.State != Match {
			t.Errorf("state = %v, want Match (diff: %s)", res.State, res.Diff)
		}
	})

	t.Run("no frontmatter", func(t *testing.T) {
		enhPath := filepath.Join(dir, "bare.md")
		if err := os.WriteFile(enhPath, []byte(originalDoc), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := CompareFiles(origPath, enhPath, false)
		if !errors.Is(err, ErrNoFrontmatter) {
			t.Errorf("error = %v, want ErrNoFrontmatter", err)
		}
	})

	t.Run("missing original", func(t *testing.T) {
		_, err := CompareFiles(filepath.Join(dir, "absent.md"), origPath, false)
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})
}

// Enhancing a file and validating the result against the source must pass
// exactly, even in strict mode.
func TestEnhanceThenCompareRoundTrip(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "channels.md")
	outPath := filepath.Join(dir, "channels-enhanced.md")
	if err := os.WriteFile(srcPath, []byte(originalDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if _, err := libdocs.EnhanceFile(srcPath, "pika", "channels", outPath, &buf); err != nil {
		t.Fatalf("EnhanceFile: %v", err)
	}

	for _, strict := range []bool{false, true} {
		res, err := CompareFiles(srcPath, outPath, strict)
		if err != nil {
			t.Fatalf("CompareFiles(strict=%v): %v", strict, err)
		}
		if res.State != Match {
			t.Errorf("strict=%v state = %v, want Match (diff: %s)", strict, res.State, res.Diff)
		}
	}
}
