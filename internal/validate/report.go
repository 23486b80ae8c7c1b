// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate checks pipeline documents against the schema: required
// fields, identifier rules, closed vocabularies, referential integrity, and
// the stage timestamp chain. Validators never stop at the first problem;
// they collect everything wrong with a document into a Report and leave the
// document untouched on disk.
package validate

import (
	"fmt"
	"io"
)

// DiagSeverity grades one diagnostic.
type DiagSeverity string

const (
	// DiagError marks a blocking schema violation.
	DiagError DiagSeverity = "error"

	// DiagWarning marks a non-blocking finding.
	DiagWarning DiagSeverity = "warning"
)

// Diagnostic is one finding against a document.
type Diagnostic struct {
	// Severity grades the finding.
	Severity DiagSeverity

	// Path locates the finding within the document
	// (e.g. "systems[1].relations[0].type").
	Path string

	// Message explains the finding.
	Message string
}

// Report collects the findings for one validation run.
type Report struct {
	// Source names what was validated, for the report header.
	Source string

	// Diagnostics holds every finding in document order.
	Diagnostics []Diagnostic
}

// NewReport starts an empty report for the named source.
func NewReport(source string) *Report {
	return &Report{Source: source}
}

// Errorf records a blocking finding at path.
func (r *Report) Errorf(path, format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Severity: DiagError,
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Warnf records a non-blocking finding at path.
func (r *Report) Warnf(path, format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Severity: DiagWarning,
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Merge appends another report's diagnostics, prefixing their paths with
// that report's source so multi-document runs stay readable.
func (r *Report) Merge(other *Report) {
	for _, d := range other.Diagnostics {
		path := d.Path
		if other.Source != "" {
			if path == "" {
				path = other.Source
			} else {
				path = other.Source + ": " + path
			}
		}
		r.Diagnostics = append(r.Diagnostics, Diagnostic{Severity: d.Severity, Path: path, Message: d.Message})
	}
}

// Errors counts blocking findings.
func (r *Report) Errors() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == DiagError {
			n++
		}
	}
	return n
}

// Warnings counts non-blocking findings.
func (r *Report) Warnings() int {
	return len(r.Diagnostics) - r.Errors()
}

// HasErrors reports whether any finding blocks.
func (r *Report) HasErrors() bool { return r.Errors() > 0 }

// Code maps the report to the process exit code: 0 clean, 1 warnings only,
// 2 any error.
func (r *Report) Code() int {
	switch {
	case r.Errors() > 0:
		return 2
	case r.Warnings() > 0:
		return 1
	default:
		return 0
	}
}

// Print writes the human-readable report: one header line, then one line
// per diagnostic in document order.
func (r *Report) Print(w io.Writer) {
	errs, warns := r.Errors(), r.Warnings()
	switch {
	case errs == 0 && warns == 0:
		fmt.Fprintf(w, "%s: ok\n", r.Source)
	default:
		fmt.Fprintf(w, "%s: %s, %s\n", r.Source, plural(errs, "error"), plural(warns, "warning"))
	}
	for _, d := range r.Diagnostics {
		if d.Path == "" {
			fmt.Fprintf(w, "  %-7s %s\n", d.Severity, d.Message)
			continue
		}
		fmt.Fprintf(w, "  %-7s %s: %s\n", d.Severity, d.Path, d.Message)
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
