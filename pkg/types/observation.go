// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Severity grades how much an observation should influence downstream work.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// EvidenceType identifies what kind of source location an Evidence points at.
type EvidenceType string

const (
	EvidenceFile      EvidenceType = "file"
	EvidenceDirectory EvidenceType = "directory"
	EvidenceURL       EvidenceType = "url"
)

// Evidence is a typed pointer to the source location that supports an
// observation. File and directory evidence carry Path; url evidence carries URL.
type Evidence struct {
	// Type identifies the pointer kind: file, directory, or url.
	Type EvidenceType `json:"type" yaml:"type"`

	// Path locates file or directory evidence, relative to the repository root.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// URL locates url evidence; must be an absolute http(s) URL.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// StartLine is the first line of a file span, 1-based. Zero means unset.
	StartLine int `json:"start_line,omitempty" yaml:"start_line,omitempty"`

	// EndLine is the last line of a file span, inclusive. Zero means unset.
	EndLine int `json:"end_line,omitempty" yaml:"end_line,omitempty"`
}

// Observation is a single recorded finding about an entity: a fact, risk, or
// recommendation. Category values are level-specific and drawn from the
// schema package's category sets.
type Observation struct {
	// ID is a kebab-case slug, unique within the entity's observations array.
	ID string `json:"id" yaml:"id"`

	// Category classifies the finding (e.g. "technology", "best_practice").
	Category string `json:"category" yaml:"category"`

	// Severity grades the finding: info, warning, or critical.
	Severity Severity `json:"severity" yaml:"severity"`

	// Title is a one-line summary of the finding.
	Title string `json:"title" yaml:"title"`

	// Description explains the finding in full sentences.
	Description string `json:"description" yaml:"description"`

	// Evidence lists source locations supporting the finding.
	Evidence []Evidence `json:"evidence,omitempty" yaml:"evidence,omitempty"`

	// Tags are lowercase, hyphenated topic labels.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}
