// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// LibraryEntity collects the metadata extracted from one library's
// documentation file: the observations and relations for a single
// documented entity (a class, module, or concept within the library).
type LibraryEntity struct {
	// ID is a kebab-case slug for the documented entity, unique within the
	// entities array (e.g. "message-queue-client").
	ID string `json:"id" yaml:"id"`

	// Library names the library the documentation belongs to (e.g. "pika").
	Library string `json:"library" yaml:"library"`

	// Name is the entity's display name; defaults to the document title.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// SourceFile is the markdown file the metadata was extracted from,
	// relative to the workspace root.
	SourceFile string `json:"source_file,omitempty" yaml:"source_file,omitempty"`

	// Observations are findings extracted from the documentation text.
	Observations []Observation `json:"observations" yaml:"observations"`

	// Relations are references extracted from the documentation's links
	// and inline mentions.
	Relations []Relation `json:"relations" yaml:"relations"`
}

// LibDocsDocument is a per-library metadata file (lib-docs-<name>.json)
// accumulating extracted entities across that library's documentation.
type LibDocsDocument struct {
	Metadata Metadata        `json:"metadata" yaml:"metadata"`
	Entities []LibraryEntity `json:"entities" yaml:"entities"`
}
