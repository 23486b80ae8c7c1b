// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ParentRef links a document to the pipeline stage it was derived from.
// The child document's timestamp must be strictly later than Timestamp.
type ParentRef struct {
	// File is the path of the parent document, relative to the model directory
	// (e.g. "c1-systems.json").
	File string `json:"file" yaml:"file"`

	// Timestamp is the parent document's metadata.timestamp at derivation time,
	// in RFC3339 form.
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

// Metadata is the envelope carried by every pipeline document.
type Metadata struct {
	// SchemaVersion declares which schema release the document was written
	// against (e.g. "1.0.0"). Documents without it still validate, with a warning.
	SchemaVersion string `json:"schema_version,omitempty" yaml:"schema_version,omitempty"`

	// Timestamp records when the document was generated, in RFC3339 form.
	Timestamp string `json:"timestamp" yaml:"timestamp"`

	// Generator names the tool or agent that wrote the document.
	Generator string `json:"generator,omitempty" yaml:"generator,omitempty"`

	// Parent references the upstream document this one was derived from.
	// Absent on init documents, which start the chain.
	Parent *ParentRef `json:"parent,omitempty" yaml:"parent,omitempty"`
}

// Repository describes one analyzed code repository in an init document.
type Repository struct {
	// ID is a kebab-case slug, unique within the repositories array.
	ID string `json:"id" yaml:"id"`

	// Name is the human-readable repository name.
	Name string `json:"name" yaml:"name"`

	// Path is the repository location on disk, relative to the workspace root.
	Path string `json:"path" yaml:"path"`

	// Description summarizes what the repository contains.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// PrimaryLanguage is the dominant implementation language (e.g. "go").
	PrimaryLanguage string `json:"primary_language,omitempty" yaml:"primary_language,omitempty"`

	// Technologies lists frameworks and platforms observed in the repository.
	Technologies []string `json:"technologies,omitempty" yaml:"technologies,omitempty"`
}

// InitDocument is the pipeline's starting inventory (init.json): the
// repositories under analysis, before any architecture modeling.
type InitDocument struct {
	Metadata     Metadata     `json:"metadata" yaml:"metadata"`
	Repositories []Repository `json:"repositories" yaml:"repositories"`
}

// SystemsDocument is the context-level model (c1-systems.json): the software
// systems, the people and external systems they interact with.
type SystemsDocument struct {
	Metadata Metadata `json:"metadata" yaml:"metadata"`
	Systems  []System `json:"systems" yaml:"systems"`
}

// ContainersDocument is the container-level model (c2-containers.json):
// deployable units within the systems of the parent document.
type ContainersDocument struct {
	Metadata   Metadata    `json:"metadata" yaml:"metadata"`
	Containers []Container `json:"containers" yaml:"containers"`
}

// ComponentsDocument is the component-level model (c3-components.json):
// major structural parts within the containers of the parent document.
type ComponentsDocument struct {
	Metadata   Metadata    `json:"metadata" yaml:"metadata"`
	Components []Component `json:"components" yaml:"components"`
}
