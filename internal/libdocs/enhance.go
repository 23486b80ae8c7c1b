// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package libdocs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/archdoc/internal/markdown"
	"github.com/pdiddy/archdoc/internal/model"
	"github.com/pdiddy/archdoc/internal/schema"
	"github.com/pdiddy/archdoc/pkg/types"
)

// generatorName is recorded in envelopes and frontmatter this tool writes.
const generatorName = "archdoc"

// nowFunc supplies timestamps for generated metadata. Tests override it to
// pin output.
var nowFunc = time.Now

// Frontmatter is the YAML block an enhanced file carries above the original
// content.
type Frontmatter struct {
	// Library names the documented library.
	Library string `yaml:"library"`

	// Entity is the documented entity's id.
	Entity string `yaml:"entity"`

	// Name is the entity's display name.
	Name string `yaml:"name,omitempty"`

	// SourceFile is the original documentation file.
	SourceFile string `yaml:"source_file,omitempty"`

	// Metadata summarizes the extraction that produced this file.
	Metadata FrontmatterMeta `yaml:"metadata"`
}

// FrontmatterMeta is the generated metadata section of a frontmatter block.
type FrontmatterMeta struct {
	SchemaVersion string `yaml:"schema_version"`
	GeneratedAt   string `yaml:"generated_at"`
	Generator     string `yaml:"generator"`
	Observations  int    `yaml:"observations"`
	Relations     int    `yaml:"relations"`
}

// Enhance wraps the original content in a frontmatter envelope built from
// the extracted entity. Everything after the closing delimiter and its
// separator blank line is the original content, byte for byte, so a
// preservation check against the source passes exactly.
func Enhance(original string, entity *types.LibraryEntity) (string, error) {
	fm := Frontmatter{
		Library:    entity.Library,
		Entity:     entity.ID,
		Name:       entity.Name,
		SourceFile: entity.SourceFile,
		Metadata: FrontmatterMeta{
			SchemaVersion: schema.Version,
			GeneratedAt:   nowFunc().UTC().Format(time.RFC3339),
			Generator:     generatorName,
			Observations:  len(entity.Observations),
			Relations:     len(entity.Relations),
		},
	}

	data, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}

	return "---\n" + string(data) + "---\n\n" + original, nil
}

// EnhanceFile parses srcPath, extracts metadata for the given library and
// entity, and writes the enhanced copy to outPath. It returns the extracted
// entity so callers can fold it into a lib-docs document.
func EnhanceFile(srcPath, library, entityID, outPath string, w io.Writer) (*types.LibraryEntity, error) {
	st, err := markdown.ParseFile(srcPath)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, fmt.Errorf("reading markdown %s: %w", srcPath, err)
	}

	entity, err := Extract(st, library, entityID, srcPath)
	if err != nil {
		return nil, err
	}

	enhanced, err := Enhance(string(content), entity)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(outPath, []byte(enhanced), 0o644); err != nil {
		return nil, fmt.Errorf("writing enhanced file %s: %w", outPath, err)
	}

	fmt.Fprintf(w, "enhanced %s -> %s (%d observations, %d relations)\n",
		srcPath, outPath, len(entity.Observations), len(entity.Relations))
	return entity, nil
}

// NewDocument builds a lib-docs document envelope around the given entities.
func NewDocument(entities []types.LibraryEntity) *types.LibDocsDocument {
	return &types.LibDocsDocument{
		Metadata: types.Metadata{
			SchemaVersion: schema.Version,
			Timestamp:     nowFunc().UTC().Format(time.RFC3339),
			Generator:     generatorName,
		},
		Entities: entities,
	}
}

// UpsertEntity replaces the entity with a matching id, or appends when none
// matches, and refreshes the document timestamp.
func UpsertEntity(doc *types.LibDocsDocument, entity types.LibraryEntity) {
	doc.Metadata.Timestamp = nowFunc().UTC().Format(time.RFC3339)
	if doc.Metadata.SchemaVersion == "" {
		doc.Metadata.SchemaVersion = schema.Version
	}
	for i, e := range doc.Entities {
		if e.ID == entity.ID {
			doc.Entities[i] = entity
			return
		}
	}
	doc.Entities = append(doc.Entities, entity)
}

// LoadOrCreateDocument reads an existing lib-docs file, or starts an empty
// document when the file does not exist yet.
func LoadOrCreateDocument(path string) (*types.LibDocsDocument, error) {
	doc, err := model.ReadLibDocs(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewDocument(nil), nil
		}
		return nil, err
	}
	return doc, nil
}

// WriteDocument marshals a lib-docs document to path as indented JSON.
func WriteDocument(path string, doc *types.LibDocsDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling lib-docs document: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
