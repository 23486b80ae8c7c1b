// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/archdoc/pkg/types"
)

func validLibDocsDoc() *types.LibDocsDocument {
	return &types.LibDocsDocument{
		Metadata: types.Metadata{
			SchemaVersion: "1.0.0",
			Timestamp:     "2026-03-05T09:00:00Z",
			Generator:     "archdoc-test",
		},
		Entities: []types.LibraryEntity{
			{
				ID:      "pika-connection",
				Library: "pika",
				Name:    "Connection Handling",
				Observations: []types.Observation{
					{
						ID:          "obs-12ab34cd",
						Category:    "best_practice",
						Severity:    types.SeverityInfo,
						Title:       "Reuse connections",
						Description: "Open one connection per process and share channels.",
					},
				},
				Relations: []types.Relation{
					{
						ID:          "rel-aabbccdd",
						Target:      "https://pika.readthedocs.io/",
						Type:        "official_docs",
						Description: "Official documentation",
					},
					{
						ID:          "rel-eeff0011",
						Target:      "connection-tuning",
						Type:        "references_section",
						Description: "Links to section Connection Tuning",
					},
				},
			},
		},
	}
}

func TestValidateLibDocs(t *testing.T) {
	t.Run("clean document", func(t *testing.T) {
		rep := ValidateLibDocs(validLibDocsDoc(), "lib-docs-pika.json", "")
		assert.Zero(t, rep.Code(), "diagnostics: %v", rep.Diagnostics)
	})

	t.Run("no entities warns", func(t *testing.T) {
		doc := validLibDocsDoc()
		doc.Entities = nil
		rep := ValidateLibDocs(doc, "lib-docs-pika.json", "")
		assert.Equal(t, 1, rep.Code())
		assertDiagnostic(t, rep, "lists no entities")
	})

	t.Run("library is required", func(t *testing.T) {
		doc := validLibDocsDoc()
		doc.Entities[0].Library = ""
		rep := ValidateLibDocs(doc, "lib-docs-pika.json", "")
		assert.Equal(t, 1, rep.Errors())
	})

	t.Run("missing name warns", func(t *testing.T) {
		doc := validLibDocsDoc()
		doc.Entities[0].Name = ""
		rep := ValidateLibDocs(doc, "lib-docs-pika.json", "")
		assert.Zero(t, rep.Errors())
		assertDiagnostic(t, rep, "display falls back to the entity id")
	})

	t.Run("model category rejected", func(t *testing.T) {
		doc := validLibDocsDoc()
		doc.Entities[0].Observations[0].Category = "architecture"
		rep := ValidateLibDocs(doc, "lib-docs-pika.json", "")
		assert.Equal(t, 1, rep.Errors())
		assertDiagnostic(t, rep, `unknown category "architecture"`)
	})

	t.Run("direction forbidden on knowledge relations", func(t *testing.T) {
		doc := validLibDocsDoc()
		doc.Entities[0].Relations[0].Direction = types.DirectionOutbound
		rep := ValidateLibDocs(doc, "lib-docs-pika.json", "")
		assert.Equal(t, 1, rep.Errors())
		assertDiagnostic(t, rep, "only valid on c1 relations")
	})

	t.Run("missing source file warns when probing", func(t *testing.T) {
		dir := t.TempDir()
		doc := validLibDocsDoc()
		doc.Entities[0].SourceFile = "docs/pika/connection.md"
		rep := ValidateLibDocs(doc, "lib-docs-pika.json", dir)
		assert.Zero(t, rep.Errors())
		assertDiagnostic(t, rep, "does not exist on disk")
	})
}

func TestCheckLibTarget(t *testing.T) {
	tests := []struct {
		name     string
		relType  string
		target   string
		errors   int
		contains string
	}{
		{"source code url", "source_code", "https://github.com/pika/pika", 0, ""},
		{"official docs url", "official_docs", "https://pika.readthedocs.io/", 0, ""},
		{"external reference url", "external_reference", "https://www.rabbitmq.com/amqp.html", 0, ""},
		{"source code non-url", "source_code", "src/connection.py", 1, "need an absolute http(s) URL"},
		{"official docs ftp", "official_docs", "ftp://mirror.example.com/docs", 1, "need an absolute http(s) URL"},
		{"section slug", "references_section", "connection-tuning", 0, ""},
		{"section with hash", "references_section", "#connection-tuning", 1, "must not carry the leading #"},
		{"section with spaces", "references_section", "connection tuning", 1, "not a section anchor slug"},
		{"section with scheme", "references_section", "https://example.com#x", 1, "not a section anchor slug"},
		{"related docs path", "related_docs", "guides/channels.md", 0, ""},
		{"related docs url", "related_docs", "https://example.com/channels.md", 1, "expect a document path"},
		{"mentions free-form", "mentions", "basic-publish", 0, ""},
		{"references free-form", "references", "../amqp-0-9-1.pdf", 0, ""},
		{"empty target", "mentions", "", 1, "required field is missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := NewReport("doc")
			checkLibTarget(rep, "entities[0].relations[0].target", tt.relType, tt.target)
			assert.Equal(t, tt.errors, rep.Errors(), "diagnostics: %v", rep.Diagnostics)
			if tt.contains != "" {
				assertDiagnostic(t, rep, tt.contains)
			}
		})
	}
}
