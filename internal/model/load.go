// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package model loads pipeline documents from disk. Readers decode one
// document kind each; ReadDir gathers whatever stages a model directory
// holds. Loading is strict about JSON syntax and silent about content:
// schema checks belong to the validate package.
package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pdiddy/archdoc/internal/schema"
	"github.com/pdiddy/archdoc/pkg/types"
)

// DecodeInit parses a repository-inventory document from raw JSON.
func DecodeInit(data []byte) (*types.InitDocument, error) {
	var doc types.InitDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing init document: %w", err)
	}
	return &doc, nil
}

// DecodeSystems parses a system-context document from raw JSON.
func DecodeSystems(data []byte) (*types.SystemsDocument, error) {
	var doc types.SystemsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing systems document: %w", err)
	}
	return &doc, nil
}

// DecodeContainers parses a container-level document from raw JSON.
func DecodeContainers(data []byte) (*types.ContainersDocument, error) {
	var doc types.ContainersDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing containers document: %w", err)
	}
	return &doc, nil
}

// DecodeComponents parses a component-level document from raw JSON.
func DecodeComponents(data []byte) (*types.ComponentsDocument, error) {
	var doc types.ComponentsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing components document: %w", err)
	}
	return &doc, nil
}

// DecodeLibDocs parses a library-documentation document from raw JSON.
func DecodeLibDocs(data []byte) (*types.LibDocsDocument, error) {
	var doc types.LibDocsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing lib-docs document: %w", err)
	}
	return &doc, nil
}

// ReadInit loads init.json content from path.
func ReadInit(path string) (*types.InitDocument, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := DecodeInit(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ReadSystems loads c1-systems.json content from path.
func ReadSystems(path string) (*types.SystemsDocument, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := DecodeSystems(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ReadContainers loads c2-containers.json content from path.
func ReadContainers(path string) (*types.ContainersDocument, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := DecodeContainers(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ReadComponents loads c3-components.json content from path.
func ReadComponents(path string) (*types.ComponentsDocument, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := DecodeComponents(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ReadLibDocs loads one lib-docs-<name>.json document from path.
func ReadLibDocs(path string) (*types.LibDocsDocument, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := DecodeLibDocs(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ReadEnvelope decodes only the shared metadata block of a document,
// ignoring the kind-specific payload. Timestamp checks between stages need
// nothing else.
func ReadEnvelope(path string) (types.Metadata, error) {
	data, err := readFile(path)
	if err != nil {
		return types.Metadata{}, err
	}
	var probe struct {
		Metadata types.Metadata `json:"metadata"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return types.Metadata{}, fmt.Errorf("%s: parsing document envelope: %w", path, err)
	}
	return probe.Metadata, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return data, nil
}

// LibDocsFile pairs a lib-docs document with the file it came from.
type LibDocsFile struct {
	Path string
	Doc  *types.LibDocsDocument
}

// Model is the set of documents present in one model directory. Stages the
// directory does not contain are nil; chain validation decides whether that
// is acceptable.
type Model struct {
	Dir        string
	Init       *types.InitDocument
	Systems    *types.SystemsDocument
	Containers *types.ContainersDocument
	Components *types.ComponentsDocument
	LibDocs    []LibDocsFile
}

// ReadDir loads every stage document present in dir. A stage file that is
// missing leaves its field nil; a file that exists but cannot be read or
// parsed is an error.
func ReadDir(dir string) (*Model, error) {
	m := &Model{Dir: dir}

	if path, ok := stagePath(dir, schema.KindInit); ok {
		doc, err := ReadInit(path)
		if err != nil {
			return nil, err
		}
		m.Init = doc
	}
	if path, ok := stagePath(dir, schema.KindSystems); ok {
		doc, err := ReadSystems(path)
		if err != nil {
			return nil, err
		}
		m.Systems = doc
	}
	if path, ok := stagePath(dir, schema.KindContainers); ok {
		doc, err := ReadContainers(path)
		if err != nil {
			return nil, err
		}
		m.Containers = doc
	}
	if path, ok := stagePath(dir, schema.KindComponents); ok {
		doc, err := ReadComponents(path)
		if err != nil {
			return nil, err
		}
		m.Components = doc
	}

	matches, err := filepath.Glob(filepath.Join(dir, schema.LibDocsPattern))
	if err != nil {
		return nil, fmt.Errorf("globbing lib-docs in %s: %w", dir, err)
	}
	sort.Strings(matches)
	for _, path := range matches {
		doc, err := ReadLibDocs(path)
		if err != nil {
			return nil, err
		}
		m.LibDocs = append(m.LibDocs, LibDocsFile{Path: path, Doc: doc})
	}

	return m, nil
}

// StagePath returns the conventional path of a stage file within dir.
func StagePath(dir string, kind schema.Kind) string {
	spec, _ := schema.Spec(kind)
	return filepath.Join(dir, spec.Filename)
}

func stagePath(dir string, kind schema.Kind) (string, bool) {
	path := StagePath(dir, kind)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}
