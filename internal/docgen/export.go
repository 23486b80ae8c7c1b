// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docgen

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/archdoc/internal/model"
	"github.com/pdiddy/archdoc/pkg/types"
)

// Export formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Bundle is the merged export of every document present in a model
// directory, suitable for feeding downstream tooling in one file.
type Bundle struct {
	Init       *types.InitDocument       `json:"init,omitempty" yaml:"init,omitempty"`
	Systems    *types.SystemsDocument    `json:"systems,omitempty" yaml:"systems,omitempty"`
	Containers *types.ContainersDocument `json:"containers,omitempty" yaml:"containers,omitempty"`
	Components *types.ComponentsDocument `json:"components,omitempty" yaml:"components,omitempty"`
	LibDocs    []LibDocsEntry            `json:"lib_docs,omitempty" yaml:"lib_docs,omitempty"`
}

// LibDocsEntry pairs an exported lib-docs document with its filename.
type LibDocsEntry struct {
	File string                 `json:"file" yaml:"file"`
	Doc  *types.LibDocsDocument `json:"document" yaml:"document"`
}

// Export writes the merged model to w in the requested format.
func Export(m *model.Model, format string, w io.Writer) error {
	bundle := Bundle{
		Init:       m.Init,
		Systems:    m.Systems,
		Containers: m.Containers,
		Components: m.Components,
	}
	for _, lf := range m.LibDocs {
		bundle.LibDocs = append(bundle.LibDocs, LibDocsEntry{
			File: filepath.Base(lf.Path),
			Doc:  lf.Doc,
		})
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(bundle)
	case FormatJSON:
		data, err = json.MarshalIndent(bundle, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unknown export format %q; use yaml or json", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling %s export: %w", format, err)
	}

	_, err = w.Write(data)
	return err
}
