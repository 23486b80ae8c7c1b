package types

// WorkspaceConfig holds the directory layout shared by all commands.
type WorkspaceConfig struct {
	// ModelDir is the directory holding pipeline documents
	// (init.json, c1-systems.json, ...). Default "model".
	ModelDir string `json:"model_dir" yaml:"model_dir"`

	// DocsDir is the directory for rendered documentation pages.
	// Default "docs/architecture".
	DocsDir string `json:"docs_dir" yaml:"docs_dir"`
}

// ValidateConfig holds settings for the validation commands.
type ValidateConfig struct {
	// Strict disables whitespace normalization in content-preservation
	// checks: any byte difference becomes a blocking error.
	Strict bool `json:"strict" yaml:"strict"`
}

// DocgenConfig holds settings for documentation generation.
type DocgenConfig struct {
	// OutputDir is where rendered markdown pages are written.
	// Defaults to WorkspaceConfig.DocsDir.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Diagrams controls whether Mermaid diagram blocks are included
	// in rendered pages.
	Diagrams bool `json:"diagrams" yaml:"diagrams"`
}

// ToolConfig groups all command configurations. It mirrors the layout of
// the archdoc.yaml configuration file.
type ToolConfig struct {
	Workspace WorkspaceConfig `json:"workspace" yaml:"workspace"`
	Validate  ValidateConfig  `json:"validate" yaml:"validate"`
	Docgen    DocgenConfig    `json:"docgen" yaml:"docgen"`
}
