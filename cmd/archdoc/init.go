package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/archdoc/internal/docgen"
	"github.com/pdiddy/archdoc/internal/model"
	"github.com/pdiddy/archdoc/internal/schema"
	"github.com/pdiddy/archdoc/pkg/types"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold a documentation workspace",
	Long: `Init creates the layout the pipeline expects: a model directory with a
starter init.json, the docs output directory, and an archdoc.yaml
configuration file. Existing documents are never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const configTemplate = `# archdoc configuration. Values can also be set through ARCHDOC_*
# environment variables or command-line flags.

workspace:
  # Directory holding the pipeline documents (init.json, c1-systems.json, ...).
  model_dir: model
  # Directory for rendered documentation pages.
  docs_dir: docs/architecture

# validate:
#   strict: true

# docgen:
#   diagrams: true
`

func runInit(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	modelPath := filepath.Join(root, "model")
	for _, dir := range []string{modelPath, filepath.Join(root, docgen.DefaultOutputDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Printf("created %s/\n", dir)
	}

	initPath := model.StagePath(modelPath, schema.KindInit)
	if _, err := os.Stat(initPath); err == nil {
		return fmt.Errorf("%s already exists; refusing to overwrite", initPath)
	}
	doc := types.InitDocument{
		Metadata: types.Metadata{
			SchemaVersion: schema.Version,
			Timestamp:     time.Now().UTC().Format(time.RFC3339),
			Generator:     "archdoc",
		},
		Repositories: []types.Repository{},
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling starter document: %w", err)
	}
	if err := os.WriteFile(initPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", initPath, err)
	}
	fmt.Printf("created %s\n", initPath)

	cfgPath := filepath.Join(root, "archdoc.yaml")
	if _, err := os.Stat(cfgPath); err == nil {
		fmt.Printf("kept existing %s\n", cfgPath)
		return nil
	}
	if err := os.WriteFile(cfgPath, []byte(configTemplate), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", cfgPath, err)
	}
	fmt.Printf("created %s\n", cfgPath)
	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
