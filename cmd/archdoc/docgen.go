package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/archdoc/internal/docgen"
	"github.com/pdiddy/archdoc/internal/model"
	"github.com/pdiddy/archdoc/internal/validate"
)

var docgenCmd = &cobra.Command{
	Use:   "docgen [dir]",
	Short: "Render browsable markdown pages from a model directory",
	Long: `Docgen validates a model directory and renders it as linked markdown
pages: an index plus one page per system, with containers, components,
observations, and relations inlined. A model with validation errors is not
rendered; warnings are printed after generation and reflected in the exit
code.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDocgen,
}

func runDocgen(cmd *cobra.Command, args []string) error {
	dir := modelDir()
	if len(args) > 0 {
		dir = args[0]
	}

	m, err := model.ReadDir(dir)
	if err != nil {
		return err
	}

	rep := validate.ValidateChain(m)
	if rep.HasErrors() {
		rep.Print(os.Stdout)
		return exitCodeError{2}
	}

	cfg := toolConfig()
	out := cfg.Workspace.DocsDir
	if cfg.Docgen.OutputDir != "" {
		out = cfg.Docgen.OutputDir
	}
	if cmd.Flags().Changed("output") {
		out, _ = cmd.Flags().GetString("output")
	}
	diagrams := cfg.Docgen.Diagrams
	if cmd.Flags().Changed("diagrams") {
		diagrams, _ = cmd.Flags().GetBool("diagrams")
	}

	opts := docgen.Options{OutputDir: out, Diagrams: diagrams}
	if err := docgen.Generate(m, opts, os.Stderr); err != nil {
		return err
	}

	if rep.Code() != 0 {
		rep.Print(os.Stdout)
		return exitCodeError{rep.Code()}
	}
	return nil
}

func init() {
	docgenCmd.Flags().StringP("output", "o", docgen.DefaultOutputDir, "directory for generated pages")
	docgenCmd.Flags().Bool("diagrams", false, "include mermaid diagrams on the generated pages")

	rootCmd.AddCommand(docgenCmd)
}
