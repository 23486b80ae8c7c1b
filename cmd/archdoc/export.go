package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/archdoc/internal/docgen"
	"github.com/pdiddy/archdoc/internal/model"
)

var exportCmd = &cobra.Command{
	Use:   "export [dir]",
	Short: "Export a model directory as one YAML or JSON bundle",
	Long: `Export bundles every document in a model directory into a single
structure and writes it to stdout or a file. Useful for feeding the model
to other tools without teaching them the per-stage file layout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	dir := modelDir()
	if len(args) > 0 {
		dir = args[0]
	}

	m, err := model.ReadDir(dir)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}

	if err := docgen.Export(m, format, w); err != nil {
		return err
	}
	if outPath != "" {
		fmt.Fprintf(os.Stderr, "wrote %s\n", outPath)
	}
	return nil
}

func init() {
	exportCmd.Flags().String("format", docgen.FormatYAML, "export format: yaml or json")
	exportCmd.Flags().StringP("output", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(exportCmd)
}
