package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/archdoc/internal/libdocs"
	"github.com/pdiddy/archdoc/internal/markdown"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract library metadata from a documentation file",
	Long: `Extract runs the lexical heuristics over a markdown documentation file
and prints the resulting entity: versioned facts, dependencies, best
practices, warnings, examples, and the relations implied by links and
inline code. A file matching nothing yields an entity with empty lists.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	library, _ := cmd.Flags().GetString("library")
	if library == "" {
		return fmt.Errorf("--library is required")
	}
	entityID, _ := cmd.Flags().GetString("entity")
	if entityID == "" {
		entityID = libdocs.DefaultEntityID(library, args[0])
	}

	st, err := markdown.ParseFile(args[0])
	if err != nil {
		return err
	}
	entity, err := libdocs.Extract(st, library, entityID, args[0])
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(entity, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding entity: %w", err)
	}
	encoded = append(encoded, '\n')

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		_, err = os.Stdout.Write(encoded)
		return err
	}
	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func init() {
	extractCmd.Flags().String("library", "", "library the file documents (required)")
	extractCmd.Flags().String("entity", "", "entity id (default: derived from library and filename)")
	extractCmd.Flags().StringP("output", "o", "", "write the entity JSON to a file instead of stdout")

	rootCmd.AddCommand(extractCmd)
}
