package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/archdoc/internal/libdocs"
	"github.com/pdiddy/archdoc/internal/preserve"
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance <file>",
	Short: "Prepend extracted metadata to a documentation file as frontmatter",
	Long: `Enhance extracts library metadata from a markdown file and writes a copy
with the metadata prepended as YAML frontmatter. The body below the
frontmatter is the original file, byte for byte; validate content verifies
that contract.

With --docs-json the extracted entity is also upserted into a lib-docs
knowledge document, creating the file if needed.`,
	Args: cobra.ExactArgs(1),
	RunE: runEnhance,
}

func runEnhance(cmd *cobra.Command, args []string) error {
	src := args[0]
	library, _ := cmd.Flags().GetString("library")
	if library == "" {
		return fmt.Errorf("--library is required")
	}
	entityID, _ := cmd.Flags().GetString("entity")
	if entityID == "" {
		entityID = libdocs.DefaultEntityID(library, src)
	}
	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		outPath = src
	}
	check, _ := cmd.Flags().GetBool("check")

	// In-place enhancement destroys the comparison baseline, so capture it
	// up front when a check was requested.
	var original []byte
	if check {
		var err error
		original, err = os.ReadFile(src)
		if err != nil {
			return err
		}
	}

	entity, err := libdocs.EnhanceFile(src, library, entityID, outPath, os.Stderr)
	if err != nil {
		return err
	}

	if docsJSON, _ := cmd.Flags().GetString("docs-json"); docsJSON != "" {
		doc, err := libdocs.LoadOrCreateDocument(docsJSON)
		if err != nil {
			return err
		}
		libdocs.UpsertEntity(doc, *entity)
		if err := libdocs.WriteDocument(docsJSON, doc); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "updated %s\n", docsJSON)
	}

	if !check {
		return nil
	}

	enhanced, err := os.ReadFile(outPath)
	if err != nil {
		return err
	}
	body, err := preserve.ContentAfterFrontmatter(string(enhanced))
	if err != nil {
		return err
	}
	res := preserve.Compare(string(original), body, src, outPath, false)
	if res.State != preserve.Match {
		fmt.Printf("content check: %s\n", res.State)
		if res.Diff != "" {
			fmt.Print(res.Diff)
		}
		return exitCodeError{res.Code()}
	}
	fmt.Println("content check: preserved")
	return nil
}

func init() {
	enhanceCmd.Flags().String("library", "", "library the file documents (required)")
	enhanceCmd.Flags().String("entity", "", "entity id (default: derived from library and filename)")
	enhanceCmd.Flags().StringP("output", "o", "", "write the enhanced copy here (default: in place)")
	enhanceCmd.Flags().String("docs-json", "", "lib-docs document to upsert the entity into")
	enhanceCmd.Flags().Bool("check", false, "verify content preservation after writing")

	rootCmd.AddCommand(enhanceCmd)
}
