package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/pdiddy/archdoc/internal/markdown"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a markdown file into its structural elements",
	Long: `Parse scans a markdown document and reports its structure: headings,
fenced code blocks, links, inline code spans, list items, blockquotes, and
paragraph lines, each with the line it starts on. Pass "-" to read stdin.

By default parse prints a summary; --json emits the full structure.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	data, name, err := readInput(args[0])
	if err != nil {
		return err
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("%s: %w", name, markdown.ErrEncoding)
	}
	st := markdown.Parse(string(data))

	asJSON, _ := cmd.Flags().GetBool("json")
	outPath, _ := cmd.Flags().GetString("output")
	if outPath != "" {
		asJSON = true
	}

	if !asJSON {
		printParseSummary(cmd, st)
		return nil
	}

	encoded, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding structure: %w", err)
	}
	encoded = append(encoded, '\n')

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

func printParseSummary(cmd *cobra.Command, st *markdown.Structure) {
	fmt.Printf("headings:     %d\n", len(st.Headings))
	fmt.Printf("code blocks:  %d\n", len(st.CodeBlocks))
	fmt.Printf("links:        %d\n", len(st.Links))
	fmt.Printf("code spans:   %d\n", len(st.CodeSpans))
	fmt.Printf("list items:   %d\n", len(st.ListItems))
	fmt.Printf("blockquotes:  %d\n", len(st.Blockquotes))
	fmt.Printf("paragraphs:   %d\n", len(st.Paragraphs))

	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose || len(st.Headings) == 0 {
		return
	}
	fmt.Println("\noutline:")
	for _, h := range st.Headings {
		fmt.Printf("%s%s (line %d)\n", strings.Repeat("  ", h.Level), h.Text, h.Line)
	}
}

func init() {
	parseCmd.Flags().Bool("json", false, "emit the full structure as JSON")
	parseCmd.Flags().StringP("output", "o", "", "write JSON structure to a file instead of stdout")
	parseCmd.Flags().BoolP("verbose", "v", false, "include the heading outline in the summary")

	rootCmd.AddCommand(parseCmd)
}
