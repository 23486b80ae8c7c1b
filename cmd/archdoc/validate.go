// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/archdoc/internal/model"
	"github.com/pdiddy/archdoc/internal/preserve"
	"github.com/pdiddy/archdoc/internal/schema"
	"github.com/pdiddy/archdoc/internal/validate"
	"github.com/pdiddy/archdoc/pkg/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate pipeline documents, content preservation, and the stage chain",
	Long: `Validate checks pipeline artifacts without modifying them. Subcommands
cover the content-preservation contract for enhanced files, each document
kind against its schema, the stage timestamp order, and the whole model
directory at once.

Every subcommand exits 0 when clean, 1 when only warnings were found, and
2 when anything blocks.`,
}

// --- content subcommand ---

var validateContentCmd = &cobra.Command{
	Use:   "content <original> <enhanced>",
	Short: "Verify an enhanced file still carries the original content",
	Long: `Content compares the body of an enhanced file (everything below the
frontmatter envelope) against the original. Identical content passes;
whitespace-only differences warn unless --strict makes them errors; lost or
altered content fails with a unified diff.`,
	Args: cobra.ExactArgs(2),
	RunE: runValidateContent,
}

func runValidateContent(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("strict")
	if !strict {
		strict = toolConfig().Validate.Strict
	}

	res, err := preserve.CompareFiles(args[0], args[1], strict)
	if err != nil {
		return err
	}

	switch res.State {
	case preserve.Match:
		fmt.Printf("%s: content preserved\n", args[1])
	case preserve.WhitespaceOnly:
		fmt.Printf("%s: whitespace differences only\n", args[1])
		if verboseFlag(cmd) {
			// The lenient pass carries no diff; rerun strictly to show
			// where the whitespace moved.
			strictRes, err := preserve.CompareFiles(args[0], args[1], true)
			if err == nil {
				fmt.Print(strictRes.Diff)
			}
		}
	case preserve.Mismatch:
		fmt.Printf("%s: content mismatch\n", args[1])
		fmt.Print(res.Diff)
	}

	if res.State != preserve.Match {
		return exitCodeError{res.Code()}
	}
	return nil
}

// --- init subcommand ---

var validateInitCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Validate a repository-inventory document",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidateInit,
}

func runValidateInit(cmd *cobra.Command, args []string) error {
	path := stagePathArg(args, schema.KindInit)

	doc, err := model.ReadInit(path)
	if err != nil {
		return err
	}
	if verboseFlag(cmd) {
		fmt.Printf("checked %d repositories\n", len(doc.Repositories))
	}
	return reportExit(validate.ValidateInit(doc, path, filepath.Dir(path)))
}

// --- c1 subcommand ---

var validateC1Cmd = &cobra.Command{
	Use:   "c1 [file|-]",
	Short: "Validate a system-context document",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidateC1,
}

func runValidateC1(cmd *cobra.Command, args []string) error {
	var (
		doc  *types.SystemsDocument
		name string
		dir  string
	)
	if path := stagePathArg(args, schema.KindSystems); path == "-" {
		data, n, err := readInput(path)
		if err != nil {
			return err
		}
		doc, err = model.DecodeSystems(data)
		if err != nil {
			return fmt.Errorf("%s: %w", n, err)
		}
		name = n
	} else {
		d, err := model.ReadSystems(path)
		if err != nil {
			return err
		}
		doc, name, dir = d, path, filepath.Dir(path)
	}

	if verboseFlag(cmd) {
		fmt.Printf("checked %d systems\n", len(doc.Systems))
	}
	return reportExit(validate.ValidateSystems(doc, name, dir))
}

// --- c2 subcommand ---

var validateC2Cmd = &cobra.Command{
	Use:   "c2 [file|-]",
	Short: "Validate a container-level document",
	Long: `C2 validates a container document against the schema and resolves each
system_id against the system-context document. The parent defaults to
c1-systems.json next to the validated file; --c1 or --parent points
elsewhere. When no parent can be read, cross-references are skipped with a
warning.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidateC2,
}

func runValidateC2(cmd *cobra.Command, args []string) error {
	var (
		doc  *types.ContainersDocument
		name string
		dir  string
	)
	if path := stagePathArg(args, schema.KindContainers); path == "-" {
		data, n, err := readInput(path)
		if err != nil {
			return err
		}
		doc, err = model.DecodeContainers(data)
		if err != nil {
			return fmt.Errorf("%s: %w", n, err)
		}
		name = n
	} else {
		d, err := model.ReadContainers(path)
		if err != nil {
			return err
		}
		doc, name, dir = d, path, filepath.Dir(path)
	}

	parentPath, explicit := parentPathArg(cmd, "c1", dir, schema.KindSystems)
	var parent *types.SystemsDocument
	if parentPath != "" {
		p, err := model.ReadSystems(parentPath)
		switch {
		case err == nil:
			parent = p
		case explicit || !errors.Is(err, os.ErrNotExist):
			return err
		}
	}

	if verboseFlag(cmd) {
		fmt.Printf("checked %d containers\n", len(doc.Containers))
	}
	rep := validate.ValidateContainers(doc, name, dir, parent)
	if parent == nil {
		rep.Warnf("", "parent document %s not available; cross-references not checked",
			parentDisplay(parentPath, schema.KindSystems))
	}
	return reportExit(rep)
}

// --- c3 subcommand ---

var validateC3Cmd = &cobra.Command{
	Use:   "c3 [file|-]",
	Short: "Validate a component-level document",
	Long: `C3 validates a component document against the schema and resolves each
container_id against the container document. The parent defaults to
c2-containers.json next to the validated file; --c2 or --parent points
elsewhere. When no parent can be read, cross-references are skipped with a
warning.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidateC3,
}

func runValidateC3(cmd *cobra.Command, args []string) error {
	var (
		doc  *types.ComponentsDocument
		name string
		dir  string
	)
	if path := stagePathArg(args, schema.KindComponents); path == "-" {
		data, n, err := readInput(path)
		if err != nil {
			return err
		}
		doc, err = model.DecodeComponents(data)
		if err != nil {
			return fmt.Errorf("%s: %w", n, err)
		}
		name = n
	} else {
		d, err := model.ReadComponents(path)
		if err != nil {
			return err
		}
		doc, name, dir = d, path, filepath.Dir(path)
	}

	parentPath, explicit := parentPathArg(cmd, "c2", dir, schema.KindContainers)
	var parent *types.ContainersDocument
	if parentPath != "" {
		p, err := model.ReadContainers(parentPath)
		switch {
		case err == nil:
			parent = p
		case explicit || !errors.Is(err, os.ErrNotExist):
			return err
		}
	}

	if verboseFlag(cmd) {
		fmt.Printf("checked %d components\n", len(doc.Components))
	}
	rep := validate.ValidateComponents(doc, name, dir, parent)
	if parent == nil {
		rep.Warnf("", "parent document %s not available; cross-references not checked",
			parentDisplay(parentPath, schema.KindContainers))
	}
	return reportExit(rep)
}

// --- libdocs subcommand ---

var validateLibDocsCmd = &cobra.Command{
	Use:   "libdocs [file...]",
	Short: "Validate library-documentation knowledge files",
	Long: `Libdocs validates lib-docs knowledge files. Without arguments it checks
every lib-docs-*.json in the model directory.`,
	RunE: runValidateLibDocs,
}

func runValidateLibDocs(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		matches, err := filepath.Glob(filepath.Join(modelDir(), schema.LibDocsPattern))
		if err != nil {
			return err
		}
		sort.Strings(matches)
		paths = matches
	}
	if len(paths) == 0 {
		rep := validate.NewReport(modelDir())
		rep.Warnf("", "no lib-docs files found")
		return reportExit(rep)
	}

	if len(paths) == 1 {
		doc, err := model.ReadLibDocs(paths[0])
		if err != nil {
			return err
		}
		if verboseFlag(cmd) {
			fmt.Printf("checked %d entities\n", len(doc.Entities))
		}
		return reportExit(validate.ValidateLibDocs(doc, paths[0], filepath.Dir(paths[0])))
	}

	merged := validate.NewReport(modelDir())
	entities := 0
	for _, path := range paths {
		doc, err := model.ReadLibDocs(path)
		if err != nil {
			return err
		}
		entities += len(doc.Entities)
		merged.Merge(validate.ValidateLibDocs(doc, filepath.Base(path), filepath.Dir(path)))
	}
	if verboseFlag(cmd) {
		fmt.Printf("checked %d entities in %d files\n", entities, len(paths))
	}
	return reportExit(merged)
}

// --- chain subcommand ---

var validateChainCmd = &cobra.Command{
	Use:   "chain [dir]",
	Short: "Validate a whole model directory",
	Long: `Chain loads every stage document in a model directory and validates each
one, the references between consecutive stages, and the generation order of
the pipeline.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidateChain,
}

func runValidateChain(cmd *cobra.Command, args []string) error {
	dir := modelDir()
	if len(args) > 0 {
		dir = args[0]
	}

	m, err := model.ReadDir(dir)
	if err != nil {
		return err
	}
	if verboseFlag(cmd) {
		fmt.Printf("stages found: %s; %d lib-docs files\n", stagesFound(m), len(m.LibDocs))
	}
	return reportExit(validate.ValidateChain(m))
}

func stagesFound(m *model.Model) string {
	found := ""
	add := func(kind schema.Kind, present bool) {
		if !present {
			return
		}
		if found != "" {
			found += ", "
		}
		found += string(kind)
	}
	add(schema.KindInit, m.Init != nil)
	add(schema.KindSystems, m.Systems != nil)
	add(schema.KindContainers, m.Containers != nil)
	add(schema.KindComponents, m.Components != nil)
	if found == "" {
		return "none"
	}
	return found
}

// --- timestamps subcommand ---

var validateTimestampsCmd = &cobra.Command{
	Use:   "timestamps <child> <parent>",
	Short: "Check that a document was generated after its parent",
	Long: `Timestamps compares the envelope timestamps of two documents and fails
unless the child's is strictly after the parent's.`,
	Args: cobra.ExactArgs(2),
	RunE: runValidateTimestamps,
}

func runValidateTimestamps(cmd *cobra.Command, args []string) error {
	childMeta, err := model.ReadEnvelope(args[0])
	if err != nil {
		return err
	}
	parentMeta, err := model.ReadEnvelope(args[1])
	if err != nil {
		return err
	}

	child, parent := filepath.Base(args[0]), filepath.Base(args[1])
	rep := validate.NewReport(child)
	validate.CheckOrder(rep, child, childMeta, parent, parentMeta)
	return reportExit(rep)
}

// --- shared helpers ---

// verboseFlag reads the validate group's persistent verbose flag.
func verboseFlag(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("verbose")
	return v
}

// stagePathArg resolves the positional document argument: the explicit path
// or "-", defaulting to the conventional stage file in the model directory.
func stagePathArg(args []string, kind schema.Kind) string {
	if len(args) > 0 {
		return args[0]
	}
	return model.StagePath(modelDir(), kind)
}

// parentPathArg resolves where the parent document should be read from: the
// kind-specific flag, the generic --parent flag, or the conventional
// sibling within dir. explicit reports whether a flag forced the choice,
// which turns a missing parent from a warning into an error.
func parentPathArg(cmd *cobra.Command, flagName, dir string, kind schema.Kind) (path string, explicit bool) {
	if v, _ := cmd.Flags().GetString(flagName); v != "" {
		return v, true
	}
	if v, _ := cmd.Flags().GetString("parent"); v != "" {
		return v, true
	}
	if dir != "" {
		return model.StagePath(dir, kind), false
	}
	return "", false
}

func parentDisplay(path string, kind schema.Kind) string {
	if path != "" {
		return path
	}
	spec, _ := schema.Spec(kind)
	return spec.Filename
}

func init() {
	validateCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	validateContentCmd.Flags().Bool("strict", false, "treat whitespace differences as errors")

	validateC2Cmd.Flags().String("parent", "", "path to the parent document")
	validateC2Cmd.Flags().String("c1", "", "path to the system-context document")

	validateC3Cmd.Flags().String("parent", "", "path to the parent document")
	validateC3Cmd.Flags().String("c2", "", "path to the container document")

	validateCmd.AddCommand(validateContentCmd)
	validateCmd.AddCommand(validateInitCmd)
	validateCmd.AddCommand(validateC1Cmd)
	validateCmd.AddCommand(validateC2Cmd)
	validateCmd.AddCommand(validateC3Cmd)
	validateCmd.AddCommand(validateLibDocsCmd)
	validateCmd.AddCommand(validateChainCmd)
	validateCmd.AddCommand(validateTimestampsCmd)

	rootCmd.AddCommand(validateCmd)
}
