// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the archdoc CLI: parsing, metadata
// extraction, enhancement, validation, and documentation generation for
// C4 architecture models.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/archdoc/internal/docgen"
	"github.com/pdiddy/archdoc/internal/validate"
	"github.com/pdiddy/archdoc/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the archdoc CLI.
var rootCmd = &cobra.Command{
	Use:   "archdoc",
	Short: "Validate and document C4 architecture models",
	Long: `archdoc maintains architecture documentation pipelines built on the C4
model. The pipeline derives JSON documents stage by stage (init, c1 systems,
c2 containers, c3 components) plus per-library knowledge files; archdoc
parses the source markdown, extracts library metadata, and validates every
document against the schema, the stage chain, and the content-preservation
contract.

Validation commands exit 0 when a document is clean, 1 when it only carries
warnings, and 2 when anything blocks.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitCodeError carries a report's exit code through cobra without
// printing anything; the report was already written.
type exitCodeError struct {
	code int
}

func (e exitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// reportExit prints a validation report and converts its code into the
// process exit status.
func reportExit(rep *validate.Report) error {
	rep.Print(os.Stdout)
	if code := rep.Code(); code != 0 {
		return exitCodeError{code}
	}
	return nil
}

// readInput loads a file argument, treating "-" as stdin. The returned name
// is what reports and errors should call the input.
func readInput(arg string) (data []byte, name string, err error) {
	if arg == "-" {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("reading stdin: %w", err)
		}
		return data, "stdin", nil
	}
	data, err = os.ReadFile(arg)
	if err != nil {
		return nil, "", err
	}
	return data, arg, nil
}

// toolConfig resolves the configuration file contents over built-in
// defaults. Per-command flags override these.
func toolConfig() types.ToolConfig {
	cfg := types.ToolConfig{
		Workspace: types.WorkspaceConfig{
			ModelDir: "model",
			DocsDir:  docgen.DefaultOutputDir,
		},
	}
	if v := viper.GetString("workspace.model_dir"); v != "" {
		cfg.Workspace.ModelDir = v
	}
	if v := viper.GetString("workspace.docs_dir"); v != "" {
		cfg.Workspace.DocsDir = v
	}
	cfg.Validate.Strict = viper.GetBool("validate.strict")
	cfg.Docgen.OutputDir = viper.GetString("docgen.output_dir")
	cfg.Docgen.Diagrams = viper.GetBool("docgen.diagrams")
	return cfg
}

// modelDir resolves the model directory: the flag when set, the config file
// otherwise, the built-in default last.
func modelDir() string {
	flags := rootCmd.PersistentFlags()
	if flags.Changed("model-dir") {
		dir, _ := flags.GetString("model-dir")
		return dir
	}
	return toolConfig().Workspace.ModelDir
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./archdoc.yaml or ~/.config/archdoc/config.yaml)")
	rootCmd.PersistentFlags().String("model-dir", "model", "directory holding the pipeline documents")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("archdoc")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "archdoc"))
		}
	}

	viper.SetEnvPrefix("ARCHDOC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exit exitCodeError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
}
