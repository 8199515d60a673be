// Package main is the entry point for the wizard CLI. It applies YAML edit
// scripts to source files and writes the edited text with a source map.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phroun/wizardstring/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const configHelp = `
Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  WIZARD_LOG_LEVEL        Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  WIZARD_LOG_FORMAT       Log format: text, json (default: text)
  WIZARD_HIRES            Map resolution: low, high, boundary (default: low)
  WIZARD_INCLUDE_CONTENT  Embed the original text in maps (default: true)
  WIZARD_INLINE_MAP       Append maps as data URLs (default: false)
  WIZARD_HASH_NAMES       Name batch outputs by content hash (default: false)
  WIZARD_WORKERS          Files processed at once by batch (default: 4)
  WIZARD_OUT_DIR          Batch output directory (default: dist)`

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:          "wizard",
		Short:        "Edit text by offsets and keep a source map",
		Long:         `wizard applies offset-addressed edit scripts to source files and writes the result together with a version 3 source map.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")

	cmd.AddCommand(applyCmd(&envFile))
	cmd.AddCommand(batchCmd(&envFile))
	cmd.AddCommand(replCmd(&envFile))
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.EnvConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.EnvConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// mapFlags are the source map settings shared by apply and batch.
type mapFlags struct {
	hires     string
	inline    bool
	noContent bool
}

func (f *mapFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.hires, "hires", "", "Map resolution: low, high or boundary")
	cmd.Flags().BoolVar(&f.inline, "inline-map", false, "Append the map as a data URL")
	cmd.Flags().BoolVar(&f.noContent, "no-content", false, "Leave sourcesContent out of the map")
}

// apply overrides cfg with the flags that were set on cmd.
func (f *mapFlags) apply(cmd *cobra.Command, cfg *config.EnvConfig) error {
	if cmd.Flags().Changed("hires") {
		if _, err := config.ParseResolution(f.hires); err != nil {
			return err
		}
		cfg.Hires = f.hires
	}
	if cmd.Flags().Changed("inline-map") {
		cfg.InlineMap = f.inline
	}
	if cmd.Flags().Changed("no-content") {
		cfg.IncludeContent = !f.noContent
	}
	return nil
}
