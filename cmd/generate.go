package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gpuforge/dockergen/internal/config"
	"github.com/gpuforge/dockergen/internal/errors"
	"github.com/gpuforge/dockergen/internal/generator"
	"github.com/gpuforge/dockergen/internal/logging"
	"github.com/gpuforge/dockergen/internal/tui"
)

var (
	generateConfig      string
	generateOutput      string
	generateOverwrite   bool
	generateInteractive bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a Dockerfile from configuration",
	Long: `Generate a Dockerfile from a configuration file, the interactive
wizard, or the built-in defaults.

Examples:
  dockergen generate --config docker-config.yaml
  dockergen generate --config docker-config.yaml -o build/Dockerfile --overwrite
  dockergen generate --interactive`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateConfig, "config", "c", "", "Path to configuration file (YAML, JSON, or TOML)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "Dockerfile", "Output Dockerfile path")
	generateCmd.Flags().BoolVar(&generateOverwrite, "overwrite", false, "Overwrite an existing Dockerfile")
	generateCmd.Flags().BoolVarP(&generateInteractive, "interactive", "i", false, "Configure interactively")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	var cfg config.Config

	switch {
	case generateInteractive:
		wizardCfg, err := tui.RunWizard()
		if err != nil {
			return errors.ConfigError("interactive configuration failed", err)
		}
		if wizardCfg == nil {
			logWarning("Cancelled, no Dockerfile generated")
			return nil
		}
		cfg = *wizardCfg

	case generateConfig != "":
		logging.Debug("loading config", "path", generateConfig)
		loaded, err := config.Load(generateConfig)
		if err != nil {
			return errors.ConfigError("failed to load configuration", err)
		}
		cfg = loaded

	default:
		logWarning("No configuration provided, using defaults")
		cfg = config.Default()
	}

	if err := generator.WriteFile(&cfg, generateOutput, generateOverwrite); err != nil {
		return generationError(err, generateOutput)
	}

	abs, err := filepath.Abs(generateOutput)
	if err != nil {
		abs = generateOutput
	}
	logSuccess("Dockerfile generated: %s", abs)
	return nil
}
