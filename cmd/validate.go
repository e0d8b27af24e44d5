package cmd

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/gpuforge/dockergen/internal/config"
	"github.com/gpuforge/dockergen/internal/errors"
	"github.com/gpuforge/dockergen/internal/logging"
)

var validateConfig string

var validateCmd = &cobra.Command{
	Use:   "validate [config-file]",
	Short: "Validate a configuration file",
	Long: `Load a configuration file, apply defaults, and report every
validation problem found. Exits non-zero if the configuration is invalid.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateConfig, "config", "c", "docker-config.yaml", "Path to configuration file")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := validateConfig
	if len(args) == 1 {
		path = args[0]
	}

	cfg, err := config.Load(path)
	if err != nil {
		return errors.ConfigError("failed to load configuration", err)
	}
	cfg.Normalize()

	result := config.Validate(&cfg)
	if !result.Valid() {
		logging.UserViolations(result.Errors)
		return errors.ValidationFailed(len(result.Errors))
	}

	logSuccess("Configuration is valid: %s", path)
	printConfigSummary(&cfg)
	return nil
}

// printConfigSummary renders the effective configuration after defaulting.
func printConfigSummary(cfg *config.Config) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Setting", "Value"})
	t.AppendRow(table.Row{"Base image", cfg.BaseImage.Ref()})
	t.AppendRow(table.Row{"Timezone", cfg.System.Timezone})
	t.AppendRow(table.Row{"Python", pythonSummary(cfg)})
	t.AppendRow(table.Row{"Conda", enabledSummary(cfg.Conda.Enabled)})
	t.AppendRow(table.Row{"Proxy", enabledSummary(cfg.Proxy.Enabled)})
	t.AppendRow(table.Row{"SSH setup", enabledSummary(cfg.SSH.Enabled)})
	t.AppendRow(table.Row{"GitHub CLI", enabledSummary(cfg.GithubCLI.Enabled)})
	t.AppendRow(table.Row{"Working dir", cfg.WorkingDir})
	t.Render()
}

func pythonSummary(cfg *config.Config) string {
	installer := "pip"
	if cfg.Python.UseUv {
		installer = "uv"
	}
	if cfg.Python.Version == "" {
		return installer
	}
	return cfg.Python.Version + " (" + installer + ")"
}

func enabledSummary(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
