package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gpuforge/dockergen/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "dockergen",
	Short: "GPU Dockerfile generator",
	Long: `dockergen generates customized Dockerfiles for NVIDIA GPU servers.

A declarative config file (YAML, JSON, or TOML) describes the desired image:
base image, system packages, Python tooling, Conda, ML frameworks, proxy,
SSH, and GitHub CLI. dockergen validates the config and composes the
corresponding Dockerfile.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)
