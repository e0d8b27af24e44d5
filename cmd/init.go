package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gpuforge/dockergen/internal/config"
	"github.com/gpuforge/dockergen/internal/errors"
)

var initOutput string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long: `Write a configuration file populated with the default values.
Edit the file and pass it to "dockergen generate --config".`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "docker-config.yaml", "Output configuration path")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(initOutput); err == nil {
		return errors.OutputExists(initOutput)
	}

	data, err := config.EncodeDefault()
	if err != nil {
		return errors.Wrap(errors.ExitGeneralError, "failed to encode default configuration", err)
	}

	if dir := filepath.Dir(initOutput); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WriteFailed(initOutput, err)
		}
	}
	if err := os.WriteFile(initOutput, data, 0o644); err != nil {
		return errors.WriteFailed(initOutput, err)
	}

	logSuccess("Configuration written: %s", initOutput)
	logInfo("Edit it, then run: dockergen generate --config %s", initOutput)
	return nil
}
