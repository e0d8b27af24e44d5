package main

import (
	"os"

	"github.com/gpuforge/dockergen/cmd"
	"github.com/gpuforge/dockergen/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
