package cmd

import (
	"os"

	"github.com/gpuforge/dockergen/internal/errors"
	"github.com/gpuforge/dockergen/internal/generator"
	"github.com/gpuforge/dockergen/internal/logging"
)

// generationError maps generation failures to exit-coded errors, printing
// the full violation list for invalid configs.
func generationError(err error, output string) error {
	var vErr *generator.ValidationError
	if errors.As(err, &vErr) {
		logging.UserViolations(vErr.Result.Errors)
		return errors.ValidationFailed(len(vErr.Result.Errors))
	}
	if errors.Is(err, os.ErrExist) {
		return errors.OutputExists(output)
	}
	return errors.GenerationFailed(err)
}
