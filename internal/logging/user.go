package logging

import (
	"fmt"
	"os"

	"github.com/gpuforge/dockergen/internal/config"
)

// User-facing CLI output with status glyphs. These bypass the structured
// logger: generation results and validation reports belong on the terminal
// even when debug logging is off. Status lines go to stdout, problems to
// stderr so that piped output stays clean.

// UserInfo prints an informational line to stdout.
func UserInfo(format string, args ...any) {
	fmt.Fprintf(os.Stdout, "ℹ "+format+"\n", args...)
}

// UserSuccess prints a success line to stdout.
func UserSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stdout, "✓ "+format+"\n", args...)
}

// UserWarning prints a warning line to stderr.
func UserWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "⚠ "+format+"\n", args...)
}

// UserError prints an error line to stderr.
func UserError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

// UserViolations prints a validation report to stderr: a heading followed by
// one indented line per violation, in the order the validator found them.
func UserViolations(errs []config.FieldError) {
	UserError("Configuration is invalid:")
	for _, fe := range errs {
		UserError("  %s", fe.Error())
	}
}
