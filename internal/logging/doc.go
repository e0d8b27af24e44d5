// Package logging provides logging utilities for dockergen.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("loading config", "path", path)
//	logging.Warn("no config provided, using defaults")
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Loading configuration from %s...", path)
//	logging.UserSuccess("Dockerfile generated: %s", output)
//	logging.UserWarning("No configuration provided, using defaults")
//	logging.UserError("Validation failed: %v", err)
//	logging.UserViolations(result.Errors)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// The generation pipeline itself (internal/config, internal/generator) never
// logs; all presentation happens in the command layer through this package.
package logging
