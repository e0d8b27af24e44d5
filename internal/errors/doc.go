// Package errors provides error types with process exit codes for dockergen.
//
// DockergenError carries an exit code alongside the message so that main()
// can translate any error returned by a command into the right process
// status:
//
//	if err := cmd.Execute(); err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
//
// Constructors exist for the common failure cases:
//
//	errors.ConfigError("failed to load config", err) // exit 2
//	errors.ValidationFailed(3)                       // exit 3
//	errors.OutputExists("Dockerfile")                // exit 4
//	errors.GenerationFailed(err)                     // exit 5
//
// Validation diagnostics themselves are not errors in this package's sense:
// the config package returns them as plain data (FieldError values) and the
// command layer decides whether to turn them into a ValidationFailed error.
package errors
