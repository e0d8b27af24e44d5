// Package tui provides the interactive configuration wizard for dockergen.
//
// The wizard walks through the configuration sections step by step (metadata,
// base image, system, python, conda, ml framework, proxy, extras), shows a
// summary, and validates the assembled config before finishing. Answers left
// empty keep their defaults, so the wizard can be Enter-ed through to get the
// canonical default Dockerfile.
//
//	cfg, err := tui.RunWizard()
//	if cfg == nil && err == nil {
//	    // user cancelled
//	}
package tui
