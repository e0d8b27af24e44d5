package config

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// ErrorKind classifies a validation failure.
type ErrorKind string

const (
	KindMissingRequiredField ErrorKind = "missing_required_field"
	KindEmptyValue           ErrorKind = "empty_value"
	KindMalformedURL         ErrorKind = "malformed_url"
	KindMalformedVersion     ErrorKind = "malformed_version"
	KindDuplicateEntry       ErrorKind = "duplicate_entry"
	KindRelativePath         ErrorKind = "relative_path"
)

// FieldError describes one semantically invalid value in an otherwise
// well-shaped configuration.
type FieldError struct {
	Path   string
	Kind   ErrorKind
	Detail string
}

func (e FieldError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Path, e.Detail, e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Kind)
}

// ValidationResult holds every violation found in one validation pass.
type ValidationResult struct {
	Errors []FieldError
}

// Valid reports whether the configuration passed validation.
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// versionRegex matches version strings of the form major.minor or
// major.minor.patch, e.g. "3.10" or "12.3.1".
var versionRegex = regexp.MustCompile(`^[0-9]+\.[0-9]+(\.[0-9]+)?$`)

// Validate checks cross-field invariants and collects every violation.
// It never stops at the first error: configuration authors need the complete
// list to fix a file in one pass. Pure function, no side effects.
func Validate(cfg *Config) ValidationResult {
	var result ValidationResult

	add := func(path string, kind ErrorKind, detail string) {
		result.Errors = append(result.Errors, FieldError{Path: path, Kind: kind, Detail: detail})
	}

	if cfg.BaseImage.Image == "" {
		add("base_image.image", KindEmptyValue, "base image name is required")
	}
	if cfg.BaseImage.Tag == "" {
		add("base_image.tag", KindEmptyValue, "base image tag is required")
	}

	if cfg.Proxy.Enabled {
		if cfg.Proxy.ClashSubscribeLink == "" {
			add("proxy.clash_subscribe_link", KindMissingRequiredField,
				"clash_subscribe_link is required when proxy is enabled")
		} else if !looksLikeURL(cfg.Proxy.ClashSubscribeLink) {
			add("proxy.clash_subscribe_link", KindMalformedURL,
				fmt.Sprintf("%q is not a valid URL", cfg.Proxy.ClashSubscribeLink))
		}
	}

	if v := cfg.Python.Version; v != "" && !versionRegex.MatchString(v) {
		add("python.version", KindMalformedVersion,
			fmt.Sprintf("%q does not match major.minor[.patch]", v))
	}
	if v := cfg.MLFramework.CudaVersion; v != "" && !versionRegex.MatchString(v) {
		add("ml_framework.cuda_version", KindMalformedVersion,
			fmt.Sprintf("%q does not match major.minor[.patch]", v))
	}

	if m := cfg.System.AptMirror; m != "" && !looksLikeURL(m) {
		add("system.apt_mirror", KindMalformedURL, fmt.Sprintf("%q is not a valid URL", m))
	}
	if m := cfg.Python.PipMirror; m != "" && !looksLikeURL(m) {
		add("python.pip_mirror", KindMalformedURL, fmt.Sprintf("%q is not a valid URL", m))
	}

	seen := make(map[string]bool, len(cfg.Conda.Channels))
	for _, ch := range cfg.Conda.Channels {
		if seen[ch] {
			add("conda.channels", KindDuplicateEntry, fmt.Sprintf("duplicate channel %q", ch))
		}
		seen[ch] = true
	}

	if cfg.WorkingDir != "" && !path.IsAbs(cfg.WorkingDir) {
		add("working_dir", KindRelativePath,
			fmt.Sprintf("%q must be an absolute path", cfg.WorkingDir))
	}

	for _, cmd := range cfg.CustomCommands {
		if strings.TrimSpace(cmd) == "" {
			add("custom_commands", KindEmptyValue, "custom command must not be blank")
		}
	}

	return result
}

// looksLikeURL reports whether s parses as a URL with a scheme and host.
func looksLikeURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
