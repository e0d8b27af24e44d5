package generator

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gpuforge/dockergen/internal/config"
)

// ValidationError reports that the configuration failed validation. The
// individual violations are carried as data so the caller can render them
// however it likes.
type ValidationError struct {
	Result config.ValidationResult
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration is invalid: %d violation(s)", len(e.Result.Errors))
}

// TemplateBindingError reports a fragment referencing a value the resolver
// did not supply. Given the config model's defaulting guarantee this should
// be unreachable; hitting it means a bug in this package, not bad user input.
type TemplateBindingError struct {
	Section string
	Err     error
}

func (e *TemplateBindingError) Error() string {
	return fmt.Sprintf("fragment %q has an unbound placeholder: %v", e.Section, e.Err)
}

func (e *TemplateBindingError) Unwrap() error {
	return e.Err
}

// Generate renders a Dockerfile from the configuration: normalize, validate,
// resolve each enabled section's fragment, and compose them in canonical
// order. Pure function of its input; identical configs yield byte-identical
// output.
func Generate(cfg *config.Config) (string, error) {
	c := *cfg
	c.Normalize()

	if result := config.Validate(&c); !result.Valid() {
		return "", &ValidationError{Result: result}
	}

	frags, err := resolve(&c)
	if err != nil {
		return "", err
	}

	return compose(frags), nil
}

// resolve renders every enabled section in canonical order. Disabled and
// empty sections contribute nothing.
func resolve(cfg *config.Config) ([]string, error) {
	out := make([]string, 0, len(sections))
	for _, s := range sections {
		if !s.enabled(cfg) {
			continue
		}

		name := s.template
		if s.name == "python" {
			name = "pip"
			if cfg.Python.UseUv {
				name = "uv"
			}
		}

		var buf bytes.Buffer
		if err := fragments.ExecuteTemplate(&buf, name, s.data(cfg)); err != nil {
			return nil, &TemplateBindingError{Section: s.name, Err: err}
		}

		if frag := strings.Trim(buf.String(), "\n"); frag != "" {
			out = append(out, frag)
		}
	}
	return out, nil
}

// compose joins resolved fragments with exactly one blank line between
// adjacent sections. Fragments carry no blank lines of their own, so the
// output never has more than one blank line in a row no matter how many
// sections were skipped.
func compose(frags []string) string {
	if len(frags) == 0 {
		return ""
	}
	return strings.Join(frags, "\n\n") + "\n"
}

// WriteFile generates the Dockerfile and writes it to path, creating parent
// directories as needed. An existing file is only replaced when overwrite is
// set; otherwise the error wraps os.ErrExist.
func WriteFile(cfg *config.Config, path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file %s already exists: %w", path, os.ErrExist)
		}
	}

	content, err := Generate(cfg)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write Dockerfile: %w", err)
	}

	return nil
}
