// Package generator renders Dockerfiles from validated configurations.
//
// Generation is a pure pipeline over the config: normalize, validate,
// resolve the enabled sections to text fragments, compose in canonical
// order. Identical input yields byte-identical output.
//
//	content, err := generator.Generate(&cfg)
//
// # Sections
//
// Each configuration section maps to at most one Dockerfile fragment. The
// canonical order is fixed at compile time:
//
//	header → FROM → system → python → conda → ml framework → proxy →
//	ssh → github cli → workdir → custom commands → labels
//
// Structural sections always render. Feature-flagged sections (conda, proxy,
// ssh, github cli) render only when enabled; custom commands only when
// non-empty. The python section renders either the pip fragment or the uv
// fragment, never both.
//
// # Composition
//
// The composer joins fragments with exactly one blank line. Fragments never
// emit their own blank lines, so skipping any number of sections collapses to
// a single separator.
//
// # Errors
//
// An invalid config returns *ValidationError carrying the full FieldError
// list. *TemplateBindingError indicates an unbound template placeholder,
// which is a bug in this package rather than a user input problem.
//
// WriteFile is the only function here that touches the filesystem; Generate
// itself performs no I/O and never logs.
package generator
