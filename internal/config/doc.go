// Package config provides the configuration model for Dockerfile generation.
//
// # Configuration Model
//
// Config is the root aggregate. Every nested section (metadata, base image,
// system, python, conda, ml framework, proxy, ssh, github cli) has a
// deterministic default, so downstream code only ever deals with "section
// disabled", never "section missing".
//
//	cfg := config.Default()
//	cfg.Proxy.Enabled = true
//	cfg.Proxy.ClashSubscribeLink = "https://example.com/sub"
//
// # Loading
//
// Load reads a config file in YAML, JSON, or TOML (chosen by extension) and
// overlays it on the defaults. Decoding is strict: unknown keys are a
// SchemaError rather than being silently ignored, so typos in hand-edited
// files surface immediately.
//
//	cfg, err := config.Load("docker-config.yaml")
//
// # Validation
//
// Validate collects every violation in one pass and returns them as data:
//
//	result := config.Validate(&cfg)
//	if !result.Valid() {
//	    for _, fe := range result.Errors {
//	        fmt.Println(fe)
//	    }
//	}
//
// Rules enforced:
//   - base_image.image and base_image.tag are non-empty
//   - proxy.clash_subscribe_link is a URL when the proxy is enabled
//   - python.version and ml_framework.cuda_version match major.minor[.patch]
//   - conda.channels contains no duplicates
//   - working_dir is an absolute path
//
// The package performs no I/O beyond reading the config file and never logs.
package config
