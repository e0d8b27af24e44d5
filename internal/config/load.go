package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// SchemaError indicates that input could not be decoded into the expected
// configuration shape: malformed syntax, a type mismatch, or an unknown key.
// It is distinct from validation errors, which concern semantically invalid
// values in a well-shaped config.
type SchemaError struct {
	Format string
	Err    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid %s configuration: %v", e.Format, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// rawConfig mirrors Config with pointer fields so that an omitted key can be
// told apart from an explicit zero value. Decoding is strict: unknown keys
// are a SchemaError.
type rawConfig struct {
	Metadata       *rawMetadata    `yaml:"metadata" json:"metadata" toml:"metadata"`
	BaseImage      *rawBaseImage   `yaml:"base_image" json:"base_image" toml:"base_image"`
	System         *rawSystem      `yaml:"system" json:"system" toml:"system"`
	Python         *rawPython      `yaml:"python" json:"python" toml:"python"`
	Conda          *rawConda       `yaml:"conda" json:"conda" toml:"conda"`
	MLFramework    *rawMLFramework `yaml:"ml_framework" json:"ml_framework" toml:"ml_framework"`
	Proxy          *rawProxy       `yaml:"proxy" json:"proxy" toml:"proxy"`
	SSH            *rawSSH         `yaml:"ssh" json:"ssh" toml:"ssh"`
	GithubCLI      *rawGithubCLI   `yaml:"github_cli" json:"github_cli" toml:"github_cli"`
	WorkingDir     *string         `yaml:"working_dir" json:"working_dir" toml:"working_dir"`
	CustomCommands []string        `yaml:"custom_commands" json:"custom_commands" toml:"custom_commands"`
}

type rawMetadata struct {
	Version    *string `yaml:"version" json:"version" toml:"version"`
	Maintainer *string `yaml:"maintainer" json:"maintainer" toml:"maintainer"`
	Author     *string `yaml:"author" json:"author" toml:"author"`
	Vendor     *string `yaml:"vendor" json:"vendor" toml:"vendor"`
}

type rawBaseImage struct {
	Registry *string `yaml:"registry" json:"registry" toml:"registry"`
	Image    *string `yaml:"image" json:"image" toml:"image"`
	Tag      *string `yaml:"tag" json:"tag" toml:"tag"`
}

type rawSystem struct {
	UbuntuVersion  *string  `yaml:"ubuntu_version" json:"ubuntu_version" toml:"ubuntu_version"`
	Timezone       *string  `yaml:"timezone" json:"timezone" toml:"timezone"`
	Locale         *string  `yaml:"locale" json:"locale" toml:"locale"`
	AptMirror      *string  `yaml:"apt_mirror" json:"apt_mirror" toml:"apt_mirror"`
	SystemPackages []string `yaml:"system_packages" json:"system_packages" toml:"system_packages"`
}

type rawPython struct {
	Version    *string `yaml:"version" json:"version" toml:"version"`
	PipVersion *string `yaml:"pip_version" json:"pip_version" toml:"pip_version"`
	PipMirror  *string `yaml:"pip_mirror" json:"pip_mirror" toml:"pip_mirror"`
	UseUv      *bool   `yaml:"use_uv" json:"use_uv" toml:"use_uv"`
	UvVersion  *string `yaml:"uv_version" json:"uv_version" toml:"uv_version"`
}

type rawConda struct {
	Enabled     *bool    `yaml:"enabled" json:"enabled" toml:"enabled"`
	Version     *string  `yaml:"version" json:"version" toml:"version"`
	InstallPath *string  `yaml:"install_path" json:"install_path" toml:"install_path"`
	Channels    []string `yaml:"channels" json:"channels" toml:"channels"`
}

type rawMLFramework struct {
	PytorchVersion     *string  `yaml:"pytorch_version" json:"pytorch_version" toml:"pytorch_version"`
	TensorflowVersion  *string  `yaml:"tensorflow_version" json:"tensorflow_version" toml:"tensorflow_version"`
	CudaVersion        *string  `yaml:"cuda_version" json:"cuda_version" toml:"cuda_version"`
	CudnnVersion       *string  `yaml:"cudnn_version" json:"cudnn_version" toml:"cudnn_version"`
	AdditionalPackages []string `yaml:"additional_packages" json:"additional_packages" toml:"additional_packages"`
}

type rawProxy struct {
	Enabled            *bool   `yaml:"enabled" json:"enabled" toml:"enabled"`
	ClashSubscribeLink *string `yaml:"clash_subscribe_link" json:"clash_subscribe_link" toml:"clash_subscribe_link"`
	ClashSecret        *string `yaml:"clash_secret" json:"clash_secret" toml:"clash_secret"`
	ClashRepo          *string `yaml:"clash_repo" json:"clash_repo" toml:"clash_repo"`
}

type rawSSH struct {
	Enabled      *bool `yaml:"enabled" json:"enabled" toml:"enabled"`
	CreateSSHDir *bool `yaml:"create_ssh_dir" json:"create_ssh_dir" toml:"create_ssh_dir"`
}

type rawGithubCLI struct {
	Enabled *bool `yaml:"enabled" json:"enabled" toml:"enabled"`
}

// Load reads a configuration file and returns a fully-populated Config.
// The format is chosen by extension: .yaml/.yml, .json, or .toml.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return Parse(data, "yaml")
	case ".json":
		return Parse(data, "json")
	case ".toml":
		return Parse(data, "toml")
	default:
		// Historical default; config files shipped before the format switch
		// had no recognized extension.
		return Parse(data, "yaml")
	}
}

// Parse decodes raw configuration bytes in the given format ("yaml", "json",
// or "toml") and overlays them on the defaults. Unknown keys and type
// mismatches return a SchemaError.
func Parse(data []byte, format string) (Config, error) {
	var raw rawConfig

	switch format {
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && err != io.EOF {
			return Config{}, &SchemaError{Format: "yaml", Err: err}
		}
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil && err != io.EOF {
			return Config{}, &SchemaError{Format: "json", Err: err}
		}
	case "toml":
		md, err := toml.Decode(string(data), &raw)
		if err != nil {
			return Config{}, &SchemaError{Format: "toml", Err: err}
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, &SchemaError{
				Format: "toml",
				Err:    fmt.Errorf("unknown keys: %s", strings.Join(keys, ", ")),
			}
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format: %s", format)
	}

	return raw.apply(), nil
}

// apply overlays the raw values on the default configuration. Omitted keys
// keep their defaults; explicitly provided values win, including explicit
// zero values like enabled: false or apt_mirror: "".
func (r *rawConfig) apply() Config {
	cfg := Default()

	if r.Metadata != nil {
		setString(&cfg.Metadata.Version, r.Metadata.Version)
		setString(&cfg.Metadata.Maintainer, r.Metadata.Maintainer)
		setString(&cfg.Metadata.Author, r.Metadata.Author)
		setString(&cfg.Metadata.Vendor, r.Metadata.Vendor)
	}

	if r.BaseImage != nil {
		setString(&cfg.BaseImage.Registry, r.BaseImage.Registry)
		setString(&cfg.BaseImage.Image, r.BaseImage.Image)
		setString(&cfg.BaseImage.Tag, r.BaseImage.Tag)
	}

	if r.System != nil {
		setString(&cfg.System.UbuntuVersion, r.System.UbuntuVersion)
		setString(&cfg.System.Timezone, r.System.Timezone)
		setString(&cfg.System.Locale, r.System.Locale)
		setString(&cfg.System.AptMirror, r.System.AptMirror)
		if r.System.SystemPackages != nil {
			cfg.System.SystemPackages = r.System.SystemPackages
		}
	}

	if r.Python != nil {
		setString(&cfg.Python.Version, r.Python.Version)
		setString(&cfg.Python.PipVersion, r.Python.PipVersion)
		setString(&cfg.Python.PipMirror, r.Python.PipMirror)
		setBool(&cfg.Python.UseUv, r.Python.UseUv)
		setString(&cfg.Python.UvVersion, r.Python.UvVersion)
	}

	if r.Conda != nil {
		setBool(&cfg.Conda.Enabled, r.Conda.Enabled)
		setString(&cfg.Conda.Version, r.Conda.Version)
		setString(&cfg.Conda.InstallPath, r.Conda.InstallPath)
		if r.Conda.Channels != nil {
			cfg.Conda.Channels = r.Conda.Channels
		}
	}

	if r.MLFramework != nil {
		setString(&cfg.MLFramework.PytorchVersion, r.MLFramework.PytorchVersion)
		setString(&cfg.MLFramework.TensorflowVersion, r.MLFramework.TensorflowVersion)
		setString(&cfg.MLFramework.CudaVersion, r.MLFramework.CudaVersion)
		setString(&cfg.MLFramework.CudnnVersion, r.MLFramework.CudnnVersion)
		if r.MLFramework.AdditionalPackages != nil {
			cfg.MLFramework.AdditionalPackages = r.MLFramework.AdditionalPackages
		}
	}

	if r.Proxy != nil {
		setBool(&cfg.Proxy.Enabled, r.Proxy.Enabled)
		setString(&cfg.Proxy.ClashSubscribeLink, r.Proxy.ClashSubscribeLink)
		setString(&cfg.Proxy.ClashSecret, r.Proxy.ClashSecret)
		setString(&cfg.Proxy.ClashRepo, r.Proxy.ClashRepo)
	}

	if r.SSH != nil {
		setBool(&cfg.SSH.Enabled, r.SSH.Enabled)
		setBool(&cfg.SSH.CreateSSHDir, r.SSH.CreateSSHDir)
	}

	if r.GithubCLI != nil {
		setBool(&cfg.GithubCLI.Enabled, r.GithubCLI.Enabled)
	}

	if r.WorkingDir != nil {
		cfg.WorkingDir = *r.WorkingDir
	}
	if r.CustomCommands != nil {
		cfg.CustomCommands = r.CustomCommands
	}

	return cfg
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// EncodeDefault serializes the canonical default configuration as YAML.
// Used by "dockergen init" to seed a config file for editing.
func EncodeDefault() ([]byte, error) {
	cfg := Default()
	return yaml.Marshal(&cfg)
}
