package config

import "fmt"

// Defaults for the generated Dockerfile. These mirror the canonical
// configuration emitted by "dockergen init".
const (
	DefaultRegistry   = "nvcr.io/nvidia"
	DefaultImage      = "pytorch"
	DefaultTag        = "24.02-py3"
	DefaultTimezone   = "Asia/Chongqing"
	DefaultLocale     = "C.UTF-8"
	DefaultAptMirror  = "https://mirrors.tuna.tsinghua.edu.cn/ubuntu/"
	DefaultPipMirror  = "https://pypi.tuna.tsinghua.edu.cn/simple"
	DefaultCondaVer   = "2024.06-1"
	DefaultCondaPath  = "/root/anaconda"
	DefaultClashRepo  = "https://github.com/Elegycloud/clash-for-linux-backup.git"
	DefaultWorkingDir = "/workspace"
)

// Metadata holds Dockerfile label metadata.
type Metadata struct {
	Version    string `yaml:"version" json:"version" toml:"version"`
	Maintainer string `yaml:"maintainer" json:"maintainer" toml:"maintainer"`
	Author     string `yaml:"author" json:"author" toml:"author"`
	Vendor     string `yaml:"vendor" json:"vendor" toml:"vendor"`
}

// BaseImage identifies the container image the generated Dockerfile builds on.
type BaseImage struct {
	Registry string `yaml:"registry" json:"registry" toml:"registry"`
	Image    string `yaml:"image" json:"image" toml:"image"`
	Tag      string `yaml:"tag" json:"tag" toml:"tag"`
}

// Ref returns the full image reference, e.g. "nvcr.io/nvidia/pytorch:24.02-py3".
func (b BaseImage) Ref() string {
	return fmt.Sprintf("%s/%s:%s", b.Registry, b.Image, b.Tag)
}

// System holds OS-level settings: timezone, locale, apt mirror, and the
// package list. SystemPackages keeps the caller's order; install order
// matters for readability and apt dependency quirks.
type System struct {
	UbuntuVersion  string   `yaml:"ubuntu_version" json:"ubuntu_version" toml:"ubuntu_version"`
	Timezone       string   `yaml:"timezone" json:"timezone" toml:"timezone"`
	Locale         string   `yaml:"locale" json:"locale" toml:"locale"`
	AptMirror      string   `yaml:"apt_mirror" json:"apt_mirror" toml:"apt_mirror"`
	SystemPackages []string `yaml:"system_packages" json:"system_packages" toml:"system_packages"`
}

// Python configures the Python package manager setup. When UseUv is true the
// generated Dockerfile installs and configures uv instead of pip; the two are
// mutually exclusive in the output.
type Python struct {
	Version    string `yaml:"version" json:"version" toml:"version"`
	PipVersion string `yaml:"pip_version" json:"pip_version" toml:"pip_version"`
	PipMirror  string `yaml:"pip_mirror" json:"pip_mirror" toml:"pip_mirror"`
	UseUv      bool   `yaml:"use_uv" json:"use_uv" toml:"use_uv"`
	UvVersion  string `yaml:"uv_version" json:"uv_version" toml:"uv_version"`
}

// Conda configures the Anaconda installation.
type Conda struct {
	Enabled     bool     `yaml:"enabled" json:"enabled" toml:"enabled"`
	Version     string   `yaml:"version" json:"version" toml:"version"`
	InstallPath string   `yaml:"install_path" json:"install_path" toml:"install_path"`
	Channels    []string `yaml:"channels" json:"channels" toml:"channels"`
}

// MLFramework pins ML framework versions. Empty fields mean "use whatever the
// base image provides".
type MLFramework struct {
	PytorchVersion     string   `yaml:"pytorch_version" json:"pytorch_version" toml:"pytorch_version"`
	TensorflowVersion  string   `yaml:"tensorflow_version" json:"tensorflow_version" toml:"tensorflow_version"`
	CudaVersion        string   `yaml:"cuda_version" json:"cuda_version" toml:"cuda_version"`
	CudnnVersion       string   `yaml:"cudnn_version" json:"cudnn_version" toml:"cudnn_version"`
	AdditionalPackages []string `yaml:"additional_packages" json:"additional_packages" toml:"additional_packages"`
}

// Proxy configures the Clash proxy client setup.
type Proxy struct {
	Enabled            bool   `yaml:"enabled" json:"enabled" toml:"enabled"`
	ClashSubscribeLink string `yaml:"clash_subscribe_link" json:"clash_subscribe_link" toml:"clash_subscribe_link"`
	ClashSecret        string `yaml:"clash_secret" json:"clash_secret" toml:"clash_secret"`
	ClashRepo          string `yaml:"clash_repo" json:"clash_repo" toml:"clash_repo"`
}

// SSH configures the SSH directory setup.
type SSH struct {
	Enabled      bool `yaml:"enabled" json:"enabled" toml:"enabled"`
	CreateSSHDir bool `yaml:"create_ssh_dir" json:"create_ssh_dir" toml:"create_ssh_dir"`
}

// GithubCLI configures GitHub CLI installation.
type GithubCLI struct {
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`
}

// Config is the root configuration for one Dockerfile generation.
type Config struct {
	Metadata       Metadata    `yaml:"metadata" json:"metadata" toml:"metadata"`
	BaseImage      BaseImage   `yaml:"base_image" json:"base_image" toml:"base_image"`
	System         System      `yaml:"system" json:"system" toml:"system"`
	Python         Python      `yaml:"python" json:"python" toml:"python"`
	Conda          Conda       `yaml:"conda" json:"conda" toml:"conda"`
	MLFramework    MLFramework `yaml:"ml_framework" json:"ml_framework" toml:"ml_framework"`
	Proxy          Proxy       `yaml:"proxy" json:"proxy" toml:"proxy"`
	SSH            SSH         `yaml:"ssh" json:"ssh" toml:"ssh"`
	GithubCLI      GithubCLI   `yaml:"github_cli" json:"github_cli" toml:"github_cli"`
	WorkingDir     string      `yaml:"working_dir" json:"working_dir" toml:"working_dir"`
	CustomCommands []string    `yaml:"custom_commands" json:"custom_commands" toml:"custom_commands"`
}

// DefaultSystemPackages returns the default apt package list.
func DefaultSystemPackages() []string {
	return []string{
		"git",
		"curl",
		"wget",
		"vim",
		"software-properties-common",
		"libgl1-mesa-glx",
		"libsm6",
		"libxrender1",
		"libxext-dev",
		"ffmpeg",
	}
}

// DefaultMetadata returns the default Metadata section.
func DefaultMetadata() Metadata {
	return Metadata{
		Version:    "v1.0",
		Maintainer: "Your Name",
		Author:     "Your Name",
	}
}

// DefaultBaseImage returns the default BaseImage section.
func DefaultBaseImage() BaseImage {
	return BaseImage{
		Registry: DefaultRegistry,
		Image:    DefaultImage,
		Tag:      DefaultTag,
	}
}

// DefaultSystem returns the default System section.
func DefaultSystem() System {
	return System{
		Timezone:       DefaultTimezone,
		Locale:         DefaultLocale,
		AptMirror:      DefaultAptMirror,
		SystemPackages: DefaultSystemPackages(),
	}
}

// DefaultPython returns the default Python section.
func DefaultPython() Python {
	return Python{
		PipVersion: "latest",
		PipMirror:  DefaultPipMirror,
		UvVersion:  "latest",
	}
}

// DefaultConda returns the default Conda section.
func DefaultConda() Conda {
	return Conda{
		Enabled:     true,
		Version:     DefaultCondaVer,
		InstallPath: DefaultCondaPath,
		Channels:    []string{"conda-forge"},
	}
}

// DefaultProxy returns the default Proxy section.
func DefaultProxy() Proxy {
	return Proxy{
		ClashSecret: "123456",
		ClashRepo:   DefaultClashRepo,
	}
}

// Default returns the canonical fully-populated configuration. This is the
// config "dockergen init" serializes and the baseline every loaded or
// programmatic config is filled from.
func Default() Config {
	return Config{
		Metadata:    DefaultMetadata(),
		BaseImage:   DefaultBaseImage(),
		System:      DefaultSystem(),
		Python:      DefaultPython(),
		Conda:       DefaultConda(),
		MLFramework: MLFramework{},
		Proxy:       DefaultProxy(),
		SSH:         SSH{CreateSSHDir: true},
		GithubCLI:   GithubCLI{},
		WorkingDir:  DefaultWorkingDir,
	}
}

// Normalize fills omitted sections and fields with their defaults so that
// downstream components never see a half-populated config. A section left as
// its zero value is treated as omitted and replaced wholesale; a partially
// filled section only has its empty defaulted fields filled. Normalize is
// idempotent.
//
// Boolean fields inside a non-zero section are left untouched: false is a
// meaningful value there. Programmatic callers that want the documented
// defaults for enable flags should start from Default().
func (c *Config) Normalize() {
	if c.Metadata == (Metadata{}) {
		c.Metadata = DefaultMetadata()
	} else {
		fillString(&c.Metadata.Version, "v1.0")
		fillString(&c.Metadata.Maintainer, "Your Name")
		fillString(&c.Metadata.Author, c.Metadata.Maintainer)
	}

	// Image and tag are deliberately not refilled here: an explicitly
	// emptied value in a partial section is a validation error, not an
	// omission.
	if c.BaseImage == (BaseImage{}) {
		c.BaseImage = DefaultBaseImage()
	} else {
		fillString(&c.BaseImage.Registry, DefaultRegistry)
	}

	if systemIsZero(c.System) {
		c.System = DefaultSystem()
	} else {
		fillString(&c.System.Timezone, DefaultTimezone)
		fillString(&c.System.Locale, DefaultLocale)
		if c.System.SystemPackages == nil {
			c.System.SystemPackages = DefaultSystemPackages()
		}
	}

	if c.Python == (Python{}) {
		c.Python = DefaultPython()
	} else {
		fillString(&c.Python.PipVersion, "latest")
		fillString(&c.Python.UvVersion, "latest")
	}

	if condaIsZero(c.Conda) {
		c.Conda = DefaultConda()
	} else {
		fillString(&c.Conda.Version, DefaultCondaVer)
		fillString(&c.Conda.InstallPath, DefaultCondaPath)
		if c.Conda.Channels == nil {
			c.Conda.Channels = []string{"conda-forge"}
		}
	}

	if c.Proxy == (Proxy{}) {
		c.Proxy = DefaultProxy()
	} else {
		fillString(&c.Proxy.ClashSecret, "123456")
		fillString(&c.Proxy.ClashRepo, DefaultClashRepo)
	}

	if c.SSH == (SSH{}) {
		c.SSH = SSH{CreateSSHDir: true}
	}

	fillString(&c.WorkingDir, DefaultWorkingDir)
}

func fillString(s *string, def string) {
	if *s == "" {
		*s = def
	}
}

func systemIsZero(s System) bool {
	return s.UbuntuVersion == "" && s.Timezone == "" && s.Locale == "" &&
		s.AptMirror == "" && s.SystemPackages == nil
}

func condaIsZero(c Conda) bool {
	return !c.Enabled && c.Version == "" && c.InstallPath == "" && c.Channels == nil
}
