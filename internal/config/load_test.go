package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
base_image:
  image: tensorflow
  tag: 24.01-tf2-py3
conda:
  enabled: false
custom_commands:
  - pip install horovod
  - pip install tensorboard
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.BaseImage.Ref() != "nvcr.io/nvidia/tensorflow:24.01-tf2-py3" {
		t.Errorf("base image = %q, registry default should apply", cfg.BaseImage.Ref())
	}
	if cfg.Conda.Enabled {
		t.Error("conda.enabled: false should survive loading")
	}
	if cfg.Conda.Version != DefaultCondaVer {
		t.Errorf("conda.version = %q, default should apply to omitted field", cfg.Conda.Version)
	}
	if cfg.SSH.Enabled {
		t.Error("omitted ssh section should stay disabled")
	}
	want := []string{"pip install horovod", "pip install tensorboard"}
	if !reflect.DeepEqual(cfg.CustomCommands, want) {
		t.Errorf("custom_commands = %v, want %v", cfg.CustomCommands, want)
	}
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "proxy": {
    "enabled": true,
    "clash_subscribe_link": "https://example.com/sub"
  },
  "working_dir": "/code"
}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.Proxy.Enabled {
		t.Error("proxy should be enabled")
	}
	if cfg.Proxy.ClashSecret != "123456" {
		t.Errorf("clash_secret = %q, default should apply", cfg.Proxy.ClashSecret)
	}
	if cfg.WorkingDir != "/code" {
		t.Errorf("working_dir = %q, want /code", cfg.WorkingDir)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
working_dir = "/opt/work"

[python]
use_uv = true

[github_cli]
enabled = true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.Python.UseUv {
		t.Error("python.use_uv should be true")
	}
	if !cfg.GithubCLI.Enabled {
		t.Error("github_cli.enabled = true should survive loading")
	}
	if cfg.WorkingDir != "/opt/work" {
		t.Errorf("working_dir = %q, want /opt/work", cfg.WorkingDir)
	}
}

func TestLoad_UnknownTopLevelKey(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
base_image:
  image: pytorch
dockerfile_version: v2
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("unknown top-level key should be a SchemaError")
	}

	var schemaErr *SchemaError
	if !asSchemaError(err, &schemaErr) {
		t.Fatalf("error should be a SchemaError, got %T: %v", err, err)
	}
}

func TestLoad_UnknownNestedKey(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
conda:
  enabled: true
  channel: conda-forge
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("unknown nested key should be a SchemaError")
	}
}

func TestLoad_UnknownKeyTOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[conda]
enabled = true
chanels = ["conda-forge"]
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("unknown TOML key should be a SchemaError")
	}
	if !strings.Contains(err.Error(), "chanels") {
		t.Errorf("error should name the unknown key, got: %v", err)
	}
}

func TestLoad_TypeMismatch(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
conda:
  enabled: "definitely"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("type mismatch should be a SchemaError")
	}
}

func TestLoad_EmptyFileYieldsDefaults(t *testing.T) {
	path := writeConfig(t, "config.yaml", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Error("empty config file should yield the default config")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("missing file should be an error")
	}
}

func TestEncodeDefaultRoundTrip(t *testing.T) {
	data, err := EncodeDefault()
	if err != nil {
		t.Fatalf("EncodeDefault failed: %v", err)
	}

	// The emitted document must survive our own strict decoding.
	cfg, err := Parse(data, "yaml")
	if err != nil {
		t.Fatalf("Parse of emitted defaults failed: %v", err)
	}

	def := Default()
	if cfg.BaseImage != def.BaseImage {
		t.Errorf("base image = %+v, want %+v", cfg.BaseImage, def.BaseImage)
	}
	if cfg.Conda.Enabled != def.Conda.Enabled || cfg.Conda.Version != def.Conda.Version {
		t.Errorf("conda = %+v, want %+v", cfg.Conda, def.Conda)
	}
	if cfg.WorkingDir != def.WorkingDir {
		t.Errorf("working_dir = %q, want %q", cfg.WorkingDir, def.WorkingDir)
	}
	if len(cfg.CustomCommands) != 0 {
		t.Errorf("custom_commands = %v, want empty", cfg.CustomCommands)
	}
}

// asSchemaError is a small local helper to avoid importing errors in tests.
func asSchemaError(err error, target **SchemaError) bool {
	for err != nil {
		if se, ok := err.(*SchemaError); ok {
			*target = se
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
