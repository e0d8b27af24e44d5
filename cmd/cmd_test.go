package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/gpuforge/dockergen/internal/errors"
)

func executeCommand(args ...string) (string, string, error) {
	// Reset flag values before each test
	generateConfig = ""
	generateOutput = "Dockerfile"
	generateOverwrite = false
	generateInteractive = false
	initOutput = "docker-config.yaml"
	validateConfig = "docker-config.yaml"
	verbose = false
	jsonOutput = false

	// Reset cobra's internal help flag, which otherwise stays set after a
	// --help invocation and short-circuits later runs of the same command
	for _, c := range append([]*cobra.Command{rootCmd}, rootCmd.Commands()...) {
		if f := c.Flags().Lookup("help"); f != nil {
			_ = f.Value.Set("false")
			f.Changed = false
		}
	}

	cmd := rootCmd
	cmd.SetArgs(args)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	// Reset args for next test
	cmd.SetArgs(nil)
	cmd.SetOut(nil)
	cmd.SetErr(nil)

	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("Help command failed: %v", err)
	}

	if !strings.Contains(stdout, "dockergen") {
		t.Error("Help output should contain 'dockergen'")
	}

	if !strings.Contains(stdout, "generate") {
		t.Error("Help output should mention generate")
	}
}

func TestGlobalFlags(t *testing.T) {
	stdout, _, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("Help failed: %v", err)
	}

	if !strings.Contains(stdout, "--verbose") {
		t.Error("Should have --verbose flag")
	}

	if !strings.Contains(stdout, "--json") {
		t.Error("Should have --json flag")
	}
}

func TestGenerateCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("generate", "--help")
	if err != nil {
		t.Fatalf("Help command failed: %v", err)
	}

	for _, flag := range []string{"--config", "--output", "--overwrite", "--interactive"} {
		if !strings.Contains(stdout, flag) {
			t.Errorf("Generate help should mention %s flag", flag)
		}
	}
}

func TestGenerateCommand_Defaults(t *testing.T) {
	output := filepath.Join(t.TempDir(), "Dockerfile")

	_, _, err := executeCommand("generate", "-o", output)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read generated Dockerfile: %v", err)
	}

	content := string(data)
	if !strings.Contains(content, "FROM nvcr.io/nvidia/pytorch:24.02-py3") {
		t.Error("Default output should use the default base image")
	}
	if !strings.Contains(content, "WORKDIR /workspace") {
		t.Error("Default output should set the working directory")
	}
}

func TestGenerateCommand_ConfigFile(t *testing.T) {
	config := writeConfig(t, `
base_image:
  image: tensorflow
  tag: 24.01-tf2-py3
conda:
  enabled: false
`)
	output := filepath.Join(t.TempDir(), "Dockerfile")

	_, _, err := executeCommand("generate", "-c", config, "-o", output)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read generated Dockerfile: %v", err)
	}

	if !strings.Contains(string(data), "FROM nvcr.io/nvidia/tensorflow:24.01-tf2-py3") {
		t.Error("Output should use the configured base image")
	}
	if strings.Contains(string(data), "Anaconda3") {
		t.Error("Output should not install conda when disabled")
	}
}

func TestGenerateCommand_MissingConfigFile(t *testing.T) {
	_, _, err := executeCommand("generate", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Generate should fail for a missing config file")
	}

	if code := errors.GetExitCode(err); code != errors.ExitConfigError {
		t.Errorf("Exit code = %d, want %d", code, errors.ExitConfigError)
	}
}

func TestGenerateCommand_InvalidConfig(t *testing.T) {
	config := writeConfig(t, `
base_image:
  tag: ""
proxy:
  enabled: true
`)

	_, _, err := executeCommand("generate", "-c", config, "-o", filepath.Join(t.TempDir(), "Dockerfile"))
	if err == nil {
		t.Fatal("Generate should fail for an invalid config")
	}

	if code := errors.GetExitCode(err); code != errors.ExitInvalidInput {
		t.Errorf("Exit code = %d, want %d", code, errors.ExitInvalidInput)
	}
}

func TestGenerateCommand_ExistingOutput(t *testing.T) {
	output := filepath.Join(t.TempDir(), "Dockerfile")
	if err := os.WriteFile(output, []byte("FROM scratch\n"), 0644); err != nil {
		t.Fatalf("Failed to seed output: %v", err)
	}

	_, _, err := executeCommand("generate", "-o", output)
	if err == nil {
		t.Fatal("Generate should refuse to overwrite without --overwrite")
	}

	if code := errors.GetExitCode(err); code != errors.ExitOutputExists {
		t.Errorf("Exit code = %d, want %d", code, errors.ExitOutputExists)
	}

	data, _ := os.ReadFile(output)
	if string(data) != "FROM scratch\n" {
		t.Error("Existing output should be left untouched")
	}
}

func TestGenerateCommand_Overwrite(t *testing.T) {
	output := filepath.Join(t.TempDir(), "Dockerfile")
	if err := os.WriteFile(output, []byte("FROM scratch\n"), 0644); err != nil {
		t.Fatalf("Failed to seed output: %v", err)
	}

	_, _, err := executeCommand("generate", "-o", output, "--overwrite")
	if err != nil {
		t.Fatalf("Generate with --overwrite failed: %v", err)
	}

	data, _ := os.ReadFile(output)
	if !strings.Contains(string(data), "FROM nvcr.io/nvidia/pytorch") {
		t.Error("Output should be replaced when --overwrite is set")
	}
}

func TestInitCommand(t *testing.T) {
	output := filepath.Join(t.TempDir(), "docker-config.yaml")

	_, _, err := executeCommand("init", "-o", output)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}

	content := string(data)
	for _, key := range []string{"base_image", "python", "conda", "working_dir"} {
		if !strings.Contains(content, key) {
			t.Errorf("Starter config should contain %q", key)
		}
	}
}

func TestInitCommand_ExistingOutput(t *testing.T) {
	output := filepath.Join(t.TempDir(), "docker-config.yaml")
	if err := os.WriteFile(output, []byte("metadata: {}\n"), 0644); err != nil {
		t.Fatalf("Failed to seed config: %v", err)
	}

	_, _, err := executeCommand("init", "-o", output)
	if err == nil {
		t.Fatal("Init should refuse to overwrite an existing file")
	}

	if code := errors.GetExitCode(err); code != errors.ExitOutputExists {
		t.Errorf("Exit code = %d, want %d", code, errors.ExitOutputExists)
	}
}

func TestInitThenGenerate(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "docker-config.yaml")
	output := filepath.Join(dir, "Dockerfile")

	if _, _, err := executeCommand("init", "-o", config); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if _, _, err := executeCommand("generate", "-c", config, "-o", output); err != nil {
		t.Fatalf("Generate from starter config failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read Dockerfile: %v", err)
	}
	if !strings.Contains(string(data), "FROM nvcr.io/nvidia/pytorch:24.02-py3") {
		t.Error("Starter config should generate the default image")
	}
}

func TestValidateCommand_Valid(t *testing.T) {
	config := writeConfig(t, `
base_image:
  image: pytorch
  tag: 24.02-py3
`)

	_, _, err := executeCommand("validate", "-c", config)
	if err != nil {
		t.Fatalf("Validate failed for a valid config: %v", err)
	}
}

func TestValidateCommand_PositionalArg(t *testing.T) {
	config := writeConfig(t, `
base_image:
  image: pytorch
  tag: 24.02-py3
`)

	_, _, err := executeCommand("validate", config)
	if err != nil {
		t.Fatalf("Validate with positional path failed: %v", err)
	}
}

func TestValidateCommand_Invalid(t *testing.T) {
	config := writeConfig(t, `
base_image:
  tag: ""
proxy:
  enabled: true
`)

	_, _, err := executeCommand("validate", "-c", config)
	if err == nil {
		t.Fatal("Validate should fail for an invalid config")
	}

	if code := errors.GetExitCode(err); code != errors.ExitInvalidInput {
		t.Errorf("Exit code = %d, want %d", code, errors.ExitInvalidInput)
	}
}

func TestValidateCommand_UnknownKey(t *testing.T) {
	config := writeConfig(t, `
base_image:
  image: pytorch
  registy: nvcr.io/nvidia
`)

	_, _, err := executeCommand("validate", "-c", config)
	if err == nil {
		t.Fatal("Validate should fail for an unknown config key")
	}

	if code := errors.GetExitCode(err); code != errors.ExitConfigError {
		t.Errorf("Exit code = %d, want %d", code, errors.ExitConfigError)
	}
}

func TestValidateCommand_MissingFile(t *testing.T) {
	_, _, err := executeCommand("validate", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Validate should fail for a missing file")
	}

	if code := errors.GetExitCode(err); code != errors.ExitConfigError {
		t.Errorf("Exit code = %d, want %d", code, errors.ExitConfigError)
	}
}
