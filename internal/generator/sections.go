package generator

import (
	"github.com/gpuforge/dockergen/internal/config"
)

// section pairs an inclusion condition with the data its fragment needs.
// The canonical section order is this slice's order; it is fixed at compile
// time and never depends on the input.
type section struct {
	name     string
	template string
	enabled  func(*config.Config) bool
	data     func(*config.Config) map[string]any
}

func always(*config.Config) bool { return true }

// pin returns v unless it is empty or the "latest" sentinel, in which case
// the fragment installs the newest available version.
func pin(v string) string {
	if v == "latest" {
		return ""
	}
	return v
}

var sections = []section{
	{
		name:     "header",
		template: "header",
		enabled:  always,
		data: func(c *config.Config) map[string]any {
			return map[string]any{"version": c.Metadata.Version}
		},
	},
	{
		name:     "base image",
		template: "from",
		enabled:  always,
		data: func(c *config.Config) map[string]any {
			return map[string]any{"ref": c.BaseImage.Ref()}
		},
	},
	{
		name:     "system",
		template: "system",
		enabled:  always,
		data: func(c *config.Config) map[string]any {
			return map[string]any{
				"ubuntuVersion": c.System.UbuntuVersion,
				"timezone":      c.System.Timezone,
				"locale":        c.System.Locale,
				"aptMirror":     c.System.AptMirror,
				"packageLines":  packageLines(c.System.SystemPackages),
			}
		},
	},
	{
		// The pip and uv fragments are mutually exclusive by construction:
		// one section, one template choice (see resolve).
		name:     "python",
		template: "",
		enabled:  always,
		data: func(c *config.Config) map[string]any {
			return map[string]any{
				"pythonVersion": c.Python.Version,
				"pipMirror":     c.Python.PipMirror,
				"pipVersion":    pin(c.Python.PipVersion),
				"uvVersion":     pin(c.Python.UvVersion),
			}
		},
	},
	{
		name:     "conda",
		template: "conda",
		enabled:  func(c *config.Config) bool { return c.Conda.Enabled },
		data: func(c *config.Config) map[string]any {
			return map[string]any{
				"version":     c.Conda.Version,
				"installPath": c.Conda.InstallPath,
				"channels":    c.Conda.Channels,
			}
		},
	},
	{
		name:     "ml framework",
		template: "mlframework",
		enabled: func(c *config.Config) bool {
			f := c.MLFramework
			return f.PytorchVersion != "" || f.TensorflowVersion != "" ||
				f.CudaVersion != "" || f.CudnnVersion != "" || len(f.AdditionalPackages) > 0
		},
		data: func(c *config.Config) map[string]any {
			return map[string]any{
				"pytorchVersion":     c.MLFramework.PytorchVersion,
				"tensorflowVersion":  c.MLFramework.TensorflowVersion,
				"cudaVersion":        c.MLFramework.CudaVersion,
				"cudnnVersion":       c.MLFramework.CudnnVersion,
				"additionalPackages": c.MLFramework.AdditionalPackages,
			}
		},
	},
	{
		name:     "proxy",
		template: "proxy",
		enabled:  func(c *config.Config) bool { return c.Proxy.Enabled },
		data: func(c *config.Config) map[string]any {
			return map[string]any{
				"clashRepo":     c.Proxy.ClashRepo,
				"subscribeLink": c.Proxy.ClashSubscribeLink,
				"secret":        c.Proxy.ClashSecret,
			}
		},
	},
	{
		name:     "ssh",
		template: "ssh",
		enabled:  func(c *config.Config) bool { return c.SSH.Enabled },
		data: func(c *config.Config) map[string]any {
			return map[string]any{"createSSHDir": c.SSH.CreateSSHDir}
		},
	},
	{
		name:     "github cli",
		template: "githubcli",
		enabled:  func(c *config.Config) bool { return c.GithubCLI.Enabled },
		data: func(c *config.Config) map[string]any {
			return map[string]any{}
		},
	},
	{
		name:     "workdir",
		template: "workdir",
		enabled:  always,
		data: func(c *config.Config) map[string]any {
			return map[string]any{"workingDir": c.WorkingDir}
		},
	},
	{
		name:     "custom commands",
		template: "custom",
		enabled:  func(c *config.Config) bool { return len(c.CustomCommands) > 0 },
		data: func(c *config.Config) map[string]any {
			return map[string]any{"commands": c.CustomCommands}
		},
	},
	{
		name:     "labels",
		template: "labels",
		enabled:  always,
		data: func(c *config.Config) map[string]any {
			return map[string]any{
				"maintainer": c.Metadata.Maintainer,
				"author":     c.Metadata.Author,
				"version":    c.Metadata.Version,
				"vendor":     c.Metadata.Vendor,
			}
		},
	},
}
