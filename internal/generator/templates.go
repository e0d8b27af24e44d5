package generator

import (
	"strings"
	"text/template"
)

// shellQuote wraps a string in double quotes with proper escaping for bash.
func shellQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "`", "\\`")
	s = strings.ReplaceAll(s, "$", `\$`)
	return `"` + s + `"`
}

// fragmentText holds every Dockerfile fragment as a named template. Each
// fragment renders one configuration section; the composer owns all
// inter-section spacing, so fragments never emit leading or trailing blank
// lines (rendered output is trimmed either way).
const fragmentText = `
{{- define "header" -}}
# syntax=docker/dockerfile:1
# GPU server image {{.version}}
# Generated by dockergen; edit the config file, not this Dockerfile.
{{- end}}

{{- define "from" -}}
FROM {{.ref}}
{{- end}}

{{- define "system" -}}
{{- if .ubuntuVersion}}
# Base image Ubuntu {{.ubuntuVersion}}
{{- end}}
ENV DEBIAN_FRONTEND=noninteractive
ENV TZ={{.timezone}}
ENV LANG={{.locale}} LC_ALL={{.locale}}
{{- if .aptMirror}}
RUN sed -i "s|http://archive.ubuntu.com/ubuntu/|{{.aptMirror}}|g" /etc/apt/sources.list
{{- end}}
{{- if .packageLines}}
RUN apt update && apt install -y --no-install-recommends \
{{.packageLines}} \
 && rm -rf /var/lib/apt/lists/*
{{- else}}
RUN apt update && rm -rf /var/lib/apt/lists/*
{{- end}}
RUN ln -snf /usr/share/zoneinfo/$TZ /etc/localtime && echo $TZ > /etc/timezone
{{- end}}

{{- define "pip" -}}
{{- if .pythonVersion}}
RUN apt update && apt install -y --no-install-recommends python{{.pythonVersion}} python{{.pythonVersion}}-venv \
 && rm -rf /var/lib/apt/lists/*
{{- end}}
{{- if .pipMirror}}
RUN pip config set global.index-url {{.pipMirror}}
{{- end}}
{{- if .pipVersion}}
RUN pip install --no-cache-dir pip=={{.pipVersion}}
{{- else}}
RUN pip install --no-cache-dir --upgrade pip
{{- end}}
{{- end}}

{{- define "uv" -}}
{{- if .pythonVersion}}
RUN apt update && apt install -y --no-install-recommends python{{.pythonVersion}} python{{.pythonVersion}}-venv \
 && rm -rf /var/lib/apt/lists/*
{{- end}}
{{- if .uvVersion}}
RUN pip install --no-cache-dir uv=={{.uvVersion}}
{{- else}}
RUN pip install --no-cache-dir uv
{{- end}}
{{- if .pipMirror}}
ENV UV_DEFAULT_INDEX={{.pipMirror}}
{{- end}}
{{- end}}

{{- define "conda" -}}
RUN wget -q https://repo.anaconda.com/archive/Anaconda3-{{.version}}-Linux-x86_64.sh -O /tmp/anaconda.sh \
 && bash /tmp/anaconda.sh -b -p {{.installPath}} \
 && rm /tmp/anaconda.sh
ENV PATH={{.installPath}}/bin:$PATH
{{- range .channels}}
RUN conda config --add channels {{.}}
{{- end}}
{{- end}}

{{- define "mlframework" -}}
{{- if .cudaVersion}}
# Expects CUDA {{.cudaVersion}} from the base image
{{- end}}
{{- if .cudnnVersion}}
# Expects cuDNN {{.cudnnVersion}} from the base image
{{- end}}
{{- if .pytorchVersion}}
RUN pip install --no-cache-dir torch=={{.pytorchVersion}}
{{- end}}
{{- if .tensorflowVersion}}
RUN pip install --no-cache-dir tensorflow=={{.tensorflowVersion}}
{{- end}}
{{- if .additionalPackages}}
RUN pip install --no-cache-dir {{join .additionalPackages " "}}
{{- end}}
{{- end}}

{{- define "proxy" -}}
RUN git clone {{.clashRepo}} /root/clash-for-linux \
 && printf 'export CLASH_URL=%s\n' {{.subscribeLink | shellQuote}} > /root/clash-for-linux/.env \
 && printf 'export CLASH_SECRET=%s\n' {{.secret | shellQuote}} >> /root/clash-for-linux/.env
{{- end}}

{{- define "ssh" -}}
RUN apt update && apt install -y --no-install-recommends openssh-client \
 && rm -rf /var/lib/apt/lists/*
{{- if .createSSHDir}}
RUN mkdir -p /root/.ssh && chmod 700 /root/.ssh
{{- end}}
{{- end}}

{{- define "githubcli" -}}
RUN curl -fsSL https://cli.github.com/packages/githubcli-archive-keyring.gpg -o /usr/share/keyrings/githubcli-archive-keyring.gpg \
 && echo "deb [arch=$(dpkg --print-architecture) signed-by=/usr/share/keyrings/githubcli-archive-keyring.gpg] https://cli.github.com/packages stable main" > /etc/apt/sources.list.d/github-cli.list \
 && apt update && apt install -y --no-install-recommends gh \
 && rm -rf /var/lib/apt/lists/*
{{- end}}

{{- define "workdir" -}}
WORKDIR {{.workingDir}}
{{- end}}

{{- define "custom" -}}
{{- range .commands}}
RUN {{.}}
{{- end}}
{{- end}}

{{- define "labels" -}}
MAINTAINER {{.maintainer}}
LABEL maintainer={{.maintainer | printf "%q"}}
LABEL version={{.version | printf "%q"}} author={{.author | printf "%q"}}
{{- if .vendor}}
LABEL vendor={{.vendor | printf "%q"}}
{{- end}}
{{- end}}
`

// fragments is the parsed template set, initialized at package load time.
// missingkey=error enforces the binding contract: a fragment referencing a
// value the resolver did not supply fails instead of rendering "<no value>".
var fragments *template.Template

func init() {
	funcs := template.FuncMap{
		"shellQuote": shellQuote,
		"join":       strings.Join,
	}
	fragments = template.Must(
		template.New("fragments").Funcs(funcs).Option("missingkey=error").Parse(fragmentText))
}

// packageLines formats an apt package list as continuation lines for a RUN
// instruction, preserving the caller's order.
func packageLines(packages []string) string {
	if len(packages) == 0 {
		return ""
	}
	var b strings.Builder
	for i, pkg := range packages {
		b.WriteString("    ")
		b.WriteString(pkg)
		if i < len(packages)-1 {
			b.WriteString(" \\\n")
		}
	}
	return b.String()
}
