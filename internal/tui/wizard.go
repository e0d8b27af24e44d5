package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	shellquote "github.com/kballard/go-shellquote"

	"github.com/gpuforge/dockergen/internal/config"
)

// fieldKind distinguishes free-text fields from boolean toggles.
type fieldKind int

const (
	fieldText fieldKind = iota
	fieldToggle
)

// field is one entry on a wizard step: either a text input or a toggle.
type field struct {
	key   string
	label string
	desc  string
	kind  fieldKind
	input textinput.Model
	on    bool
}

// step groups the fields prompted together, mirroring the config sections.
type step struct {
	title  string
	fields []field
}

// wizardStyles
var (
	wizardTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				MarginBottom(1)

	wizardStepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	wizardActiveStepStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	wizardLabelStyle = lipgloss.NewStyle().
				Bold(true).
				MarginBottom(1)

	wizardValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39"))

	wizardDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	wizardErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)
)

func textField(key, label, desc, value, placeholder string) field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.CharLimit = 256
	ti.Width = 50
	return field{key: key, label: label, desc: desc, kind: fieldText, input: ti}
}

func toggleField(key, label, desc string, on bool) field {
	return field{key: key, label: label, desc: desc, kind: fieldToggle, on: on}
}

// wizard drives the multi-step configuration flow. Steps follow the config
// sections; the last step shows a summary and validates before finishing.
type wizard struct {
	steps     []step
	stepIdx   int
	cursor    int
	confirm   bool
	cancelled bool
	done      bool
	errs      []config.FieldError

	width  int
	height int
}

func newWizard() wizard {
	def := config.Default()

	steps := []step{
		{title: "Metadata", fields: []field{
			textField("version", "Dockerfile version", "Version label for the generated image", def.Metadata.Version, "v1.0"),
			textField("maintainer", "Maintainer", "Maintainer name for the MAINTAINER line", def.Metadata.Maintainer, "Your Name"),
			textField("author", "Author", "Author label (empty to reuse maintainer)", "", def.Metadata.Maintainer),
			textField("vendor", "Vendor", "Vendor label (optional)", "", ""),
		}},
		{title: "Base image", fields: []field{
			textField("registry", "Container registry", "Registry hosting the base image", def.BaseImage.Registry, config.DefaultRegistry),
			textField("image", "Image name", "Base image name, e.g. pytorch or tensorflow", def.BaseImage.Image, config.DefaultImage),
			textField("tag", "Image tag", "Base image tag", def.BaseImage.Tag, config.DefaultTag),
		}},
		{title: "System", fields: []field{
			textField("timezone", "Timezone", "Timezone configured inside the image", def.System.Timezone, config.DefaultTimezone),
		}},
		{title: "Python", fields: []field{
			toggleField("use_uv", "Use uv", "Install uv instead of pip for package management", false),
		}},
		{title: "Conda", fields: []field{
			toggleField("conda_enabled", "Install Anaconda", "Install Anaconda into the image", true),
			textField("conda_version", "Anaconda version", "Anaconda release to install", def.Conda.Version, config.DefaultCondaVer),
		}},
		{title: "ML framework", fields: []field{
			textField("pytorch", "PyTorch version", "Leave empty to use the base image's PyTorch", "", "2.2.0"),
			textField("tensorflow", "TensorFlow version", "Leave empty to use the base image's TensorFlow", "", "2.15.0"),
			textField("extra_packages", "Additional packages", "Extra pip packages, space separated", "", "transformers datasets"),
		}},
		{title: "Proxy", fields: []field{
			toggleField("proxy_enabled", "Enable proxy (Clash)", "Set up the Clash proxy client in the image", false),
			textField("clash_link", "Clash subscription link", "Required when the proxy is enabled", "", "https://..."),
		}},
		{title: "Extras", fields: []field{
			toggleField("ssh_enabled", "Setup SSH", "Install the SSH client and create /root/.ssh", false),
			toggleField("gh_enabled", "Install GitHub CLI", "Install gh from the official apt repository", false),
		}},
	}

	w := wizard{steps: steps}
	w.focusCursor()
	return w
}

func (w *wizard) Init() tea.Cmd {
	return textinput.Blink
}

func (w *wizard) currentField() *field {
	return &w.steps[w.stepIdx].fields[w.cursor]
}

func (w *wizard) blurAll() {
	for i := range w.steps[w.stepIdx].fields {
		w.steps[w.stepIdx].fields[i].input.Blur()
	}
}

func (w *wizard) focusCursor() tea.Cmd {
	w.blurAll()
	f := w.currentField()
	if f.kind == fieldText {
		f.input.Focus()
		return textinput.Blink
	}
	return nil
}

func (w *wizard) moveCursor(delta int) tea.Cmd {
	n := len(w.steps[w.stepIdx].fields)
	w.cursor = (w.cursor + delta + n) % n
	return w.focusCursor()
}

func (w *wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		w.width = size.Width
		w.height = size.Height
		return w, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return w, w.updateFocusedInput(msg)
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC:
		w.cancelled = true
		return w, tea.Quit
	case tea.KeyEsc:
		return w, w.handleBack()
	}

	if w.confirm {
		return w, w.updateConfirm(keyMsg)
	}

	switch keyMsg.Type {
	case tea.KeyEnter:
		return w, w.advance()
	case tea.KeyUp, tea.KeyShiftTab:
		return w, w.moveCursor(-1)
	case tea.KeyDown, tea.KeyTab:
		return w, w.moveCursor(1)
	}

	f := w.currentField()
	if f.kind == fieldToggle {
		switch keyMsg.String() {
		case " ":
			f.on = !f.on
			return w, nil
		case "j":
			return w, w.moveCursor(1)
		case "k":
			return w, w.moveCursor(-1)
		}
		return w, nil
	}

	return w, w.updateFocusedInput(msg)
}

func (w *wizard) updateFocusedInput(msg tea.Msg) tea.Cmd {
	if w.confirm {
		return nil
	}
	f := w.currentField()
	if f.kind != fieldText {
		return nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

func (w *wizard) handleBack() tea.Cmd {
	if w.confirm {
		w.confirm = false
		w.errs = nil
		return w.focusCursor()
	}
	if w.stepIdx == 0 {
		// Esc at the first step cancels the wizard.
		w.cancelled = true
		return tea.Quit
	}
	w.stepIdx--
	w.cursor = 0
	return w.focusCursor()
}

func (w *wizard) advance() tea.Cmd {
	if w.stepIdx == len(w.steps)-1 {
		w.confirm = true
		w.blurAll()
		return nil
	}
	w.stepIdx++
	w.cursor = 0
	return w.focusCursor()
}

func (w *wizard) updateConfirm(keyMsg tea.KeyMsg) tea.Cmd {
	switch keyMsg.String() {
	case "enter", "y":
		cfg := w.buildConfig()
		if result := config.Validate(&cfg); !result.Valid() {
			w.errs = result.Errors
			return nil
		}
		w.done = true
		return tea.Quit
	case "n":
		// Restart from the first step with current values kept.
		w.confirm = false
		w.errs = nil
		w.stepIdx = 0
		w.cursor = 0
		return w.focusCursor()
	}
	return nil
}

// value returns the trimmed text of the field with the given key.
func (w *wizard) value(key string) string {
	for si := range w.steps {
		for fi := range w.steps[si].fields {
			f := &w.steps[si].fields[fi]
			if f.key == key {
				return strings.TrimSpace(f.input.Value())
			}
		}
	}
	return ""
}

// toggled returns the state of the toggle with the given key.
func (w *wizard) toggled(key string) bool {
	for si := range w.steps {
		for fi := range w.steps[si].fields {
			f := &w.steps[si].fields[fi]
			if f.key == key {
				return f.on
			}
		}
	}
	return false
}

// buildConfig assembles a Config from the collected answers, starting from
// the defaults so unprompted settings keep their documented values.
func (w *wizard) buildConfig() config.Config {
	cfg := config.Default()

	if v := w.value("version"); v != "" {
		cfg.Metadata.Version = v
	}
	if v := w.value("maintainer"); v != "" {
		cfg.Metadata.Maintainer = v
	}
	if v := w.value("author"); v != "" {
		cfg.Metadata.Author = v
	} else {
		cfg.Metadata.Author = cfg.Metadata.Maintainer
	}
	cfg.Metadata.Vendor = w.value("vendor")

	if v := w.value("registry"); v != "" {
		cfg.BaseImage.Registry = v
	}
	if v := w.value("image"); v != "" {
		cfg.BaseImage.Image = v
	}
	if v := w.value("tag"); v != "" {
		cfg.BaseImage.Tag = v
	}

	if v := w.value("timezone"); v != "" {
		cfg.System.Timezone = v
	}

	cfg.Python.UseUv = w.toggled("use_uv")

	cfg.Conda.Enabled = w.toggled("conda_enabled")
	if v := w.value("conda_version"); v != "" {
		cfg.Conda.Version = v
	}

	cfg.MLFramework.PytorchVersion = w.value("pytorch")
	cfg.MLFramework.TensorflowVersion = w.value("tensorflow")
	cfg.MLFramework.AdditionalPackages = splitPackages(w.value("extra_packages"))

	cfg.Proxy.Enabled = w.toggled("proxy_enabled")
	cfg.Proxy.ClashSubscribeLink = w.value("clash_link")

	cfg.SSH.Enabled = w.toggled("ssh_enabled")
	cfg.GithubCLI.Enabled = w.toggled("gh_enabled")

	return cfg
}

// splitPackages splits a package list the way a shell would, so quoted
// version specifiers like "torch==2.2.0" or 'pkg>=1.0' survive intact.
func splitPackages(s string) []string {
	if s == "" {
		return nil
	}
	parts, err := shellquote.Split(s)
	if err != nil {
		return strings.Fields(s)
	}
	return parts
}

func (w *wizard) View() string {
	var b strings.Builder

	b.WriteString(wizardTitleStyle.Render("GPU Dockerfile Generator"))
	b.WriteString("\n")
	b.WriteString(w.progressBar())
	b.WriteString("\n\n")

	if w.confirm {
		w.renderConfirm(&b)
		return b.String()
	}

	st := w.steps[w.stepIdx]
	b.WriteString(wizardLabelStyle.Render(st.title))
	b.WriteString("\n\n")

	for i := range st.fields {
		f := &st.fields[i]
		switch f.kind {
		case fieldToggle:
			b.WriteString(w.renderToggle(i, f))
		case fieldText:
			b.WriteString(w.renderTextInput(i, f))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(wizardDimStyle.Render("Tab/arrows to move, Space to toggle, Enter for next step, Esc to go back."))

	return b.String()
}

func (w *wizard) renderConfirm(b *strings.Builder) {
	cfg := w.buildConfig()

	b.WriteString(wizardLabelStyle.Render("Confirm:"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  Base image:  %s\n", wizardValueStyle.Render(cfg.BaseImage.Ref())))
	b.WriteString(fmt.Sprintf("  Maintainer:  %s\n", wizardValueStyle.Render(cfg.Metadata.Maintainer)))
	b.WriteString(fmt.Sprintf("  Timezone:    %s\n", wizardValueStyle.Render(cfg.System.Timezone)))
	b.WriteString(fmt.Sprintf("  Python:      %s\n", wizardValueStyle.Render(pythonSummary(cfg))))
	b.WriteString(fmt.Sprintf("  Conda:       %s\n", wizardValueStyle.Render(enabledSummary(cfg.Conda.Enabled))))
	b.WriteString(fmt.Sprintf("  Proxy:       %s\n", wizardValueStyle.Render(enabledSummary(cfg.Proxy.Enabled))))
	b.WriteString(fmt.Sprintf("  SSH:         %s\n", wizardValueStyle.Render(enabledSummary(cfg.SSH.Enabled))))
	b.WriteString(fmt.Sprintf("  GitHub CLI:  %s\n", wizardValueStyle.Render(enabledSummary(cfg.GithubCLI.Enabled))))

	if len(w.errs) > 0 {
		b.WriteString("\n")
		for _, fe := range w.errs {
			b.WriteString(wizardErrorStyle.Render(fmt.Sprintf("  ✗ %s", fe.Error())))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(wizardDimStyle.Render("Fix the highlighted fields (Esc to go back), or n to start over."))
		return
	}

	b.WriteString("\n")
	b.WriteString(wizardDimStyle.Render("Enter to generate, n to start over, Esc to go back."))
}

func pythonSummary(cfg config.Config) string {
	if cfg.Python.UseUv {
		return "uv"
	}
	return "pip"
}

func enabledSummary(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}

func (w *wizard) progressBar() string {
	var parts []string
	for i, s := range w.steps {
		label := fmt.Sprintf("%d. %s", i+1, s.title)
		active := i == w.stepIdx && !w.confirm
		if active {
			parts = append(parts, wizardActiveStepStyle.Render(label))
		} else {
			parts = append(parts, wizardStepStyle.Render(label))
		}
	}
	confirmLabel := fmt.Sprintf("%d. Confirm", len(w.steps)+1)
	if w.confirm {
		parts = append(parts, wizardActiveStepStyle.Render(confirmLabel))
	} else {
		parts = append(parts, wizardStepStyle.Render(confirmLabel))
	}
	return strings.Join(parts, wizardDimStyle.Render(" > "))
}

func (w *wizard) renderToggle(idx int, f *field) string {
	cursor := " "
	if w.cursor == idx {
		cursor = ">"
	}

	checked := " "
	if f.on {
		checked = "x"
	}

	line := fmt.Sprintf("  %s [%s] %s", cursor, checked, f.label)
	if w.cursor == idx {
		return selectedStyle.Render(line) + "\n" + wizardDimStyle.Render("      "+f.desc)
	}
	return line + "\n" + wizardDimStyle.Render("      "+f.desc)
}

func (w *wizard) renderTextInput(idx int, f *field) string {
	cursor := " "
	if w.cursor == idx {
		cursor = ">"
	}

	if w.cursor == idx {
		line := fmt.Sprintf("  %s %s: %s", cursor, f.label, f.input.View())
		return selectedStyle.Render(line) + "\n" + wizardDimStyle.Render("      "+f.desc)
	}

	val := strings.TrimSpace(f.input.Value())
	if val == "" {
		val = "(not set)"
	}
	line := fmt.Sprintf("  %s %s: %s", cursor, f.label, val)
	return line + "\n" + wizardDimStyle.Render("      "+f.desc)
}

// RunWizard runs the interactive configuration wizard. It returns nil
// without an error when the user cancels.
func RunWizard() (*config.Config, error) {
	w := newWizard()
	p := tea.NewProgram(&w, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("wizard error: %w", err)
	}

	fw, ok := final.(*wizard)
	if !ok || fw.cancelled || !fw.done {
		return nil, nil
	}

	cfg := fw.buildConfig()
	return &cfg, nil
}
