package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/umairazmat/Ai-Codify/internal/assist"
)

// rows given to the scrollable result pane
const resultHeight = 12

// returns a new CodeMentor screen
func NewMentorModel(client *Client, downloadDir string) *MentorModel {
	ta := textarea.New()
	ta.Placeholder = "Or paste your code here (Max 1000 words)"
	ta.CharLimit = 0
	ta.ShowLineNumbers = true
	ta.SetWidth(80)
	ta.SetHeight(12)
	ta.Focus()

	pi := textinput.New()
	pi.Placeholder = "Upload a code file (Max 500 lines): path to a .py, .js or .txt file"
	pi.CharLimit = 0
	pi.Width = 80
	pi.Prompt = "file: "
	pi.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	pi.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)

	if downloadDir == "" {
		downloadDir = "."
	}

	return &MentorModel{
		client:      client,
		editor:      ta,
		pathInput:   pi,
		output:      viewport.New(80, resultHeight),
		focus:       focusEditor,
		spinner:     newSpinner(),
		renderer:    newRenderer(defaultWrap),
		actions:     assist.Actions(),
		downloadDir: downloadDir,
	}
}

func (m *MentorModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *MentorModel) Update(msg tea.Msg) (*MentorModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.isFetching {
			return m, nil
		}

		key := msg.String()

		if spec, ok := m.actionForKey(key); ok {
			return m, m.run(spec)
		}

		switch key {
		case "tab":
			m.toggleFocus()
			return m, nil

		case "ctrl+s":
			return m, m.save()

		case "ctrl+l":
			m.editor.Reset()
			m.pathInput.SetValue("")
			m.output.SetContent("")
			m.result = nil
			m.banner = ""
			return m, nil

		case "pgup", "pgdown":
			m.output, cmd = m.output.Update(msg)
			return m, cmd
		}

	case ActionResultMsg:
		m.isFetching = false
		m.result = msg.result
		m.refreshOutput()

		if msg.result.Failed {
			m.setBanner(msg.result.Text, true)
		} else {
			m.setBanner(msg.result.DownloadHint+" (ctrl+s)", false)
		}

		return m, nil

	case ActionErrorMsg:
		m.isFetching = false
		m.setBanner(msg.err.Error(), true)
		return m, nil

	case SavedMsg:
		m.isFetching = false
		m.setBanner("saved to "+msg.path, false)
		return m, nil

	case spinner.TickMsg:
		if !m.isFetching {
			return m, nil
		}

		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(max(msg.Width-6, 20))
		m.pathInput.Width = max(msg.Width-12, 20)
		m.renderer = newRenderer(wrapWidth(msg.Width))
		m.output.Width = max(msg.Width-4, 20)
		m.refreshOutput()
		return m, nil
	}

	if m.focus == focusPath {
		m.pathInput, cmd = m.pathInput.Update(msg)
	} else {
		m.editor, cmd = m.editor.Update(msg)
	}

	return m, cmd
}

// alt+1 .. alt+5 pick an action in display order
func (m *MentorModel) actionForKey(key string) (assist.ActionSpec, bool) {
	for i, spec := range m.actions {
		if key == fmt.Sprintf("alt+%d", i+1) {
			return spec, true
		}
	}

	return assist.ActionSpec{}, false
}

func (m *MentorModel) toggleFocus() {
	if m.focus == focusEditor {
		m.focus = focusPath
		m.editor.Blur()
		m.pathInput.Focus()
		return
	}

	m.focus = focusEditor
	m.pathInput.Blur()
	m.editor.Focus()
}

// builds the request body; a file path, when given, is sent as the upload
func (m *MentorModel) submission() (CodeSubmission, error) {
	sub := CodeSubmission{Code: m.editor.Value()}

	path := strings.TrimSpace(m.pathInput.Value())
	if path == "" {
		return sub, nil
	}

	content, err := os.ReadFile(path) //nolint:gosec // the user picks the file to upload
	if err != nil {
		return sub, fmt.Errorf("failed to read %s: %w", path, err)
	}

	sub.Upload = &Upload{Filename: filepath.Base(path), Content: string(content)}

	return sub, nil
}

func (m *MentorModel) run(spec assist.ActionSpec) tea.Cmd {
	sub, err := m.submission()
	if err != nil {
		m.setBanner(err.Error(), true)
		return nil
	}

	if sub.Upload == nil && strings.TrimSpace(sub.Code) == "" {
		m.setBanner("Upload a file or paste your code to get started.", true)
		return nil
	}

	m.isFetching = true
	m.banner = ""

	return tea.Batch(m.client.RunActionCmd(string(spec.Action), sub), m.spinner.Tick)
}

func (m *MentorModel) save() tea.Cmd {
	if m.result == nil {
		m.setBanner("nothing to save yet", true)
		return nil
	}

	m.isFetching = true

	return tea.Batch(m.client.SaveCmd(m.result.Action, m.result.Text, m.downloadDir), m.spinner.Tick)
}

func (m *MentorModel) refreshOutput() {
	if m.result == nil || m.result.Failed {
		m.output.SetContent("")
		return
	}

	m.output.SetContent(renderMarkdown(m.renderer, m.result.Text))
	m.output.GotoTop()
}

func (m *MentorModel) setBanner(text string, isErr bool) {
	m.banner = text
	m.bannerIsErr = isErr
}

func (m *MentorModel) View() string {
	var b strings.Builder

	header := lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Render("CODEMENTOR")
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(infoStyle.Render("Upload a file or paste your code below to get an AI-generated code review."))
	b.WriteString("\n\n")

	b.WriteString(borderStyle.Width(max(m.width-4, 20)).Render(m.pathInput.View()))
	b.WriteString("\n")
	b.WriteString(m.editor.View())
	b.WriteString("\n\n")

	buttons := make([]string, 0, len(m.actions))
	for i, spec := range m.actions {
		buttons = append(buttons, fmt.Sprintf("[alt+%d] %s", i+1, spec.Label))
	}

	b.WriteString(commandDescStyle.Render(strings.Join(buttons, "  ")))
	b.WriteString("\n\n")

	if m.result != nil && !m.result.Failed {
		b.WriteString(successStyle.Render(m.result.Title))
		b.WriteString("\n\n")
		b.WriteString(m.output.View())
		b.WriteString("\n\n")
	}

	if m.isFetching {
		b.WriteString(m.spinner.View() + " " + infoStyle.Render("Processing..."))
		b.WriteString("\n")
	} else if m.banner != "" {
		style := successStyle
		if m.bannerIsErr {
			style = errorStyle
		}

		b.WriteString(style.Render(m.banner))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("[Tab: File/Paste] [PgUp/PgDn: Scroll] [Ctrl+S: Save Result] [Ctrl+L: Clear] [Ctrl+C: Back]"))

	return b.String()
}
