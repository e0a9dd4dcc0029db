package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// wizard steps as reported by the server
const (
	stepTopic   = 0
	stepDetails = 1
	stepResult  = 2
)

// returns a new Idea Crafter screen
func NewIdeasModel(client *Client) *IdeasModel {
	ti := textinput.New()
	ti.CharLimit = 0
	ti.Width = 80
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)
	ti.Focus()

	return &IdeasModel{
		client:   client,
		input:    ti,
		spinner:  newSpinner(),
		renderer: newRenderer(defaultWrap),
	}
}

// loads the session's current step from the server
func (m *IdeasModel) Init() tea.Cmd {
	m.isFetching = true
	return tea.Batch(m.client.IdeaStateCmd(), m.spinner.Tick, textinput.Blink)
}

func (m *IdeasModel) Update(msg tea.Msg) (*IdeasModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.isFetching {
			return m, nil
		}

		switch msg.String() {
		case "enter":
			return m, m.submit()

		case "ctrl+r":
			if m.step() == stepResult {
				m.isFetching = true
				return m, tea.Batch(m.client.ResetIdeasCmd(), m.spinner.Tick)
			}
			return m, nil
		}

	case IdeaStateMsg:
		return m, m.applyState(msg.state)

	case IdeaErrorMsg:
		m.isFetching = false
		m.setBanner(msg.err.Error(), true)

		// a rejected answer set restarts the questions from the first one
		if m.step() == stepDetails {
			m.questionIdx = 0
			m.answers = Answers{}
			m.refreshPlaceholder()
		}

		return m, nil

	case spinner.TickMsg:
		if !m.isFetching {
			return m, nil
		}

		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-10, 20)
		m.renderer = newRenderer(wrapWidth(msg.Width))
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *IdeasModel) step() int {
	if m.state == nil {
		return stepTopic
	}

	return m.state.Step
}

func (m *IdeasModel) submit() tea.Cmd {
	value := m.input.Value()

	switch m.step() {
	case stepTopic:
		if strings.TrimSpace(value) == "" {
			m.setBanner("Please enter a valid topic.", true)
			return nil
		}

		m.isFetching = true
		return tea.Batch(m.client.SubmitTopicCmd(value), m.spinner.Tick)

	case stepDetails:
		if strings.TrimSpace(value) == "" {
			m.setBanner("Please fill in all fields.", true)
			return nil
		}

		m.recordAnswer(value)
		m.input.SetValue("")
		m.questionIdx++

		if m.questionIdx < len(m.state.Questions) {
			m.banner = ""
			m.refreshPlaceholder()
			return nil
		}

		m.isFetching = true
		return tea.Batch(m.client.SubmitDetailsCmd(m.answers), m.spinner.Tick)
	}

	return nil
}

func (m *IdeasModel) recordAnswer(value string) {
	if m.questionIdx >= len(m.state.Questions) {
		return
	}

	switch m.state.Questions[m.questionIdx].Field {
	case "problem":
		m.answers.Problem = value
	case "impact":
		m.answers.Impact = value
	case "skills":
		m.answers.Skills = value
	case "platform":
		m.answers.Platform = value
	}
}

func (m *IdeasModel) applyState(state *IdeaState) tea.Cmd {
	previous := m.step()
	m.state = state
	m.isFetching = false

	if state.Step != previous || state.Step == stepTopic {
		m.input.SetValue("")
		m.questionIdx = 0
		m.answers = Answers{}
		m.banner = ""
	}

	m.refreshPlaceholder()

	// entering the result step renders the idea; the server answers from
	// its stored copy on every later request
	if state.Step == stepResult && state.Idea == nil {
		m.isFetching = true
		return tea.Batch(m.client.GenerateIdeaCmd(), m.spinner.Tick)
	}

	if state.Idea != nil && state.Idea.Failed {
		m.setBanner(state.Idea.Text, true)
	}

	return nil
}

func (m *IdeasModel) refreshPlaceholder() {
	if q, ok := m.currentQuestion(); ok {
		m.input.Placeholder = q.Field
	}
}

func (m *IdeasModel) currentQuestion() (Question, bool) {
	if m.state == nil || m.questionIdx >= len(m.state.Questions) {
		return Question{}, false
	}

	return m.state.Questions[m.questionIdx], true
}

func (m *IdeasModel) setBanner(text string, isErr bool) {
	m.banner = text
	m.bannerIsErr = isErr
}

func (m *IdeasModel) View() string {
	var b strings.Builder

	header := lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Render("IDEA CRAFTER")
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(infoStyle.Render("Generate unique ideas based on your interests and skills!"))
	b.WriteString("\n\n")

	switch m.step() {
	case stepTopic, stepDetails:
		if q, ok := m.currentQuestion(); ok {
			b.WriteString(promptStyle.Render(q.Label))
			b.WriteString("\n")
		}

		if m.step() == stepDetails && m.state != nil {
			b.WriteString(infoStyle.Render(progress(m.questionIdx+1, len(m.state.Questions))))
			b.WriteString("\n")
		}

		b.WriteString(borderStyle.Width(max(m.width-4, 20)).Render(m.input.View()))
		b.WriteString("\n")

	case stepResult:
		if m.state != nil && m.state.Idea != nil && !m.state.Idea.Failed {
			b.WriteString(successStyle.Render(m.state.Idea.Title))
			b.WriteString("\n\n")
			b.WriteString(renderMarkdown(m.renderer, m.state.Idea.Text))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")

	if m.isFetching {
		b.WriteString(m.spinner.View() + " " + infoStyle.Render(m.fetchingText()))
		b.WriteString("\n")
	} else if m.banner != "" {
		style := successStyle
		if m.bannerIsErr {
			style = errorStyle
		}

		b.WriteString(style.Render(m.banner))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.helpText()))

	return b.String()
}

func (m *IdeasModel) fetchingText() string {
	if m.step() == stepResult {
		return "Generating your idea..."
	}

	return "working..."
}

func (m *IdeasModel) helpText() string {
	if m.step() == stepResult {
		return "[Ctrl+R: Generate Another Idea] [Ctrl+C: Back]"
	}

	return "[Enter: Next] [Ctrl+C: Back]"
}

func progress(current, total int) string {
	return fmt.Sprintf("question %d of %d", current, total)
}
