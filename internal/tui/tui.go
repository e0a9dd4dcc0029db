package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func NewApp(mode string, client *Client, downloadDir string) *Model {
	return &Model{
		state:   StateWelcome,
		mode:    mode,
		client:  client,
		welcome: NewWelcome(mode),
		ideas:   NewIdeasModel(client),
		mentor:  NewMentorModel(client, downloadDir),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			// errors are dismissed first, then screens fall back to welcome
			if m.err != nil {
				m.err = nil
				return m, nil
			}

			if m.state == StateWelcome {
				return m, tea.Quit
			}

			m.state = StateWelcome
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.ideas, _ = m.ideas.Update(msg)
		m.mentor, _ = m.mentor.Update(msg)

		return m, nil

	case ErrorMsg:
		m.err = msg.err
		return m, nil

	case EnterIdeasMsg:
		m.state = StateIdeas
		return m, m.ideas.Init()

	case EnterMentorMsg:
		m.state = StateMentor
		return m, m.mentor.Init()

	// replies land on their own screen even if the user has moved on
	case IdeaStateMsg, IdeaErrorMsg:
		return m.updateIdeas(msg)

	case ActionResultMsg, ActionErrorMsg, SavedMsg:
		return m.updateMentor(msg)

	// each spinner ignores ticks carrying another spinner's ID
	case spinner.TickMsg:
		var ideasCmd, mentorCmd tea.Cmd
		m.ideas, ideasCmd = m.ideas.Update(msg)
		m.mentor, mentorCmd = m.mentor.Update(msg)

		return m, tea.Batch(ideasCmd, mentorCmd)
	}

	switch m.state {
	case StateWelcome:
		return m.updateWelcome(msg)

	case StateIdeas:
		return m.updateIdeas(msg)

	case StateMentor:
		return m.updateMentor(msg)

	default:
		return m, nil
	}
}

func (m *Model) View() string {
	if m.err != nil {
		return errorView(m.err)
	}

	switch m.state {
	case StateWelcome:
		return m.welcome.View()

	case StateIdeas:
		return m.ideas.View()

	case StateMentor:
		return m.mentor.View()

	default:
		return "Unknown state"
	}
}

func (m *Model) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.welcome, cmd = m.welcome.Update(msg)

	return m, cmd
}

func (m *Model) updateIdeas(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.ideas, cmd = m.ideas.Update(msg)

	return m, cmd
}

func (m *Model) updateMentor(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.mentor, cmd = m.mentor.Update(msg)

	return m, cmd
}

func errorView(err error) string {
	return fmt.Sprintf("\n  Error: %v\n\n  Press Ctrl+C to continue\n", err)
}
