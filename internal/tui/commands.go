package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// a model answer can take most of the server's own upstream timeout
const requestTimeout = 90 * time.Second

func ideaCmd(fn func(ctx context.Context) (*IdeaState, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		state, err := fn(ctx)
		if err != nil {
			return IdeaErrorMsg{err: err}
		}

		return IdeaStateMsg{state: state}
	}
}

func (c *Client) IdeaStateCmd() tea.Cmd {
	return ideaCmd(c.IdeaState)
}

func (c *Client) SubmitTopicCmd(topic string) tea.Cmd {
	return ideaCmd(func(ctx context.Context) (*IdeaState, error) {
		return c.SubmitTopic(ctx, topic)
	})
}

func (c *Client) SubmitDetailsCmd(answers Answers) tea.Cmd {
	return ideaCmd(func(ctx context.Context) (*IdeaState, error) {
		return c.SubmitDetails(ctx, answers)
	})
}

func (c *Client) GenerateIdeaCmd() tea.Cmd {
	return ideaCmd(c.GenerateIdea)
}

func (c *Client) ResetIdeasCmd() tea.Cmd {
	return ideaCmd(c.ResetIdeas)
}

// returns a tea.Cmd that runs one CodeMentor action
func (c *Client) RunActionCmd(action string, sub CodeSubmission) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := c.RunAction(ctx, action, sub)
		if err != nil {
			return ActionErrorMsg{err: err}
		}

		return ActionResultMsg{result: result}
	}
}

// returns a tea.Cmd that downloads a result and writes it under dir
func (c *Client) SaveCmd(action, result, dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		body, filename, err := c.Download(ctx, action, result)
		if err != nil {
			return ActionErrorMsg{err: err}
		}

		path := filepath.Join(dir, filepath.Base(filename))
		if err := os.WriteFile(path, body, 0o644); err != nil { //nolint:gosec // user-readable output file
			return ActionErrorMsg{err: fmt.Errorf("failed to save %s: %w", path, err)}
		}

		return SavedMsg{path: path}
	}
}
