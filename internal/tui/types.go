package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/umairazmat/Ai-Codify/internal/assist"
)

// represents the current state of the TUI
type AppState int

const (
	StateWelcome AppState = iota
	StateIdeas
	StateMentor
)

// main TUI application model
type Model struct {
	state   AppState
	mode    string
	width   int
	height  int
	err     error
	client  *Client
	welcome *Welcome
	ideas   *IdeasModel
	mentor  *MentorModel
}

// welcome screen model
type Welcome struct {
	mode     string
	input    string
	commands []Command
}

// represents an available TUI command
type Command struct {
	Name        string
	Description string
}

// Idea Crafter screen
type IdeasModel struct {
	client      *Client
	input       textinput.Model
	spinner     spinner.Model
	renderer    *glamour.TermRenderer
	state       *IdeaState
	answers     Answers
	questionIdx int
	isFetching  bool
	banner      string
	bannerIsErr bool
	width       int
}

// which CodeMentor input has focus
type mentorFocus int

const (
	focusEditor mentorFocus = iota
	focusPath
)

// CodeMentor screen
type MentorModel struct {
	client      *Client
	editor      textarea.Model
	pathInput   textinput.Model
	output      viewport.Model
	focus       mentorFocus
	spinner     spinner.Model
	renderer    *glamour.TermRenderer
	actions     []assist.ActionSpec
	result      *ActionResult
	downloadDir string
	isFetching  bool
	banner      string
	bannerIsErr bool
	width       int
	height      int
}

// sent when an error occurs
type ErrorMsg struct {
	err error
}

// sent to switch screens
type EnterIdeasMsg struct{}
type EnterMentorMsg struct{}

// sent when the server returns wizard state
type IdeaStateMsg struct {
	state *IdeaState
}

// sent when a wizard request fails
type IdeaErrorMsg struct {
	err error
}

// sent when a CodeMentor action completes
type ActionResultMsg struct {
	result *ActionResult
}

// sent when a CodeMentor request fails
type ActionErrorMsg struct {
	err error
}

// sent after a result was written to disk
type SavedMsg struct {
	path string
}
