package assist

import (
	"fmt"
	"strings"
)

// one of the five CodeMentor operations
type Action string

const (
	ActionReview        Action = "review"
	ActionRefactor      Action = "refactor"
	ActionFeedback      Action = "feedback"
	ActionBestPractices Action = "best-practices"
	ActionRemoveErrors  Action = "remove-errors"
)

const (
	modelMini     = "gpt-4o-mini"
	modelFull     = "gpt-4o-2024-08-06"
	modelIdea     = "gpt-4o-mini-2024-07-18"
	codeMaxTokens = 1000
	ideaMaxTokens = 100
)

// everything needed to dispatch and present one action
type ActionSpec struct {
	Action       Action
	Label        string // button text
	Title        string // heading shown above the result
	Noun         string // what the download contains, e.g. "code review"
	SystemPrompt string
	Instruction  string // prepended to the code, empty sends the code as-is
	Model        string
	MaxTokens    int
	Filename     string // download name
	Apology      string
}

var actionSpecs = []ActionSpec{
	{
		Action:       ActionReview,
		Label:        "Get Code Review",
		Title:        "Code Review Results:",
		Noun:         "code review",
		SystemPrompt: "You are an AI assistant who helps users in code reviews by deep thinking in points max 5-6 point shortly.",
		Model:        modelMini,
		MaxTokens:    codeMaxTokens,
		Filename:     "code_review.txt",
		Apology:      "Sorry, an error occurred while reviewing your code. Please try again later.",
	},
	{
		Action:       ActionRefactor,
		Label:        "Refactor Code",
		Title:        "Refactored Code:",
		Noun:         "refactored code",
		SystemPrompt: "You are an AI assistant who refactors code for readability and efficiency without changing its behavior. Return the refactored code followed by a short list of the changes.",
		Instruction:  "Refactor the following code:",
		Model:        modelFull,
		MaxTokens:    codeMaxTokens,
		Filename:     "refactored_code.txt",
		Apology:      "Sorry, an error occurred while refactoring your code. Please try again later.",
	},
	{
		Action:       ActionFeedback,
		Label:        "Get Code Feedback",
		Title:        "Code Feedback:",
		Noun:         "code feedback",
		SystemPrompt: "You are an AI assistant who gives concise, real-time feedback on code quality and potential improvements.",
		Instruction:  "Give feedback on the following code:",
		Model:        modelMini,
		MaxTokens:    codeMaxTokens,
		Filename:     "code_feedback.txt",
		Apology:      "Sorry, an error occurred while generating feedback for your code. Please try again later.",
	},
	{
		Action:       ActionBestPractices,
		Label:        "Suggest Best Practices",
		Title:        "Best Practices Suggestions:",
		Noun:         "best practices suggestions",
		SystemPrompt: "You are an AI assistant who suggests best practices tailored to the given code, in short points.",
		Instruction:  "Suggest best practices for the following code:",
		Model:        modelFull,
		MaxTokens:    codeMaxTokens,
		Filename:     "best_practices.txt",
		Apology:      "Sorry, an error occurred while suggesting best practices. Please try again later.",
	},
	{
		Action:       ActionRemoveErrors,
		Label:        "Remove Code Errors",
		Title:        "Error Removal Suggestions:",
		Noun:         "error removal suggestions",
		SystemPrompt: "You are an AI assistant who identifies errors in code and suggests fixes for each of them.",
		Instruction:  "Identify and fix the errors in the following code:",
		Model:        modelFull,
		MaxTokens:    codeMaxTokens,
		Filename:     "error_removal_suggestions.txt",
		Apology:      "Sorry, an error occurred while removing errors from your code. Please try again later.",
	},
}

// heading shown above a generated idea
const IdeaTitle = "Your Unique Idea:"

// idea generation is not a CodeMentor action but shares the dispatch path
var ideaSpec = ActionSpec{
	Title:        IdeaTitle,
	SystemPrompt: "You are an AI assistant who knows everything.",
	Model:        modelIdea,
	MaxTokens:    ideaMaxTokens,
	Apology:      "Sorry, an error occurred while generating your idea. Please try again later.",
}

// returns all actions in display order
func Actions() []ActionSpec {
	out := make([]ActionSpec, len(actionSpecs))
	copy(out, actionSpecs)
	return out
}

// looks up an action by its wire name
func ParseAction(name string) (ActionSpec, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	for _, spec := range actionSpecs {
		if string(spec.Action) == name {
			return spec, nil
		}
	}

	return ActionSpec{}, fmt.Errorf("unknown action %q", name)
}

// banner shown next to a result's download button
func (s ActionSpec) DownloadHint() string {
	return fmt.Sprintf("You can download the %s as %s", s.Noun, s.Filename)
}

// assembled prompt ready for dispatch, never retained
type PromptRequest struct {
	SystemMessage string
	UserMessage   string
	Model         string
	MaxTokens     int
}

func (s ActionSpec) prompt(input string) PromptRequest {
	user := input
	if s.Instruction != "" {
		user = s.Instruction + "\n\n" + input
	}

	return PromptRequest{
		SystemMessage: s.SystemPrompt,
		UserMessage:   user,
		Model:         s.Model,
		MaxTokens:     s.MaxTokens,
	}
}
