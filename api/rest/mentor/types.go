package mentor

import (
	"context"

	"github.com/umairazmat/Ai-Codify/internal/assist"
	"github.com/umairazmat/Ai-Codify/internal/codeinput"
)

// runs one CodeMentor action
type Runner interface {
	Run(ctx context.Context, action assist.Action, code string) assist.Outcome
}

// CodeRequest is the JSON form of a CodeMentor submission. An upload, when
// present, wins over pasted code.
type CodeRequest struct {
	Code   string         `json:"code"`
	Upload *UploadRequest `json:"upload,omitempty"`

	// previously shown result text; download serves it without a new model call
	Result *string `json:"result,omitempty"`
}

// UploadRequest is a file sent inline in JSON
type UploadRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// ActionResponse is the result of one action
type ActionResponse struct {
	Action       assist.Action      `json:"action"`
	Title        string             `json:"title"`
	Text         string             `json:"text"`
	Model        string             `json:"model,omitempty"`
	Failed       bool               `json:"failed"`
	Failure      assist.FailureKind `json:"failure,omitempty"`
	Filename     string             `json:"filename"`
	DownloadHint string             `json:"download_hint"`
	Source       codeinput.Source   `json:"source"`
}

// ValidateResponse reports whether the submitted code would be accepted
type ValidateResponse struct {
	Enabled  bool             `json:"enabled"`
	Source   codeinput.Source `json:"source,omitempty"`
	Filename string           `json:"filename,omitempty"`
	Lines    int              `json:"lines"`
	Words    int              `json:"words"`
	MaxLines int              `json:"max_lines"`
	MaxWords int              `json:"max_words"`
	Message  string           `json:"message"`
}

// ActionInfo describes an available action
type ActionInfo struct {
	Action   assist.Action `json:"action"`
	Label    string        `json:"label"`
	Title    string        `json:"title"`
	Filename string        `json:"filename"`
}
