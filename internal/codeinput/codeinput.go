package codeinput

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	MaxUploadLines = 500
	MaxPasteWords  = 1000

	// uploads beyond this are rejected before decoding
	MaxUploadBytes = 1 << 20
)

// extensions accepted by the uploader
var allowedExtensions = map[string]bool{
	".py":  true,
	".js":  true,
	".txt": true,
}

var (
	ErrNoInput             = errors.New("no code provided")
	ErrTooManyLines        = errors.New("uploaded file has too many lines")
	ErrTooManyWords        = errors.New("pasted code has too many words")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrInvalidEncoding     = errors.New("file is not valid UTF-8")
	ErrUploadTooLarge      = errors.New("uploaded file is too large")
)

type Source string

const (
	SourceUpload Source = "upload"
	SourcePaste  Source = "paste"
)

// a raw uploaded file
type Upload struct {
	Filename string
	Content  []byte
}

// a single accepted code submission
type CodeInput struct {
	Source   Source `json:"source"`
	Filename string `json:"filename,omitempty"`
	Content  string `json:"-"`
}

func (c *CodeInput) LineCount() int {
	return CountLines(c.Content)
}

func (c *CodeInput) WordCount() int {
	return CountWords(c.Content)
}

// picks and validates the code to act on. an upload always wins over
// pasted text, even when the upload itself is rejected.
func Resolve(upload *Upload, pasted string) (*CodeInput, error) {
	if upload != nil {
		return resolveUpload(upload)
	}

	if strings.TrimSpace(pasted) == "" {
		return nil, ErrNoInput
	}

	if words := CountWords(pasted); words > MaxPasteWords {
		return nil, fmt.Errorf("%w: %d words (max %d)", ErrTooManyWords, words, MaxPasteWords)
	}

	return &CodeInput{Source: SourcePaste, Content: pasted}, nil
}

func resolveUpload(upload *Upload) (*CodeInput, error) {
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, upload.Filename)
	}

	if len(upload.Content) > MaxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrUploadTooLarge, len(upload.Content), MaxUploadBytes)
	}

	if !utf8.Valid(upload.Content) {
		return nil, ErrInvalidEncoding
	}

	content := string(upload.Content)
	if strings.TrimSpace(content) == "" {
		return nil, ErrNoInput
	}

	if lines := CountLines(content); lines > MaxUploadLines {
		return nil, fmt.Errorf("%w: %d lines (max %d)", ErrTooManyLines, lines, MaxUploadLines)
	}

	return &CodeInput{
		Source:   SourceUpload,
		Filename: filepath.Base(upload.Filename),
		Content:  content,
	}, nil
}

// returns the banner text for a validation failure
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrTooManyLines):
		return fmt.Sprintf("File is too large! Please upload a file with a maximum of %d lines.", MaxUploadLines)
	case errors.Is(err, ErrTooManyWords):
		return fmt.Sprintf("Code exceeds %d words! Please shorten your code.", MaxPasteWords)
	case errors.Is(err, ErrUnsupportedFileType):
		return "Unsupported file type! Please upload a .py, .js or .txt file."
	case errors.Is(err, ErrInvalidEncoding):
		return "File could not be read as UTF-8 text."
	case errors.Is(err, ErrUploadTooLarge):
		return "File is too large to upload."
	case errors.Is(err, ErrNoInput):
		return "Upload a file or paste your code to get started."
	default:
		return "Invalid code input."
	}
}
