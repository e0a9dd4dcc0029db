package mentor

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/umairazmat/Ai-Codify/internal/codeinput"
)

// largest accepted upload plus room for multipart framing and pasted text
const maxBodyBytes = codeinput.MaxUploadBytes + 64<<10

var errBodyTooLarge = stderrors.New("request body too large")

type submission struct {
	upload *codeinput.Upload
	pasted string
	result *string
}

// reads a submission from either a multipart form or a JSON body
func readSubmission(c *gin.Context) (*submission, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return readForm(c)
	}

	var req CodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, bodyError(err)
	}

	sub := &submission{pasted: req.Code, result: req.Result}
	if req.Upload != nil {
		sub.upload = &codeinput.Upload{
			Filename: req.Upload.Filename,
			Content:  []byte(req.Upload.Content),
		}
	}

	return sub, nil
}

func readForm(c *gin.Context) (*submission, error) {
	if err := c.Request.ParseMultipartForm(maxBodyBytes); err != nil {
		return nil, bodyError(err)
	}

	form := c.Request.MultipartForm
	sub := &submission{}

	if values := form.Value["code"]; len(values) > 0 {
		sub.pasted = values[0]
	}

	if values := form.Value["result"]; len(values) > 0 {
		result := values[0]
		sub.result = &result
	}

	files := form.File["file"]
	if len(files) == 0 {
		return sub, nil
	}

	header := files[0]

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}

	defer file.Close() //nolint:errcheck

	// one byte over the cap is enough for codeinput to reject it
	content, err := io.ReadAll(io.LimitReader(file, codeinput.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	sub.upload = &codeinput.Upload{Filename: header.Filename, Content: content}

	return sub, nil
}

func bodyError(err error) error {
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
		return errBodyTooLarge
	}

	return err
}
