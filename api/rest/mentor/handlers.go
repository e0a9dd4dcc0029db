package mentor

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/umairazmat/Ai-Codify/internal/assist"
	"github.com/umairazmat/Ai-Codify/internal/codeinput"
	"github.com/umairazmat/Ai-Codify/internal/errors"
	"github.com/umairazmat/Ai-Codify/internal/logger"
)

// set on downloads whose body is an apology rather than a model answer
const headerResultFailed = "X-Result-Failed"

// ListActionsHandler godoc
// @Summary List CodeMentor actions
// @Tags mentor
// @Produce json
// @Success 200 {array} ActionInfo
// @Router /api/v1/mentor/actions [get]
func ListActionsHandler(c *gin.Context) {
	specs := assist.Actions()
	out := make([]ActionInfo, 0, len(specs))

	for _, spec := range specs {
		out = append(out, ActionInfo{
			Action:   spec.Action,
			Label:    spec.Label,
			Title:    spec.Title,
			Filename: spec.Filename,
		})
	}

	c.JSON(http.StatusOK, out)
}

// ValidateHandler godoc
// @Summary Validate code input
// @Description Applies the upload line limit or paste word limit and reports whether actions are enabled
// @Tags mentor
// @Accept json,mpfd
// @Produce json
// @Param request body CodeRequest false "Pasted code or inline upload"
// @Success 200 {object} ValidateResponse
// @Failure 413 {object} errors.ErrorResponse
// @Router /api/v1/mentor/validate [post]
func ValidateHandler(c *gin.Context) {
	sub, ok := bindSubmission(c)
	if !ok {
		return
	}

	resp := ValidateResponse{
		MaxLines: codeinput.MaxUploadLines,
		MaxWords: codeinput.MaxPasteWords,
	}

	input, err := codeinput.Resolve(sub.upload, sub.pasted)
	if err != nil {
		resp.Message = codeinput.UserMessage(err)
		c.JSON(http.StatusOK, resp)
		return
	}

	resp.Enabled = true
	resp.Source = input.Source
	resp.Filename = input.Filename
	resp.Lines = input.LineCount()
	resp.Words = input.WordCount()

	if input.Source == codeinput.SourceUpload {
		resp.Message = "File uploaded: " + input.Filename
	}

	c.JSON(http.StatusOK, resp)
}

// RunHandler godoc
// @Summary Run a CodeMentor action
// @Description Runs review, refactor, feedback, best-practices or remove-errors on the submitted code. Model failures return 200 with an apology and failed=true.
// @Tags mentor
// @Accept json,mpfd
// @Produce json
// @Param action path string true "Action" Enums(review, refactor, feedback, best-practices, remove-errors)
// @Param request body CodeRequest true "Pasted code or inline upload"
// @Success 200 {object} ActionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/mentor/{action} [post]
func RunHandler(runner Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		spec, ok := bindAction(c)
		if !ok {
			return
		}

		sub, ok := bindSubmission(c)
		if !ok {
			return
		}

		input, ok := resolveInput(c, sub)
		if !ok {
			return
		}

		out := run(c, runner, spec, input)

		c.JSON(http.StatusOK, ActionResponse{
			Action:       spec.Action,
			Title:        spec.Title,
			Text:         out.Text,
			Model:        out.Model,
			Failed:       out.Failed,
			Failure:      out.Kind,
			Filename:     spec.Filename,
			DownloadHint: spec.DownloadHint(),
			Source:       input.Source,
		})
	}
}

// DownloadHandler godoc
// @Summary Download a CodeMentor result
// @Description Returns the result text as a plain-text attachment. When result is supplied it is served verbatim; otherwise the action is run first.
// @Tags mentor
// @Accept json,mpfd
// @Produce plain
// @Param action path string true "Action" Enums(review, refactor, feedback, best-practices, remove-errors)
// @Param request body CodeRequest true "Code to process or a previous result"
// @Success 200 {string} string "attachment"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/mentor/{action}/download [post]
func DownloadHandler(runner Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		spec, ok := bindAction(c)
		if !ok {
			return
		}

		sub, ok := bindSubmission(c)
		if !ok {
			return
		}

		text := ""
		failed := false

		if sub.result != nil {
			text = *sub.result
		} else {
			input, ok := resolveInput(c, sub)
			if !ok {
				return
			}

			out := run(c, runner, spec, input)
			text = out.Text
			failed = out.Failed
		}

		if failed {
			c.Header(headerResultFailed, "true")
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", spec.Filename))
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
	}
}

func bindAction(c *gin.Context) (assist.ActionSpec, bool) {
	spec, err := assist.ParseAction(c.Param("action"))
	if err != nil {
		errors.UnknownAction(c, c.Param("action"))
		return assist.ActionSpec{}, false
	}

	return spec, true
}

func bindSubmission(c *gin.Context) (*submission, bool) {
	sub, err := readSubmission(c)
	if stderrors.Is(err, errBodyTooLarge) {
		errors.PayloadTooLarge(c, codeinput.UserMessage(codeinput.ErrUploadTooLarge))
		return nil, false
	}

	if err != nil {
		errors.BadRequest(c, "invalid request body", err)
		return nil, false
	}

	return sub, true
}

func resolveInput(c *gin.Context, sub *submission) (*codeinput.CodeInput, bool) {
	input, err := codeinput.Resolve(sub.upload, sub.pasted)
	if err != nil {
		errors.ValidationError(c, codeinput.UserMessage(err), err)
		return nil, false
	}

	return input, true
}

func run(c *gin.Context, runner Runner, spec assist.ActionSpec, input *codeinput.CodeInput) assist.Outcome {
	out := runner.Run(c.Request.Context(), spec.Action, input.Content)
	log := logger.FromContext(c.Request.Context()).With("action", spec.Action)

	if out.Failed {
		log.Error("mentor action failed",
			"error", out.Err,
			"failure", out.Kind,
		)
	} else {
		log.Info("mentor action completed",
			"model", out.Model,
			"source", input.Source,
			"lines", input.LineCount(),
		)
	}

	return out
}
