package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/umairazmat/Ai-Codify/internal/logger"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.InternalError(), errors.BadRequest(), etc. for request errors
//   - LLM failures are not request errors: answer 200 with the apology text
//     and log the underlying cause with logger.ErrorErr()
//
// For internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler) decide how to log and respond

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeNotFound,
		Message: message,
	})
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
	}

	if err != nil {
		response.Details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 400 error carrying a message meant for the user as-is
func ValidationError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "validation failed"
	}

	response := ErrorResponse{
		Error:   CodeValidationError,
		Message: message,
	}

	if err != nil {
		response.Details = err.Error()
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 409 when a wizard operation is called at the wrong step
func InvalidStep(c *gin.Context, message string) {
	if message == "" {
		message = "operation not allowed at the current step"
	}

	c.JSON(http.StatusConflict, ErrorResponse{
		Error:   CodeInvalidStep,
		Message: message,
	})
}

// returns a 404 for an action name outside the known set
func UnknownAction(c *gin.Context, action string) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeUnknownAction,
		Message: "unknown action: " + action,
	})
}

// returns a 404 error for session not found
func SessionNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeSessionNotFound,
		Message: "session not found",
	})
}

// returns a 413 for request bodies over the upload cap
func PayloadTooLarge(c *gin.Context, message string) {
	if message == "" {
		message = "request body too large"
	}

	c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
		Error:   CodePayloadTooLarge,
		Message: message,
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	// log full error server-side with context
	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"session_id", c.GetString("session_id"),
	)

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeServerError,
		Message: message,
		Details: sanitizeError(err),
	})
}
