package llm

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyResponse     = errors.New("no content in response")
	ErrMalformedResponse = errors.New("malformed response")
)

// returned when the vendor answers with a non-200 status
type APIError struct {
	Provider   Provider
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API request failed with status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// reports whether the vendor rejected the credentials
func (e *APIError) IsAuth() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}
