package assist

import (
	"context"
	"errors"
	"net"
	"net/url"

	"github.com/umairazmat/Ai-Codify/internal/llm"
)

// classifies why an external call failed
type FailureKind string

const (
	FailureNone      FailureKind = ""
	FailureNetwork   FailureKind = "network"
	FailureAuth      FailureKind = "auth"
	FailureUpstream  FailureKind = "upstream"
	FailureMalformed FailureKind = "malformed"
	FailureTimeout   FailureKind = "timeout"
	FailureCanceled  FailureKind = "canceled"
	FailureUnknown   FailureKind = "unknown"
)

// result of one adapter call. on failure Text holds the adapter's fixed
// apology so callers that only want something to show can ignore the rest.
type Outcome struct {
	Text   string
	Model  string
	Failed bool
	Kind   FailureKind
	Err    error
}

func succeeded(text, model string) Outcome {
	return Outcome{Text: text, Model: model}
}

func failed(apology string, err error) Outcome {
	return Outcome{
		Text:   apology,
		Failed: true,
		Kind:   Classify(err),
		Err:    err,
	}
}

// maps an adapter error to a failure kind
func Classify(err error) FailureKind {
	if err == nil {
		return FailureNone
	}

	// the caller went away; nothing upstream failed
	if errors.Is(err, context.Canceled) {
		return FailureCanceled
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}

	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsAuth() {
			return FailureAuth
		}

		return FailureUpstream
	}

	if errors.Is(err, llm.ErrMalformedResponse) || errors.Is(err, llm.ErrEmptyResponse) {
		return FailureMalformed
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return FailureTimeout
		}

		return FailureNetwork
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return FailureNetwork
	}

	return FailureUnknown
}
