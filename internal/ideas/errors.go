package ideas

import "errors"

var (
	ErrEmptyTopic        = errors.New("please enter a valid topic")
	ErrIncompleteAnswers = errors.New("please fill in all fields")
	ErrInvalidTransition = errors.New("action not allowed at the current step")
)

// reports whether err is a recoverable input problem rather than a misuse
// of the flow
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyTopic) || errors.Is(err, ErrIncompleteAnswers)
}
