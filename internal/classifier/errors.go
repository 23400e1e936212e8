package classifier

import (
	"errors"
	"fmt"
)

// ErrMissingCredential means no API key is configured, so no remote candidate
// can be called.
var ErrMissingCredential = errors.New("classifier: no LLM credential configured")

// CandidateError is one candidate's failure. The cascade recovers from it by
// moving on.
type CandidateError struct {
	Model string
	Err   error
}

func (e *CandidateError) Error() string {
	return fmt.Sprintf("classifier: model %s: %v", e.Model, e.Err)
}

func (e *CandidateError) Unwrap() error {
	return e.Err
}

// CascadeExhaustedError is returned when every candidate failed. Unwrap
// yields the last candidate's failure.
type CascadeExhaustedError struct {
	Attempts int
	Last     error
}

func (e *CascadeExhaustedError) Error() string {
	return fmt.Sprintf("classifier: all %d candidates failed, last: %v", e.Attempts, e.Last)
}

func (e *CascadeExhaustedError) Unwrap() error {
	return e.Last
}
