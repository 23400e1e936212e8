package classifier

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Candidate is one remote model that turns a prompt into raw text.
type Candidate interface {
	Name() string
	Classify(ctx context.Context, prompt string) (string, error)
}

// Cascade tries candidates strictly in order and returns the first result
// that parse accepts. A transport failure or a rejected payload both move on
// to the next candidate; a candidate is never retried. The context is checked
// between candidates so an abandoned caller stops the walk.
func Cascade[T any](
	ctx context.Context,
	log logrus.FieldLogger,
	candidates []Candidate,
	prompt string,
	parse func(raw string) (T, error),
) (T, error) {
	var zero T
	if len(candidates) == 0 {
		return zero, ErrMissingCredential
	}

	var last error
	for i, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		raw, err := candidate.Classify(ctx, prompt)
		if err == nil {
			result, parseErr := parse(raw)
			if parseErr == nil {
				return result, nil
			}
			err = parseErr
		}

		last = &CandidateError{Model: candidate.Name(), Err: err}
		log.WithFields(logrus.Fields{
			"model":   candidate.Name(),
			"attempt": i + 1,
			"error":   err.Error(),
		}).Warn("Classifier.Cascade.candidateFailed")
	}

	return zero, &CascadeExhaustedError{Attempts: len(candidates), Last: last}
}
