// Package classifier turns free text into a StructuredCommand through an
// ordered cascade of remote language models, and produces advisory narration
// through the same cascade.
package classifier

import (
	"context"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/voice-ledger/internal/command"
)

type Classifier struct {
	candidates []Candidate
	log        logrus.FieldLogger
}

// NewClassifier returns a classifier over candidates. With no candidates every
// call fails with ErrMissingCredential.
func NewClassifier(candidates []Candidate, log logrus.FieldLogger) *Classifier {
	return &Classifier{
		candidates: candidates,
		log:        log,
	}
}

// Available reports whether any remote candidate is configured.
func (c *Classifier) Available() bool {
	return len(c.candidates) > 0
}

// Classify returns the first candidate reply that parses into a valid
// StructuredCommand. fc may be nil.
func (c *Classifier) Classify(ctx context.Context, text string, fc *FinancialContext) (command.StructuredCommand, error) {
	prompt := BuildCommandPrompt(text, fc)

	cmd, err := Cascade(ctx, c.log, c.candidates, prompt, ParseCommand)
	if err != nil {
		return command.StructuredCommand{}, err
	}

	if debugEnabled(c.log) {
		c.log.WithField("command", spew.Sdump(cmd)).Debug("Classifier.Classify.result")
	}
	return cmd, nil
}

// Narrate asks the cascade for a spoken summary of data. Any failure,
// including a missing credential, returns fallback.
func (c *Classifier) Narrate(ctx context.Context, kind AdviceKind, data any, language, fallback string) string {
	prompt, err := BuildAdvicePrompt(kind, data, language)
	if err != nil {
		c.log.WithError(err).Warn("Classifier.Narrate.prompt")
		return fallback
	}

	text, err := Cascade(ctx, c.log, c.candidates, prompt, parseNarration)
	if err != nil {
		c.log.WithError(err).Info("Classifier.Narrate.fallback")
		return fallback
	}
	return text
}

func debugEnabled(log logrus.FieldLogger) bool {
	switch l := log.(type) {
	case *logrus.Logger:
		return l.IsLevelEnabled(logrus.DebugLevel)
	case *logrus.Entry:
		return l.Logger.IsLevelEnabled(logrus.DebugLevel)
	}
	return false
}

func parseNarration(raw string) (string, error) {
	text := strings.TrimSpace(stripFences(raw))
	if text == "" {
		return "", errEmptyResponse
	}
	return text, nil
}
