// Package assistant coordinates voice sessions: it owns per-session state,
// picks the remote or local interpreter, runs the safety gate and phrases the
// spoken reply.
package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/voice-ledger/internal/analytics"
	"github.com/carson-networks/voice-ledger/internal/classifier"
	"github.com/carson-networks/voice-ledger/internal/command"
	"github.com/carson-networks/voice-ledger/internal/executor"
	"github.com/carson-networks/voice-ledger/internal/normalizer"
	"github.com/carson-networks/voice-ledger/internal/phrases"
)

// DefaultSession is used for typed commands sent without a session id.
const DefaultSession = "default"

type Source string

const (
	SourceClassifier Source = "classifier"
	SourceNormalizer Source = "normalizer"
)

// Interpreter is the remote classifier.
type Interpreter interface {
	Classify(ctx context.Context, text string, fc *classifier.FinancialContext) (command.StructuredCommand, error)
}

// Insights supplies the classifier context and the snapshot used to answer
// queries.
type Insights interface {
	FinancialContext(ctx context.Context, ownerID uuid.UUID) (*classifier.FinancialContext, error)
	Snapshot(ctx context.Context, ownerID uuid.UUID) (analytics.Snapshot, analytics.Profile, error)
}

type Executor interface {
	Execute(ctx context.Context, ownerID uuid.UUID, cmd command.StructuredCommand) (executor.Outcome, error)
}

// SpeechRequest asks the voice layer to speak Text with the Voice engine.
type SpeechRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

// Result is everything produced by one command.
type Result struct {
	Transcript string                    `json:"transcript"`
	Source     Source                    `json:"source"`
	Command    command.StructuredCommand `json:"command"`
	Outcome    executor.Outcome          `json:"outcome"`
	Speech     SpeechRequest             `json:"speech"`
}

type Assistant struct {
	sessions    *registry
	interpreter Interpreter
	insights    Insights
	executor    Executor
	now         func() time.Time
	log         logrus.FieldLogger
}

// New builds an Assistant. interpreter may be nil, in which case every command
// is parsed locally.
func New(interpreter Interpreter, insights Insights, exec Executor, log logrus.FieldLogger) *Assistant {
	a := &Assistant{
		interpreter: interpreter,
		insights:    insights,
		executor:    exec,
		now:         time.Now,
		log:         log,
	}
	a.sessions = newRegistry(sessionIdleTTL, func() time.Time { return a.now() })
	return a
}

// StartListening opens a capture on the session. Only one capture may be
// active per session.
func (a *Assistant) StartListening(ownerID uuid.UUID, sessionID string, lang phrases.Language) (SessionState, SpeechRequest, error) {
	s := a.sessions.get(ownerID, sessionID, lang)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listening {
		return s.stateLocked(), SpeechRequest{}, ErrAlreadyListening
	}
	s.listening = true
	s.language = lang
	s.interim = ""
	s.updatedAt = a.now()

	return s.stateLocked(), speech(lang, phrases.Text(lang, phrases.ResponseListening)), nil
}

func (a *Assistant) StopListening(ownerID uuid.UUID, sessionID string) (SessionState, error) {
	s, ok := a.sessions.lookup(ownerID, sessionID)
	if !ok {
		return SessionState{}, ErrNotListening
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.listening {
		return s.stateLocked(), ErrNotListening
	}
	s.listening = false
	s.interim = ""
	s.updatedAt = a.now()
	return s.stateLocked(), nil
}

// Transcript records a transcript event. Interim events only update the
// session. A final event ends the capture and runs the command.
func (a *Assistant) Transcript(ctx context.Context, ownerID uuid.UUID, sessionID, text string, final bool) (SessionState, *Result, error) {
	s, ok := a.sessions.lookup(ownerID, sessionID)
	if !ok {
		return SessionState{}, nil, ErrNotListening
	}

	s.mu.Lock()
	if !s.listening {
		state := s.stateLocked()
		s.mu.Unlock()
		return state, nil, ErrNotListening
	}
	if !final {
		s.interim = text
		s.updatedAt = a.now()
		state := s.stateLocked()
		s.mu.Unlock()
		return state, nil, nil
	}
	if s.inFlight {
		state := s.stateLocked()
		s.mu.Unlock()
		return state, nil, ErrCommandInFlight
	}
	s.listening = false
	s.interim = ""
	s.lastTranscript = text
	lang := s.language
	s.mu.Unlock()

	result, err := a.run(ctx, s, ownerID, text, lang)

	s.mu.Lock()
	state := s.stateLocked()
	s.mu.Unlock()
	return state, result, err
}

// HandleCommand runs a typed command on the session, creating it if needed.
// On failure the returned Result, when not nil, still carries the reply to
// speak.
func (a *Assistant) HandleCommand(ctx context.Context, ownerID uuid.UUID, sessionID, text string, lang phrases.Language) (*Result, error) {
	if sessionID == "" {
		sessionID = DefaultSession
	}
	s := a.sessions.get(ownerID, sessionID, lang)

	s.mu.Lock()
	s.lastTranscript = text
	s.mu.Unlock()

	return a.run(ctx, s, ownerID, text, lang)
}

func (a *Assistant) run(ctx context.Context, s *session, ownerID uuid.UUID, text string, lang phrases.Language) (*Result, error) {
	if err := s.acquire(a.now()); err != nil {
		return nil, err
	}
	defer s.release(a.now())

	logger := a.log.WithFields(logrus.Fields{"ownerID": ownerID, "session": s.id, "language": lang})
	text = strings.TrimSpace(text)

	cmd, source, err := a.interpret(ctx, ownerID, text, lang)
	if err != nil {
		logger.WithError(err).Warn("Assistant.Run.interpret")
		return &Result{Transcript: text, Source: source, Speech: Reply(lang, cmd, err)}, err
	}
	logger = logger.WithFields(logrus.Fields{"source": source, "intent": cmd.Intent, "category": cmd.Category})

	outcome, err := a.executor.Execute(ctx, ownerID, cmd)
	if err != nil {
		logger.WithError(err).Warn("Assistant.Run.execute")
		return &Result{Transcript: text, Source: source, Command: cmd, Speech: Reply(lang, cmd, err)}, err
	}

	message := outcomeMessage(cmd, outcome)
	if cmd.Intent == command.QueryOnly && cmd.Response == "" {
		message, err = a.answer(ctx, ownerID, cmd)
		if err != nil {
			return nil, err
		}
	}

	logger.Info("Assistant.Run.complete")
	return &Result{
		Transcript: text,
		Source:     source,
		Command:    cmd,
		Outcome:    outcome,
		Speech:     speech(lang, message),
	}, nil
}

// interpret uses the remote classifier and falls back to the local tables
// only when no credential is configured. Any other classifier failure is
// returned so nothing is written from a guess.
func (a *Assistant) interpret(ctx context.Context, ownerID uuid.UUID, text string, lang phrases.Language) (command.StructuredCommand, Source, error) {
	if a.interpreter != nil {
		fc, err := a.insights.FinancialContext(ctx, ownerID)
		if err != nil {
			a.log.WithError(err).Warn("Assistant.Interpret.context")
			fc = nil
		}

		cmd, err := a.interpreter.Classify(ctx, text, fc)
		if err == nil {
			return cmd, SourceClassifier, nil
		}
		if !errors.Is(err, classifier.ErrMissingCredential) {
			return command.StructuredCommand{}, SourceClassifier, err
		}
	}

	cmd, err := normalizer.BuildCommand(text, lang)
	return cmd, SourceNormalizer, err
}

// answer phrases a QUERY_ONLY command that arrived without a response.
func (a *Assistant) answer(ctx context.Context, ownerID uuid.UUID, cmd command.StructuredCommand) (string, error) {
	if cmd.Query == command.QueryLoan {
		return loanPrompt, nil
	}

	snap, _, err := a.insights.Snapshot(ctx, ownerID)
	if err != nil {
		return "", err
	}
	if cmd.Query == command.QueryHealth {
		return healthMessage(snap), nil
	}
	return dashboardMessage(snap), nil
}

// Reply phrases a failed command for the voice layer.
func Reply(lang phrases.Language, cmd command.StructuredCommand, err error) SpeechRequest {
	switch {
	case errors.Is(err, executor.ErrAmountMissing):
		return speech(lang, amountMissingMessage(cmd))
	case errors.Is(err, normalizer.ErrUnknownCommand):
		return speech(lang, helpMessage)
	case errors.Is(err, ErrCommandInFlight):
		return speech(lang, phrases.Text(lang, phrases.ResponseProcessing))
	}
	return speech(lang, phrases.Text(lang, phrases.ResponseError))
}

func speech(lang phrases.Language, text string) SpeechRequest {
	return SpeechRequest{Text: text, Voice: lang.VoiceCode()}
}
