// Package voice exposes the assistant: typed commands and the listening
// session lifecycle driven by a speech front end.
package voice

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/voice-ledger/internal/assistant"
	"github.com/carson-networks/voice-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/voice-ledger/internal/phrases"
)

type voiceAssistant interface {
	HandleCommand(ctx context.Context, ownerID uuid.UUID, sessionID, text string, lang phrases.Language) (*assistant.Result, error)
	StartListening(ownerID uuid.UUID, sessionID string, lang phrases.Language) (assistant.SessionState, assistant.SpeechRequest, error)
	StopListening(ownerID uuid.UUID, sessionID string) (assistant.SessionState, error)
	Transcript(ctx context.Context, ownerID uuid.UUID, sessionID, text string, final bool) (assistant.SessionState, *assistant.Result, error)
}

func parseLanguage(tag string) (phrases.Language, error) {
	if tag == "" {
		return phrases.Default, nil
	}
	lang, ok := phrases.Parse(tag)
	if !ok {
		return "", huma.NewError(http.StatusBadRequest, "unsupported language "+tag)
	}
	return lang, nil
}

// resultError keeps the spoken reply as the error detail so a voice client
// can read it out.
func resultError(result *assistant.Result, err error) error {
	if result == nil || result.Speech.Text == "" {
		return common.Error("command failed", err)
	}
	return huma.NewError(common.Status(err), result.Speech.Text, err)
}
