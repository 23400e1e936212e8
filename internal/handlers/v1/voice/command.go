package voice

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/voice-ledger/internal/assistant"
	"github.com/carson-networks/voice-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/voice-ledger/internal/logging"
)

type CommandBody struct {
	Text      string `json:"text" required:"true" minLength:"1" maxLength:"500" doc:"Utterance to interpret"`
	Language  string `json:"language,omitempty" doc:"Language tag (en-US, ta-IN, hi-IN, mar-IN), defaults to en-US"`
	SessionID string `json:"sessionID,omitempty" maxLength:"64" doc:"Session to run the command on, defaults to the owner's default session"`
}

type CommandInput struct {
	common.OwnerHeader
	Body CommandBody
}

type CommandOutput struct {
	Body *assistant.Result
}

// CommandHandler handles POST /v1/command.
type CommandHandler struct {
	Assistant voiceAssistant
}

func NewCommandHandler(a voiceAssistant) *CommandHandler {
	return &CommandHandler{Assistant: a}
}

func (h *CommandHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "run-command",
		Method:      http.MethodPost,
		Path:        "/v1/command",
		Summary:     "Run command",
		Description: "Interprets one text command, applies it through the safety gate and returns the outcome with the reply to speak.",
		Tags:        []string{"Assistant"},
	}, h.handle)
}

func (h *CommandHandler) handle(ctx context.Context, input *CommandInput) (*CommandOutput, error) {
	ownerID, err := input.Owner()
	if err != nil {
		return nil, err
	}
	lang, err := parseLanguage(input.Body.Language)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("handleCommandMs")
	}
	result, err := h.Assistant.HandleCommand(ctx, ownerID, input.Body.SessionID, input.Body.Text, lang)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, resultError(result, err)
	}

	if logData != nil {
		logData.AddData("intent", result.Command.Intent)
		logData.AddData("source", result.Source)
	}
	return &CommandOutput{Body: result}, nil
}
