package voice

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/voice-ledger/internal/assistant"
	"github.com/carson-networks/voice-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/voice-ledger/internal/logging"
)

type StartListeningBody struct {
	Language string `json:"language,omitempty" doc:"Language tag for this capture, defaults to en-US"`
}

type StartListeningInput struct {
	common.OwnerHeader
	SessionID string `path:"sessionID" maxLength:"64" doc:"Session identifier chosen by the client"`
	Body      *StartListeningBody `required:"false"`
}

type StartListeningResponse struct {
	Session assistant.SessionState  `json:"session"`
	Speech  assistant.SpeechRequest `json:"speech"`
}

type StartListeningOutput struct {
	Body StartListeningResponse
}

type StopListeningInput struct {
	common.OwnerHeader
	SessionID string `path:"sessionID" maxLength:"64" doc:"Session identifier"`
}

type StopListeningOutput struct {
	Body assistant.SessionState
}

type TranscriptBody struct {
	Text  string `json:"text" required:"true" maxLength:"500" doc:"Recognized text"`
	Final bool   `json:"final" doc:"True for the final transcript of the capture"`
}

type TranscriptInput struct {
	common.OwnerHeader
	SessionID string `path:"sessionID" maxLength:"64" doc:"Session identifier"`
	Body      TranscriptBody
}

type TranscriptResponse struct {
	Session assistant.SessionState `json:"session"`
	Result  *assistant.Result      `json:"result,omitempty" doc:"Present for final transcripts"`
}

type TranscriptOutput struct {
	Body TranscriptResponse
}

// SessionHandler handles the /v1/session/{sessionID} endpoints.
type SessionHandler struct {
	Assistant voiceAssistant
}

func NewSessionHandler(a voiceAssistant) *SessionHandler {
	return &SessionHandler{Assistant: a}
}

func (h *SessionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "start-listening",
		Method:      http.MethodPost,
		Path:        "/v1/session/{sessionID}/listen",
		Summary:     "Start listening",
		Description: "Opens a capture on the session. Fails with 409 while a capture is already open.",
		Tags:        []string{"Assistant"},
	}, h.startListening)

	huma.Register(api, huma.Operation{
		OperationID: "stop-listening",
		Method:      http.MethodDelete,
		Path:        "/v1/session/{sessionID}/listen",
		Summary:     "Stop listening",
		Tags:        []string{"Assistant"},
	}, h.stopListening)

	huma.Register(api, huma.Operation{
		OperationID: "post-transcript",
		Method:      http.MethodPost,
		Path:        "/v1/session/{sessionID}/transcript",
		Summary:     "Post transcript",
		Description: "Records an interim transcript, or runs the command for a final one.",
		Tags:        []string{"Assistant"},
	}, h.transcript)
}

func (h *SessionHandler) startListening(ctx context.Context, input *StartListeningInput) (*StartListeningOutput, error) {
	ownerID, err := input.Owner()
	if err != nil {
		return nil, err
	}
	var tag string
	if input.Body != nil {
		tag = input.Body.Language
	}
	lang, err := parseLanguage(tag)
	if err != nil {
		return nil, err
	}

	state, speech, err := h.Assistant.StartListening(ownerID, input.SessionID, lang)
	if err != nil {
		return nil, common.Error("failed to start listening", err)
	}
	return &StartListeningOutput{Body: StartListeningResponse{Session: state, Speech: speech}}, nil
}

func (h *SessionHandler) stopListening(ctx context.Context, input *StopListeningInput) (*StopListeningOutput, error) {
	ownerID, err := input.Owner()
	if err != nil {
		return nil, err
	}

	state, err := h.Assistant.StopListening(ownerID, input.SessionID)
	if err != nil {
		return nil, common.Error("failed to stop listening", err)
	}
	return &StopListeningOutput{Body: state}, nil
}

func (h *SessionHandler) transcript(ctx context.Context, input *TranscriptInput) (*TranscriptOutput, error) {
	ownerID, err := input.Owner()
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("final", input.Body.Final)
	}

	state, result, err := h.Assistant.Transcript(ctx, ownerID, input.SessionID, input.Body.Text, input.Body.Final)
	if err != nil {
		return nil, resultError(result, err)
	}
	return &TranscriptOutput{Body: TranscriptResponse{Session: state, Result: result}}, nil
}
