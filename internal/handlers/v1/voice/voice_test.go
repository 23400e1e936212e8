package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/voice-ledger/internal/assistant"
	"github.com/carson-networks/voice-ledger/internal/classifier"
	"github.com/carson-networks/voice-ledger/internal/command"
	"github.com/carson-networks/voice-ledger/internal/executor"
	"github.com/carson-networks/voice-ledger/internal/phrases"
)

var (
	testOwner   = uuid.Must(uuid.FromString("0e7a5d3c-2f41-4b8e-a6c9-5d0b1e2f3a4b"))
	ownerHeader = "X-Owner-ID: " + testOwner.String()
)

type mockAssistant struct {
	mock.Mock
}

func (m *mockAssistant) HandleCommand(ctx context.Context, ownerID uuid.UUID, sessionID, text string, lang phrases.Language) (*assistant.Result, error) {
	args := m.Called(ctx, ownerID, sessionID, text, lang)
	result, _ := args.Get(0).(*assistant.Result)
	return result, args.Error(1)
}

func (m *mockAssistant) StartListening(ownerID uuid.UUID, sessionID string, lang phrases.Language) (assistant.SessionState, assistant.SpeechRequest, error) {
	args := m.Called(ownerID, sessionID, lang)
	return args.Get(0).(assistant.SessionState), args.Get(1).(assistant.SpeechRequest), args.Error(2)
}

func (m *mockAssistant) StopListening(ownerID uuid.UUID, sessionID string) (assistant.SessionState, error) {
	args := m.Called(ownerID, sessionID)
	return args.Get(0).(assistant.SessionState), args.Error(1)
}

func (m *mockAssistant) Transcript(ctx context.Context, ownerID uuid.UUID, sessionID, text string, final bool) (assistant.SessionState, *assistant.Result, error) {
	args := m.Called(ctx, ownerID, sessionID, text, final)
	result, _ := args.Get(1).(*assistant.Result)
	return args.Get(0).(assistant.SessionState), result, args.Error(2)
}

func newTestAPI(t *testing.T, a *mockAssistant) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCommandHandler(a).Register(api)
	NewSessionHandler(a).Register(api)
	return api
}

func amount(v float64) *float64 { return &v }

// -- command tests --

func TestHTTP_Command(t *testing.T) {
	a := new(mockAssistant)
	a.On("HandleCommand", mock.Anything, testOwner, "", "Spent 300 on food", phrases.English).
		Return(&assistant.Result{
			Transcript: "Spent 300 on food",
			Source:     assistant.SourceClassifier,
			Command:    command.StructuredCommand{Intent: command.AddValue, Category: command.CategoryExpense, Amount: amount(300)},
			Outcome:    executor.Outcome{Intent: command.AddValue, Category: command.CategoryExpense, Applied: true},
			Speech:     assistant.SpeechRequest{Text: "Added 300 to expense", Voice: "en-US"},
		}, nil)

	resp := newTestAPI(t, a).Post("/v1/command", ownerHeader, map[string]any{"text": "Spent 300 on food"})

	require.Equal(t, http.StatusOK, resp.Code)
	var body assistant.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Outcome.Applied)
	assert.Equal(t, command.AddValue, body.Command.Intent)
	assert.Equal(t, "en-US", body.Speech.Voice)
	a.AssertExpectations(t)
}

func TestHTTP_Command_Language(t *testing.T) {
	a := new(mockAssistant)
	a.On("HandleCommand", mock.Anything, testOwner, "kitchen", "ஐந்தாயிரம் செலவு", phrases.Tamil).
		Return(&assistant.Result{}, nil)

	resp := newTestAPI(t, a).Post("/v1/command", ownerHeader, map[string]any{
		"text": "ஐந்தாயிரம் செலவு", "language": "ta-IN", "sessionID": "kitchen",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	a.AssertExpectations(t)
}

func TestHTTP_Command_UnsupportedLanguage(t *testing.T) {
	a := new(mockAssistant)

	resp := newTestAPI(t, a).Post("/v1/command", ownerHeader, map[string]any{"text": "hello", "language": "fr-FR"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	a.AssertNotCalled(t, "HandleCommand", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHTTP_Command_ErrorStatuses(t *testing.T) {
	tests := map[string]struct {
		err    error
		status int
	}{
		"amount missing": {fmt.Errorf("%w: ADD_VALUE", executor.ErrAmountMissing), http.StatusUnprocessableEntity},
		"in flight":      {assistant.ErrCommandInFlight, http.StatusConflict},
		"cascade":        {&classifier.CascadeExhaustedError{Attempts: 6}, http.StatusBadGateway},
		"store failure":  {fmt.Errorf("insert: connection reset"), http.StatusInternalServerError},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			a := new(mockAssistant)
			a.On("HandleCommand", mock.Anything, testOwner, "", "spent on food", phrases.English).
				Return(&assistant.Result{Speech: assistant.SpeechRequest{Text: "Sorry, I could not do that.", Voice: "en-US"}}, tt.err)

			resp := newTestAPI(t, a).Post("/v1/command", ownerHeader, map[string]any{"text": "spent on food"})

			assert.Equal(t, tt.status, resp.Code)
			assert.Contains(t, resp.Body.String(), "Sorry, I could not do that.")
		})
	}
}

// -- session tests --

func TestHTTP_StartListening(t *testing.T) {
	a := new(mockAssistant)
	a.On("StartListening", testOwner, "s1", phrases.Hindi).
		Return(assistant.SessionState{ID: "s1", Listening: true, Language: phrases.Hindi},
			assistant.SpeechRequest{Text: "सुन रहा हूँ", Voice: "hi-IN"}, nil)

	resp := newTestAPI(t, a).Post("/v1/session/s1/listen", ownerHeader, map[string]any{"language": "hi-IN"})

	require.Equal(t, http.StatusOK, resp.Code)
	var body StartListeningResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Session.Listening)
	assert.Equal(t, "hi-IN", body.Speech.Voice)
}

func TestHTTP_StartListening_AlreadyListening(t *testing.T) {
	a := new(mockAssistant)
	a.On("StartListening", testOwner, "s1", phrases.English).
		Return(assistant.SessionState{ID: "s1", Listening: true}, assistant.SpeechRequest{}, assistant.ErrAlreadyListening)

	resp := newTestAPI(t, a).Post("/v1/session/s1/listen", ownerHeader, map[string]any{})

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestHTTP_StopListening(t *testing.T) {
	a := new(mockAssistant)
	a.On("StopListening", testOwner, "s1").Return(assistant.SessionState{ID: "s1"}, nil)

	resp := newTestAPI(t, a).Delete("/v1/session/s1/listen", ownerHeader)

	require.Equal(t, http.StatusOK, resp.Code)
	var body assistant.SessionState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Listening)
}

func TestHTTP_Transcript_Interim(t *testing.T) {
	a := new(mockAssistant)
	a.On("Transcript", mock.Anything, testOwner, "s1", "spent three", false).
		Return(assistant.SessionState{ID: "s1", Listening: true, Interim: "spent three"}, nil, nil)

	resp := newTestAPI(t, a).Post("/v1/session/s1/transcript", ownerHeader, map[string]any{"text": "spent three", "final": false})

	require.Equal(t, http.StatusOK, resp.Code)
	var body TranscriptResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "spent three", body.Session.Interim)
	assert.Nil(t, body.Result)
}

func TestHTTP_Transcript_Final(t *testing.T) {
	a := new(mockAssistant)
	a.On("Transcript", mock.Anything, testOwner, "s1", "my salary is 25000", true).
		Return(assistant.SessionState{ID: "s1", LastTranscript: "my salary is 25000"},
			&assistant.Result{Outcome: executor.Outcome{Intent: command.SetValue, Category: command.CategoryIncome, Applied: true}}, nil)

	resp := newTestAPI(t, a).Post("/v1/session/s1/transcript", ownerHeader, map[string]any{"text": "my salary is 25000", "final": true})

	require.Equal(t, http.StatusOK, resp.Code)
	var body TranscriptResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotNil(t, body.Result)
	assert.Equal(t, command.SetValue, body.Result.Outcome.Intent)
}

func TestHTTP_Transcript_InFlight(t *testing.T) {
	a := new(mockAssistant)
	a.On("Transcript", mock.Anything, testOwner, "s1", "spent 300", true).
		Return(assistant.SessionState{ID: "s1", InFlight: true}, nil, assistant.ErrCommandInFlight)

	resp := newTestAPI(t, a).Post("/v1/session/s1/transcript", ownerHeader, map[string]any{"text": "spent 300", "final": true})

	assert.Equal(t, http.StatusConflict, resp.Code)
}
