package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/voice-ledger/internal/analytics"
	"github.com/carson-networks/voice-ledger/internal/phrases"
	"github.com/carson-networks/voice-ledger/internal/service"
)

var (
	testOwner   = uuid.Must(uuid.FromString("0e7a5d3c-2f41-4b8e-a6c9-5d0b1e2f3a4b"))
	ownerHeader = "X-Owner-ID: " + testOwner.String()
)

type mockProfileService struct {
	mock.Mock
}

func (m *mockProfileService) GetProfile(ctx context.Context, ownerID uuid.UUID) (service.Profile, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(service.Profile), args.Error(1)
}

func (m *mockProfileService) UpdateProfile(ctx context.Context, ownerID uuid.UUID, update service.ProfileUpdate) (service.Profile, error) {
	args := m.Called(ctx, ownerID, update)
	return args.Get(0).(service.Profile), args.Error(1)
}

func newTestAPI(t *testing.T, svc *mockProfileService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewHandler(svc).Register(api)
	return api
}

func TestParseUpdateProfileInput(t *testing.T) {
	income := "25000"
	persona := "farmer"
	update, err := parseUpdateProfileInput(&UpdateProfileInput{Body: UpdateProfileBody{
		MonthlyIncome: &income,
		Persona:       &persona,
	}})
	require.NoError(t, err)

	got, ok := update.MonthlyIncome.Get()
	assert.True(t, ok)
	assert.True(t, decimal.NewFromInt(25000).Equal(got))
	assert.Equal(t, "farmer", update.Persona.GetOr(""))
	assert.False(t, update.Language.IsSet())
}

func TestParseUpdateProfileInput_InvalidIncome(t *testing.T) {
	income := "a lot"
	_, err := parseUpdateProfileInput(&UpdateProfileInput{Body: UpdateProfileBody{MonthlyIncome: &income}})
	assert.Error(t, err)
}

func TestHTTP_GetProfile(t *testing.T) {
	svc := new(mockProfileService)
	svc.On("GetProfile", mock.Anything, testOwner).Return(service.Profile{
		OwnerID:       testOwner,
		Persona:       analytics.PersonaSalaried,
		MonthlyIncome: decimal.Zero,
		Language:      phrases.English,
	}, nil)

	resp := newTestAPI(t, svc).Get("/v1/profile", ownerHeader)

	require.Equal(t, http.StatusOK, resp.Code)
	var body Profile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testOwner.String(), body.OwnerID)
	assert.Equal(t, "salaried", body.Persona)
	assert.Equal(t, "en-US", body.Language)
}

func TestHTTP_UpdateProfile(t *testing.T) {
	svc := new(mockProfileService)
	svc.On("UpdateProfile", mock.Anything, testOwner, mock.MatchedBy(func(u service.ProfileUpdate) bool {
		return u.Language.GetOr("") == "ta-IN" && !u.MonthlyIncome.IsSet()
	})).Return(service.Profile{OwnerID: testOwner, Persona: analytics.PersonaStudent, Language: phrases.Tamil}, nil)

	resp := newTestAPI(t, svc).Put("/v1/profile", ownerHeader, map[string]any{"language": "ta-IN"})

	require.Equal(t, http.StatusOK, resp.Code)
	var body Profile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ta-IN", body.Language)
	svc.AssertExpectations(t)
}

func TestHTTP_UpdateProfile_Invalid(t *testing.T) {
	svc := new(mockProfileService)
	svc.On("UpdateProfile", mock.Anything, testOwner, mock.Anything).
		Return(service.Profile{}, fmt.Errorf("%w: unknown persona %q", service.ErrInvalidInput, "pirate"))

	resp := newTestAPI(t, svc).Put("/v1/profile", ownerHeader, map[string]any{"persona": "pirate"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
