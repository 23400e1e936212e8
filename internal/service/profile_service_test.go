package service

import (
	"context"
	"testing"

	"github.com/aarondl/opt/omit"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/voice-ledger/internal/analytics"
	"github.com/carson-networks/voice-ledger/internal/phrases"
	"github.com/carson-networks/voice-ledger/internal/storage/sqlconfig"
)

func TestGetProfile_DefaultsWhenMissing(t *testing.T) {
	m := newMockStore(t)
	svc := NewProfileService(m.storage, m.delegator)

	m.profiles.EXPECT().Get(mock.Anything, testOwner).Return(nil, sqlconfig.ErrNotFound)

	profile, err := svc.GetProfile(context.Background(), testOwner)
	require.NoError(t, err)
	assert.Equal(t, analytics.PersonaSalaried, profile.Persona)
	assert.Equal(t, phrases.Default, profile.Language)
	assert.True(t, profile.MonthlyIncome.IsZero())
}

func TestUpdateProfile_Success(t *testing.T) {
	m := newMockStore(t)
	svc := NewProfileService(m.storage, m.delegator)

	m.profiles.EXPECT().Upsert(mock.Anything, testOwner, mock.MatchedBy(func(u *sqlconfig.ProfileUpdate) bool {
		lang, _ := u.Language.Get()
		persona, _ := u.Persona.Get()
		return lang == "hi-IN" && persona == "student" && u.MonthlyIncome.IsUnset()
	})).Return(&sqlconfig.Profile{OwnerID: testOwner, Persona: "student", Language: "hi-IN", MonthlyIncome: decimal.NewFromInt(8000)}, nil)

	profile, err := svc.UpdateProfile(context.Background(), testOwner, ProfileUpdate{
		Persona:  omit.From("student"),
		Language: omit.From("HI-in"),
	})
	require.NoError(t, err)
	assert.Equal(t, analytics.PersonaStudent, profile.Persona)
	assert.Equal(t, phrases.Hindi, profile.Language)
}

func TestUpdateProfile_Invalid(t *testing.T) {
	tests := map[string]ProfileUpdate{
		"persona":  {Persona: omit.From("astronaut")},
		"income":   {MonthlyIncome: omit.From(decimal.NewFromInt(-1))},
		"language": {Language: omit.From("fr-FR")},
	}
	for name, update := range tests {
		t.Run(name, func(t *testing.T) {
			m := newMockStore(t)
			svc := NewProfileService(m.storage, m.delegator)

			_, err := svc.UpdateProfile(context.Background(), testOwner, update)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
