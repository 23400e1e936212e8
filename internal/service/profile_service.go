package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/voice-ledger/internal/analytics"
	"github.com/carson-networks/voice-ledger/internal/operator/actions"
	"github.com/carson-networks/voice-ledger/internal/phrases"
	"github.com/carson-networks/voice-ledger/internal/storage"
	"github.com/carson-networks/voice-ledger/internal/storage/sqlconfig"
)

type Profile struct {
	OwnerID       uuid.UUID
	DisplayName   string
	Persona       analytics.Persona
	MonthlyIncome decimal.Decimal
	Language      phrases.Language
}

type ProfileUpdate struct {
	DisplayName   omit.Val[string]
	Persona       omit.Val[string]
	MonthlyIncome omit.Val[decimal.Decimal]
	Language      omit.Val[string]
}

type ProfileService struct {
	storage   *storage.Storage
	processor Processor
}

func NewProfileService(store *storage.Storage, processor Processor) *ProfileService {
	return &ProfileService{storage: store, processor: processor}
}

// GetProfile returns the owner's profile, or the defaults if none was saved.
func (s *ProfileService) GetProfile(ctx context.Context, ownerID uuid.UUID) (Profile, error) {
	row, err := s.storage.Profiles.Get(ctx, ownerID)
	if errors.Is(err, storage.ErrNotFound) {
		return Profile{
			OwnerID:       ownerID,
			Persona:       analytics.PersonaSalaried,
			MonthlyIncome: decimal.Zero,
			Language:      phrases.Default,
		}, nil
	}
	if err != nil {
		return Profile{}, err
	}
	return profileFromStorage(row), nil
}

// UpdateProfile validates and upserts the set fields.
func (s *ProfileService) UpdateProfile(ctx context.Context, ownerID uuid.UUID, update ProfileUpdate) (Profile, error) {
	stored := sqlconfig.ProfileUpdate{DisplayName: update.DisplayName}

	if v, ok := update.Persona.Get(); ok {
		if !analytics.Persona(v).Valid() {
			return Profile{}, fmt.Errorf("%w: unknown persona %q", ErrInvalidInput, v)
		}
		stored.Persona = omit.From(v)
	}
	if v, ok := update.MonthlyIncome.Get(); ok {
		if v.IsNegative() {
			return Profile{}, fmt.Errorf("%w: monthly income must not be negative", ErrInvalidInput)
		}
		stored.MonthlyIncome = omit.From(v)
	}
	if v, ok := update.Language.Get(); ok {
		lang, known := phrases.Parse(v)
		if !known {
			return Profile{}, fmt.Errorf("%w: unsupported language %q", ErrInvalidInput, v)
		}
		stored.Language = omit.From(string(lang))
	}

	action := &actions.UpsertProfile{OwnerID: ownerID, Update: stored}
	if err := s.processor.Process(ctx, action); err != nil {
		return Profile{}, err
	}
	return profileFromStorage(action.Profile), nil
}

func profileFromStorage(row *sqlconfig.Profile) Profile {
	lang, _ := phrases.Parse(row.Language)
	persona := analytics.Persona(row.Persona)
	if !persona.Valid() {
		persona = analytics.PersonaSalaried
	}
	return Profile{
		OwnerID:       row.OwnerID,
		DisplayName:   row.DisplayName,
		Persona:       persona,
		MonthlyIncome: row.MonthlyIncome,
		Language:      lang,
	}
}
