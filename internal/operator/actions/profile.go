package actions

import (
	"context"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/voice-ledger/internal/storage"
	"github.com/carson-networks/voice-ledger/internal/storage/sqlconfig"
)

type UpsertProfile struct {
	OwnerID uuid.UUID
	Update  sqlconfig.ProfileUpdate

	Profile *sqlconfig.Profile
}

func (u *UpsertProfile) Perform(ctx context.Context, store *storage.Storage) error {
	profile, err := store.Profiles.Upsert(ctx, u.OwnerID, &u.Update)
	if err != nil {
		return err
	}
	u.Profile = profile
	return nil
}

// SetMonthlyIncome replaces the profile income. It never touches transactions.
type SetMonthlyIncome struct {
	OwnerID uuid.UUID
	Income  decimal.Decimal

	Profile *sqlconfig.Profile
}

func (s *SetMonthlyIncome) Perform(ctx context.Context, store *storage.Storage) error {
	profile, err := store.Profiles.Upsert(ctx, s.OwnerID, &sqlconfig.ProfileUpdate{
		MonthlyIncome: omit.From(s.Income),
	})
	if err != nil {
		return err
	}
	s.Profile = profile
	return nil
}
