package sqlconfig

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

const (
	DefaultPersona  = "salaried"
	DefaultLanguage = "en-US"
)

type Profile struct {
	OwnerID       uuid.UUID       `db:"owner_id"`
	DisplayName   string          `db:"display_name"`
	Persona       string          `db:"persona"`
	MonthlyIncome decimal.Decimal `db:"monthly_income"`
	Language      string          `db:"language"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// ProfileUpdate carries the fields to change. Upserting a missing profile
// fills unset fields with defaults.
type ProfileUpdate struct {
	DisplayName   omit.Val[string]
	Persona       omit.Val[string]
	MonthlyIncome omit.Val[decimal.Decimal]
	Language      omit.Val[string]
}

//go:generate mockery --name IProfileTable --output mock_IProfileTable.go
type IProfileTable interface {
	Get(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
	Upsert(ctx context.Context, ownerID uuid.UUID, update *ProfileUpdate) (*Profile, error)
}
