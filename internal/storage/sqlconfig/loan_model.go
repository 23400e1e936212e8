package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Loan is a saved loan. EMI, DebtToIncome, RiskScore and RiskLevel are the
// values computed when it was saved.
type Loan struct {
	ID           uuid.UUID       `db:"id"`
	OwnerID      uuid.UUID       `db:"owner_id"`
	Principal    decimal.Decimal `db:"principal"`
	AnnualRate   decimal.Decimal `db:"annual_rate"`
	TenureMonths int             `db:"tenure_months"`
	EMI          decimal.Decimal `db:"emi"`
	DebtToIncome decimal.Decimal `db:"debt_to_income"`
	RiskScore    decimal.Decimal `db:"risk_score"`
	RiskLevel    string          `db:"risk_level"`
	CreatedAt    time.Time       `db:"created_at"`
}

type LoanCreate struct {
	OwnerID      uuid.UUID
	Principal    decimal.Decimal
	AnnualRate   decimal.Decimal
	TenureMonths int
	EMI          decimal.Decimal
	DebtToIncome decimal.Decimal
	RiskScore    decimal.Decimal
	RiskLevel    string
}

//go:generate mockery --name ILoanTable --output mock_ILoanTable.go
type ILoanTable interface {
	Insert(ctx context.Context, create *LoanCreate) (uuid.UUID, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*Loan, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
