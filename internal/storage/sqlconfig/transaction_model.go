package sqlconfig

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

func (k TransactionKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// DefaultCategory is stored when a transaction is created without one.
const DefaultCategory = "other"

// Transaction represents a transaction record. Amount is signed: adjustments
// and refunds are stored as negative amounts of their kind.
type Transaction struct {
	ID              uuid.UUID       `db:"id"`
	OwnerID         uuid.UUID       `db:"owner_id"`
	Kind            TransactionKind `db:"kind"`
	Amount          decimal.Decimal `db:"amount"`
	Category        string          `db:"category"`
	Description     string          `db:"description"`
	TransactionDate time.Time       `db:"transaction_date"`
	CreatedAt       time.Time       `db:"created_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	OwnerID         uuid.UUID
	Kind            TransactionKind
	Amount          decimal.Decimal
	Category        string
	Description     string
	TransactionDate time.Time // defaults to now if zero
}

// TransactionUpdate carries the fields to change. Unset fields are left alone.
type TransactionUpdate struct {
	Kind            omit.Val[TransactionKind]
	Amount          omit.Val[decimal.Decimal]
	Category        omit.Val[string]
	Description     omit.Val[string]
	TransactionDate omit.Val[time.Time]
}

// Empty reports whether the update changes nothing.
func (u *TransactionUpdate) Empty() bool {
	return u.Kind.IsUnset() && u.Amount.IsUnset() && u.Category.IsUnset() &&
		u.Description.IsUnset() && u.TransactionDate.IsUnset()
}

// TransactionFilter specifies filters for listing transactions.
type TransactionFilter struct {
	OwnerID         uuid.UUID
	Kind            *TransactionKind
	From            *time.Time // inclusive, on transaction_date
	To              *time.Time // exclusive, on transaction_date
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// ITransactionTable defines the interface for transaction storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
//
//go:generate mockery --name ITransactionTable --output mock_ITransactionTable.go
type ITransactionTable interface {
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, update *TransactionUpdate) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	SumAmounts(ctx context.Context, ownerID uuid.UUID, kind TransactionKind, from, to time.Time) (decimal.Decimal, error)
}
