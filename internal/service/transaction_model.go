package service

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/voice-ledger/internal/storage/sqlconfig"
)

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID              uuid.UUID
	Kind            sqlconfig.TransactionKind
	Amount          decimal.Decimal
	Category        string
	Description     string
	TransactionDate time.Time
	CreatedAt       time.Time
}

// TransactionUpdate carries the fields to change.
type TransactionUpdate struct {
	Kind            omit.Val[sqlconfig.TransactionKind]
	Amount          omit.Val[decimal.Decimal]
	Category        omit.Val[string]
	Description     omit.Val[string]
	TransactionDate omit.Val[time.Time]
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

func transactionFromStorage(row *sqlconfig.Transaction) Transaction {
	return Transaction{
		ID:              row.ID,
		Kind:            row.Kind,
		Amount:          row.Amount,
		Category:        row.Category,
		Description:     row.Description,
		TransactionDate: row.TransactionDate,
		CreatedAt:       row.CreatedAt,
	}
}
