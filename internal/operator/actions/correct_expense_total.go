package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/voice-ledger/internal/storage"
	"github.com/carson-networks/voice-ledger/internal/storage/sqlconfig"
)

const AdjustmentCategory = "adjustment"

// correctionTolerance is the smallest delta worth writing, one currency unit.
var correctionTolerance = decimal.NewFromInt(1)

// CorrectExpenseTotal moves the owner's expense total for [PeriodStart,
// PeriodEnd) to Target by inserting one signed adjustment row. Nothing is
// written when the total is already within one unit of Target. The read and
// the insert run under the owner's write lock, so concurrent corrections for
// one owner settle on Target.
type CorrectExpenseTotal struct {
	OwnerID     uuid.UUID
	Target      decimal.Decimal
	PeriodStart time.Time
	PeriodEnd   time.Time
	Date        time.Time

	PreviousTotal decimal.Decimal
	Delta         decimal.Decimal
	CreatedID     uuid.UUID
	Applied       bool
}

func (c *CorrectExpenseTotal) Perform(ctx context.Context, store *storage.Storage) error {
	writer, err := store.Write(ctx, c.OwnerID)
	if err != nil {
		return err
	}
	defer func() { _ = writer.Rollback(ctx) }()

	current, err := writer.Transactions.SumAmounts(ctx, c.OwnerID, sqlconfig.KindExpense, c.PeriodStart, c.PeriodEnd)
	if err != nil {
		return err
	}
	c.PreviousTotal = current
	c.Delta = c.Target.Sub(current)

	if c.Delta.Abs().LessThan(correctionTolerance) {
		return writer.Commit(ctx)
	}

	id, err := writer.Transactions.Insert(ctx, &sqlconfig.TransactionCreate{
		OwnerID:         c.OwnerID,
		Kind:            sqlconfig.KindExpense,
		Amount:          c.Delta,
		Category:        AdjustmentCategory,
		Description:     "Correction to set total to " + c.Target.String(),
		TransactionDate: c.Date,
	})
	if err != nil {
		return err
	}
	if err := writer.Commit(ctx); err != nil {
		return err
	}
	c.CreatedID = id
	c.Applied = true
	return nil
}
