package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/voice-ledger/internal/storage"
	"github.com/carson-networks/voice-ledger/internal/storage/sqlconfig"
)

type CreateLoan struct {
	Create sqlconfig.LoanCreate

	CreatedID uuid.UUID
}

func (c *CreateLoan) Perform(ctx context.Context, store *storage.Storage) error {
	id, err := store.Loans.Insert(ctx, &c.Create)
	if err != nil {
		return err
	}
	c.CreatedID = id
	return nil
}

type DeleteLoan struct {
	OwnerID uuid.UUID
	ID      uuid.UUID
}

func (d *DeleteLoan) Perform(ctx context.Context, store *storage.Storage) error {
	return store.Loans.Delete(ctx, d.OwnerID, d.ID)
}
