package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/voice-ledger/internal/storage"
	"github.com/carson-networks/voice-ledger/internal/storage/sqlconfig"
)

type CreateTransaction struct {
	Create sqlconfig.TransactionCreate

	// CreatedID is set once Perform succeeds.
	CreatedID uuid.UUID
}

func (c *CreateTransaction) Perform(ctx context.Context, store *storage.Storage) error {
	id, err := store.Transactions.Insert(ctx, &c.Create)
	if err != nil {
		return err
	}
	c.CreatedID = id
	return nil
}

type UpdateTransaction struct {
	OwnerID uuid.UUID
	ID      uuid.UUID
	Update  sqlconfig.TransactionUpdate
}

func (u *UpdateTransaction) Perform(ctx context.Context, store *storage.Storage) error {
	return store.Transactions.Update(ctx, u.OwnerID, u.ID, &u.Update)
}

type DeleteTransaction struct {
	OwnerID uuid.UUID
	ID      uuid.UUID
}

func (d *DeleteTransaction) Perform(ctx context.Context, store *storage.Storage) error {
	return store.Transactions.Delete(ctx, d.OwnerID, d.ID)
}
