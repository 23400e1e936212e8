package actions

import (
	"context"

	"github.com/carson-networks/voice-ledger/internal/storage"
)

// IAction is one mutation. Actions that read before they write take the
// owner's lock through storage.Write.
type IAction interface {
	Perform(ctx context.Context, store *storage.Storage) error
}
