package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/voice-ledger/internal/operator/actions"
	"github.com/carson-networks/voice-ledger/internal/storage"
	"github.com/carson-networks/voice-ledger/internal/storage/sqlconfig"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage   *storage.Storage
	processor Processor
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, processor Processor) *TransactionService {
	return &TransactionService{storage: store, processor: processor}
}

// CreateTransaction creates a new transaction and returns its ID.
func (s *TransactionService) CreateTransaction(ctx context.Context, ownerID uuid.UUID, transaction Transaction) (uuid.UUID, error) {
	if !transaction.Kind.Valid() {
		return uuid.Nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, transaction.Kind)
	}

	action := &actions.CreateTransaction{Create: sqlconfig.TransactionCreate{
		OwnerID:         ownerID,
		Kind:            transaction.Kind,
		Amount:          transaction.Amount,
		Category:        transaction.Category,
		Description:     transaction.Description,
		TransactionDate: transaction.TransactionDate,
	}}
	if err := s.processor.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.CreatedID, nil
}

// UpdateTransaction changes the set fields of one of the owner's transactions.
func (s *TransactionService) UpdateTransaction(ctx context.Context, ownerID, id uuid.UUID, update TransactionUpdate) error {
	if kind, ok := update.Kind.Get(); ok && !kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, kind)
	}

	return s.processor.Process(ctx, &actions.UpdateTransaction{
		OwnerID: ownerID,
		ID:      id,
		Update: sqlconfig.TransactionUpdate{
			Kind:            update.Kind,
			Amount:          update.Amount,
			Category:        update.Category,
			Description:     update.Description,
			TransactionDate: update.TransactionDate,
		},
	})
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.processor.Process(ctx, &actions.DeleteTransaction{OwnerID: ownerID, ID: id})
}

// ListTransactions returns a page of transactions using cursor-based pagination.
func (s *TransactionService) ListTransactions(ctx context.Context, ownerID uuid.UUID, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	}
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}

	filter := &sqlconfig.TransactionFilter{
		OwnerID:         ownerID,
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}

	rows, err := s.storage.Transactions.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := rows[0].CreatedAt
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	convertedTransactions := make([]Transaction, len(rows))
	for i, row := range rows {
		convertedTransactions[i] = transactionFromStorage(row)
	}

	return convertedTransactions, nextCursor, nil
}
