package service

import (
	"context"
	"errors"
	"time"

	"github.com/carson-networks/voice-ledger/internal/operator/actions"
	"github.com/carson-networks/voice-ledger/internal/simulator"
	"github.com/carson-networks/voice-ledger/internal/storage"
)

// ErrInvalidInput marks a request the services refuse before touching the
// store.
var ErrInvalidInput = errors.New("invalid input")

// Processor executes a mutation. The operator delegator satisfies it.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Loan        *LoanService
	Profile     *ProfileService
	Analytics   *AnalyticsService
}

// NewService creates a new Service with the given storage. Reads go to store
// directly and writes go through processor.
func NewService(store *storage.Storage, processor Processor, sim *simulator.Simulator, defaultIncome float64, now func() time.Time) *Service {
	analyticsService := NewAnalyticsService(store, now)
	return &Service{
		Transaction: NewTransactionService(store, processor),
		Loan:        NewLoanService(store, processor, analyticsService, sim, defaultIncome),
		Profile:     NewProfileService(store, processor),
		Analytics:   analyticsService,
	}
}
