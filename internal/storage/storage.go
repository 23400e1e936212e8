package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/voice-ledger/internal/config"
	"github.com/carson-networks/voice-ledger/internal/storage/memory"
	"github.com/carson-networks/voice-ledger/internal/storage/sqlconfig"
)

// ErrNotFound is returned by every table when the addressed row is missing.
var ErrNotFound = sqlconfig.ErrNotFound

type Storage struct {
	DB           *sql.DB
	Transactions sqlconfig.ITransactionTable
	Loans        sqlconfig.ILoanTable
	Profiles     sqlconfig.IProfileTable

	locks ownerLocks
}

// New picks the backend named by cfg.Store.
func New(cfg *config.Config) (*Storage, error) {
	if cfg.Store == config.StoreMemory {
		return NewMemoryStorage(), nil
	}
	return NewStorage(cfg)
}

func NewStorage(cfg *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", cfg.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("storage: open postgres: %w", err)
	}

	exec := bob.NewDB(db)
	return &Storage{
		DB:           db,
		Transactions: sqlconfig.NewTransactionsTable(exec),
		Loans:        sqlconfig.NewLoansTable(exec),
		Profiles:     sqlconfig.NewProfilesTable(exec),
	}, nil
}

// NewMemoryStorage keeps everything in process. Nothing survives a restart.
func NewMemoryStorage() *Storage {
	return &Storage{
		Transactions: memory.NewTransactionsTable(nil),
		Loans:        memory.NewLoansTable(nil),
		Profiles:     memory.NewProfilesTable(nil),
	}
}

func (s *Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
