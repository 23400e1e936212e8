package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"

	"github.com/carson-networks/voice-ledger/internal/storage/sqlconfig"
)

// Writer holds one owner's write lock until Commit or Rollback. On Postgres
// its tables share a single transaction. The memory backend applies writes
// immediately, so Rollback there only releases the lock.
type Writer struct {
	Transactions sqlconfig.ITransactionTable
	Loans        sqlconfig.ILoanTable
	Profiles     sqlconfig.IProfileTable

	tx      *bob.Tx
	release func()
	done    bool
}

// Write opens a Writer serialised against every other Writer for ownerID.
// Callers must end it with Commit or Rollback.
func (s *Storage) Write(ctx context.Context, ownerID uuid.UUID) (*Writer, error) {
	if s.DB == nil {
		return &Writer{
			Transactions: s.Transactions,
			Loans:        s.Loans,
			Profiles:     s.Profiles,
			release:      s.locks.lock(ownerID),
		}, nil
	}

	tx, err := bob.NewDB(s.DB).BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: begin: %w", err)
	}
	lock := psql.RawQuery("SELECT pg_advisory_xact_lock(hashtext(?))", ownerID.String())
	if _, err := bob.Exec(ctx, tx, lock); err != nil {
		_ = tx.Rollback(ctx)
		return nil, fmt.Errorf("storage: lock owner: %w", err)
	}

	return &Writer{
		Transactions: sqlconfig.NewTransactionsTable(tx),
		Loans:        sqlconfig.NewLoansTable(tx),
		Profiles:     sqlconfig.NewProfilesTable(tx),
		tx:           &tx,
	}, nil
}

func (w *Writer) Commit(ctx context.Context) error {
	if w.done {
		return nil
	}
	w.done = true
	defer w.unlock()
	if w.tx == nil {
		return nil
	}
	return w.tx.Commit(ctx)
}

// Rollback is a no-op after Commit, so it can be deferred.
func (w *Writer) Rollback(ctx context.Context) error {
	if w.done {
		return nil
	}
	w.done = true
	defer w.unlock()
	if w.tx == nil {
		return nil
	}
	return w.tx.Rollback(ctx)
}

func (w *Writer) unlock() {
	if w.release != nil {
		w.release()
	}
}

// ownerLocks hands out one mutex per owner for the memory backend. Entries
// are dropped once nobody holds or waits on them.
type ownerLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*ownerLock
}

type ownerLock struct {
	sync.Mutex
	refs int
}

func (l *ownerLocks) lock(ownerID uuid.UUID) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[uuid.UUID]*ownerLock)
	}
	entry, ok := l.locks[ownerID]
	if !ok {
		entry = &ownerLock{}
		l.locks[ownerID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.Lock()
	return func() {
		entry.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, ownerID)
		}
		l.mu.Unlock()
	}
}
