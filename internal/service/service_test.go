package service

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/voice-ledger/internal/operator"
	"github.com/carson-networks/voice-ledger/internal/storage"
	"github.com/carson-networks/voice-ledger/internal/storage/sqlconfig"
)

var (
	testOwner = uuid.Must(uuid.FromString("c0a8012e-7b1d-4f36-8d4e-1d2f3a4b5c6d"))
	fixedNow  = time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
)

type mockStore struct {
	transactions *sqlconfig.MockITransactionTable
	loans        *sqlconfig.MockILoanTable
	profiles     *sqlconfig.MockIProfileTable
	storage      *storage.Storage
	delegator    *operator.OperatorDelegator
}

// newMockStore wires mock tables behind a running operator so writes travel
// the same path as in production.
func newMockStore(t *testing.T) *mockStore {
	t.Helper()
	m := &mockStore{
		transactions: sqlconfig.NewMockITransactionTable(t),
		loans:        sqlconfig.NewMockILoanTable(t),
		profiles:     sqlconfig.NewMockIProfileTable(t),
	}
	m.storage = &storage.Storage{Transactions: m.transactions, Loans: m.loans, Profiles: m.profiles}
	m.delegator = operator.NewOperatorDelegator(m.storage, 1)
	m.delegator.Start()
	t.Cleanup(m.delegator.Stop)
	return m
}

func clock() time.Time { return fixedNow }
