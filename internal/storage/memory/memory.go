// Package memory holds in-process implementations of the record store tables,
// used for local runs without Postgres and for service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/voice-ledger/internal/storage/sqlconfig"
)

var (
	_ sqlconfig.ITransactionTable = (*TransactionsTable)(nil)
	_ sqlconfig.ILoanTable        = (*LoansTable)(nil)
	_ sqlconfig.IProfileTable     = (*ProfilesTable)(nil)
)

// Clock returns the current time. Tables stamp CreatedAt with it.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

type TransactionsTable struct {
	mu    sync.RWMutex
	clock Clock
	rows  map[uuid.UUID]sqlconfig.Transaction
}

func NewTransactionsTable(clock Clock) *TransactionsTable {
	return &TransactionsTable{
		clock: clock,
		rows:  make(map[uuid.UUID]sqlconfig.Transaction),
	}
}

func (t *TransactionsTable) FindByID(_ context.Context, ownerID, id uuid.UUID) (*sqlconfig.Transaction, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok || row.OwnerID != ownerID {
		return nil, sqlconfig.ErrNotFound
	}
	return &row, nil
}

func (t *TransactionsTable) Insert(_ context.Context, create *sqlconfig.TransactionCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	now := t.clock.now()
	row := sqlconfig.Transaction{
		ID:              id,
		OwnerID:         create.OwnerID,
		Kind:            create.Kind,
		Amount:          create.Amount,
		Category:        create.Category,
		Description:     create.Description,
		TransactionDate: dateOf(create.TransactionDate),
		CreatedAt:       now,
	}
	if row.Category == "" {
		row.Category = sqlconfig.DefaultCategory
	}
	if create.TransactionDate.IsZero() {
		row.TransactionDate = dateOf(now)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[id] = row
	return id, nil
}

func (t *TransactionsTable) Update(_ context.Context, ownerID, id uuid.UUID, update *sqlconfig.TransactionUpdate) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.rows[id]
	if !ok || row.OwnerID != ownerID {
		return sqlconfig.ErrNotFound
	}
	if update == nil {
		return nil
	}

	if v, ok := update.Kind.Get(); ok {
		row.Kind = v
	}
	if v, ok := update.Amount.Get(); ok {
		row.Amount = v
	}
	if v, ok := update.Category.Get(); ok {
		if v == "" {
			v = sqlconfig.DefaultCategory
		}
		row.Category = v
	}
	if v, ok := update.Description.Get(); ok {
		row.Description = v
	}
	if v, ok := update.TransactionDate.Get(); ok {
		row.TransactionDate = dateOf(v)
	}
	t.rows[id] = row
	return nil
}

func (t *TransactionsTable) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.rows[id]
	if !ok || row.OwnerID != ownerID {
		return sqlconfig.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

// List mirrors the Postgres table, including fetching Limit+1 rows so callers
// can tell whether another page exists. A nil filter is an empty one, which
// matches only rows owned by uuid.Nil.
func (t *TransactionsTable) List(_ context.Context, filter *sqlconfig.TransactionFilter) ([]*sqlconfig.Transaction, error) {
	if filter == nil {
		filter = &sqlconfig.TransactionFilter{}
	}

	t.mu.RLock()
	var out []*sqlconfig.Transaction
	for _, row := range t.rows {
		if !matches(row, filter) {
			continue
		}
		copied := row
		out = append(out, &copied)
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit+1 {
		out = out[:filter.Limit+1]
	}
	return out, nil
}

func (t *TransactionsTable) SumAmounts(_ context.Context, ownerID uuid.UUID, kind sqlconfig.TransactionKind, from, to time.Time) (decimal.Decimal, error) {
	filter := &sqlconfig.TransactionFilter{OwnerID: ownerID, Kind: &kind, From: &from, To: &to}

	t.mu.RLock()
	defer t.mu.RUnlock()

	total := decimal.Zero
	for _, row := range t.rows {
		if matches(row, filter) {
			total = total.Add(row.Amount)
		}
	}
	return total, nil
}

func matches(row sqlconfig.Transaction, filter *sqlconfig.TransactionFilter) bool {
	switch {
	case row.OwnerID != filter.OwnerID:
		return false
	case filter.Kind != nil && row.Kind != *filter.Kind:
		return false
	case filter.From != nil && row.TransactionDate.Before(*filter.From):
		return false
	case filter.To != nil && !row.TransactionDate.Before(*filter.To):
		return false
	case filter.MaxCreationTime != nil && row.CreatedAt.After(*filter.MaxCreationTime):
		return false
	}
	return true
}

// dateOf truncates t to its UTC date, matching the DATE column.
func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type LoansTable struct {
	mu    sync.RWMutex
	clock Clock
	rows  map[uuid.UUID]sqlconfig.Loan
}

func NewLoansTable(clock Clock) *LoansTable {
	return &LoansTable{
		clock: clock,
		rows:  make(map[uuid.UUID]sqlconfig.Loan),
	}
}

func (t *LoansTable) Insert(_ context.Context, create *sqlconfig.LoanCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[id] = sqlconfig.Loan{
		ID:           id,
		OwnerID:      create.OwnerID,
		Principal:    create.Principal,
		AnnualRate:   create.AnnualRate,
		TenureMonths: create.TenureMonths,
		EMI:          create.EMI,
		DebtToIncome: create.DebtToIncome,
		RiskScore:    create.RiskScore,
		RiskLevel:    create.RiskLevel,
		CreatedAt:    t.clock.now(),
	}
	return id, nil
}

func (t *LoansTable) List(_ context.Context, ownerID uuid.UUID) ([]*sqlconfig.Loan, error) {
	t.mu.RLock()
	var out []*sqlconfig.Loan
	for _, row := range t.rows {
		if row.OwnerID == ownerID {
			copied := row
			out = append(out, &copied)
		}
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out, nil
}

func (t *LoansTable) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.rows[id]
	if !ok || row.OwnerID != ownerID {
		return sqlconfig.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

type ProfilesTable struct {
	mu    sync.RWMutex
	clock Clock
	rows  map[uuid.UUID]sqlconfig.Profile
}

func NewProfilesTable(clock Clock) *ProfilesTable {
	return &ProfilesTable{
		clock: clock,
		rows:  make(map[uuid.UUID]sqlconfig.Profile),
	}
}

func (t *ProfilesTable) Get(_ context.Context, ownerID uuid.UUID) (*sqlconfig.Profile, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[ownerID]
	if !ok {
		return nil, sqlconfig.ErrNotFound
	}
	return &row, nil
}

func (t *ProfilesTable) Upsert(_ context.Context, ownerID uuid.UUID, update *sqlconfig.ProfileUpdate) (*sqlconfig.Profile, error) {
	if update == nil {
		update = &sqlconfig.ProfileUpdate{}
	}
	now := t.clock.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.rows[ownerID]
	if !ok {
		row = sqlconfig.Profile{
			OwnerID:       ownerID,
			Persona:       sqlconfig.DefaultPersona,
			MonthlyIncome: decimal.Zero,
			Language:      sqlconfig.DefaultLanguage,
			CreatedAt:     now,
		}
	}
	if v, ok := update.DisplayName.Get(); ok {
		row.DisplayName = v
	}
	if v, ok := update.Persona.Get(); ok {
		row.Persona = v
	}
	if v, ok := update.MonthlyIncome.Get(); ok {
		row.MonthlyIncome = v
	}
	if v, ok := update.Language.Get(); ok {
		row.Language = v
	}
	row.UpdatedAt = now
	t.rows[ownerID] = row

	copied := row
	return &copied, nil
}
