package service

import (
	"context"
	"encoding/binary"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/voice-ledger/internal/analytics"
	"github.com/carson-networks/voice-ledger/internal/classifier"
	"github.com/carson-networks/voice-ledger/internal/storage"
	"github.com/carson-networks/voice-ledger/internal/storage/sqlconfig"
)

const (
	// historyMonths matches the analytics trailing window.
	historyMonths = 6
	recentCount   = 5
)

// AnalyticsService loads the owner's records and derives the snapshot.
type AnalyticsService struct {
	storage *storage.Storage
	now     func() time.Time

	mu   sync.Mutex
	last *memo
}

type memo struct {
	ownerID     uuid.UUID
	fingerprint uint64
	snapshot    analytics.Snapshot
	profile     analytics.Profile
}

// inputs is everything one snapshot is computed from.
type inputs struct {
	transactions []*sqlconfig.Transaction
	loans        []*sqlconfig.Loan
	profile      *sqlconfig.Profile
	now          time.Time
}

func NewAnalyticsService(store *storage.Storage, now func() time.Time) *AnalyticsService {
	if now == nil {
		now = time.Now
	}
	return &AnalyticsService{storage: store, now: now}
}

// Snapshot recomputes the owner's analytics from current store state. The
// previous result is reused only when the inputs are identical.
func (s *AnalyticsService) Snapshot(ctx context.Context, ownerID uuid.UUID) (analytics.Snapshot, analytics.Profile, error) {
	in, err := s.load(ctx, ownerID)
	if err != nil {
		return analytics.Snapshot{}, analytics.Profile{}, err
	}
	snap, profile := s.compute(ownerID, in)
	return snap, profile, nil
}

// FinancialContext summarizes the owner's state for the classifier prompt.
func (s *AnalyticsService) FinancialContext(ctx context.Context, ownerID uuid.UUID) (*classifier.FinancialContext, error) {
	in, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	snap, _ := s.compute(ownerID, in)

	fc := &classifier.FinancialContext{
		Income:      snap.MonthlyIncome,
		Expenses:    snap.MonthlyExpenses,
		Debt:        snap.TotalEMI,
		SavingsRate: snap.SavingsRate,
		HealthScore: snap.HealthScore,
	}
	// Rows arrive newest first.
	for i, row := range in.transactions {
		if i == recentCount {
			break
		}
		fc.Recent = append(fc.Recent, classifier.RecentTransaction{
			Kind:     string(row.Kind),
			Amount:   row.Amount.InexactFloat64(),
			Category: row.Category,
		})
	}
	return fc, nil
}

func (s *AnalyticsService) load(ctx context.Context, ownerID uuid.UUID) (*inputs, error) {
	now := s.now().UTC()
	from := time.Date(now.Year(), now.Month()-historyMonths+1, 1, 0, 0, 0, 0, time.UTC)
	in := &inputs{now: now}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.storage.Transactions.List(gctx, &sqlconfig.TransactionFilter{OwnerID: ownerID, From: &from})
		in.transactions = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.storage.Loans.List(gctx, ownerID)
		in.loans = rows
		return err
	})
	g.Go(func() error {
		profile, err := s.storage.Profiles.Get(gctx, ownerID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		in.profile = profile
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *AnalyticsService) compute(ownerID uuid.UUID, in *inputs) (analytics.Snapshot, analytics.Profile) {
	fingerprint := in.fingerprint()

	s.mu.Lock()
	if s.last != nil && s.last.ownerID == ownerID && s.last.fingerprint == fingerprint {
		cached := s.last
		s.mu.Unlock()
		return cached.snapshot, cached.profile
	}
	s.mu.Unlock()

	profile := ProfileToAnalytics(in.profile)
	txns := make([]analytics.Transaction, 0, len(in.transactions))
	for _, row := range in.transactions {
		txns = append(txns, analytics.Transaction{
			Kind:     analytics.Kind(row.Kind),
			Amount:   row.Amount.InexactFloat64(),
			Category: row.Category,
			Date:     row.TransactionDate,
		})
	}
	loans := make([]analytics.Loan, 0, len(in.loans))
	for _, row := range in.loans {
		loans = append(loans, analytics.Loan{EMI: row.EMI.InexactFloat64(), CreatedAt: row.CreatedAt})
	}

	snap := analytics.Compute(txns, loans, profile, in.now)

	s.mu.Lock()
	s.last = &memo{ownerID: ownerID, fingerprint: fingerprint, snapshot: snap, profile: profile}
	s.mu.Unlock()
	return snap, profile
}

// ProfileToAnalytics converts a stored profile. A missing profile is the
// default salaried persona with no income.
func ProfileToAnalytics(p *sqlconfig.Profile) analytics.Profile {
	if p == nil {
		return analytics.Profile{Persona: analytics.PersonaSalaried}
	}
	persona := analytics.Persona(p.Persona)
	if !persona.Valid() {
		persona = analytics.PersonaSalaried
	}
	return analytics.Profile{Persona: persona, MonthlyIncome: p.MonthlyIncome.InexactFloat64()}
}

// fingerprint hashes every field the snapshot depends on, including the day,
// since the current month and daily series move with it.
func (in *inputs) fingerprint() uint64 {
	h := fnv.New64a()
	writeInt := func(v int64) {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	writeString := func(v string) {
		h.Write([]byte(v))
		h.Write([]byte{0})
	}

	y, m, d := in.now.Date()
	writeInt(int64(y*10000 + int(m)*100 + d))

	for _, row := range in.transactions {
		h.Write(row.ID.Bytes())
		writeString(string(row.Kind))
		writeString(row.Amount.String())
		writeString(row.Category)
		writeInt(row.TransactionDate.Unix())
	}
	writeString("loans")
	for _, row := range in.loans {
		h.Write(row.ID.Bytes())
		writeString(row.EMI.String())
		writeInt(row.CreatedAt.Unix())
	}
	if in.profile != nil {
		writeString(in.profile.Persona)
		writeString(in.profile.MonthlyIncome.String())
	}
	return h.Sum64()
}
