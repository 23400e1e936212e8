package service

import (
	"context"
	"math"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/voice-ledger/internal/analytics"
	"github.com/carson-networks/voice-ledger/internal/operator/actions"
	"github.com/carson-networks/voice-ledger/internal/simulator"
	"github.com/carson-networks/voice-ledger/internal/storage"
	"github.com/carson-networks/voice-ledger/internal/storage/sqlconfig"
)

type Loan struct {
	ID           uuid.UUID
	Principal    decimal.Decimal
	AnnualRate   decimal.Decimal
	TenureMonths int
	EMI          decimal.Decimal
	DebtToIncome decimal.Decimal
	RiskScore    decimal.Decimal
	RiskLevel    analytics.RiskLevel
	CreatedAt    time.Time
}

// LoanService saves, lists and simulates loans.
type LoanService struct {
	storage       *storage.Storage
	processor     Processor
	analytics     *AnalyticsService
	simulator     *simulator.Simulator
	defaultIncome float64
}

func NewLoanService(store *storage.Storage, processor Processor, analyticsService *AnalyticsService, sim *simulator.Simulator, defaultIncome float64) *LoanService {
	if sim == nil {
		sim = simulator.NewSimulator(nil, defaultIncome)
	}
	return &LoanService{
		storage:       store,
		processor:     processor,
		analytics:     analyticsService,
		simulator:     sim,
		defaultIncome: defaultIncome,
	}
}

// Simulate projects terms against the owner's current snapshot.
func (s *LoanService) Simulate(ctx context.Context, ownerID uuid.UUID, terms simulator.Terms, language string) (simulator.Report, error) {
	if err := terms.Validate(); err != nil {
		return simulator.Report{}, err
	}
	snap, profile, err := s.analytics.Snapshot(ctx, ownerID)
	if err != nil {
		return simulator.Report{}, err
	}
	return s.simulator.Simulate(ctx, terms, snap, profile, language)
}

// SaveLoan records terms in the owner's loan history together with the EMI,
// DTI and risk label they produce today.
func (s *LoanService) SaveLoan(ctx context.Context, ownerID uuid.UUID, terms simulator.Terms) (Loan, error) {
	if err := terms.Validate(); err != nil {
		return Loan{}, err
	}
	snap, profile, err := s.analytics.Snapshot(ctx, ownerID)
	if err != nil {
		return Loan{}, err
	}
	report, err := simulator.Project(terms, snap, profile, s.defaultIncome)
	if err != nil {
		return Loan{}, err
	}

	dti := decimal.NewFromFloat(report.After.DebtToIncome).Round(2)
	action := &actions.CreateLoan{Create: sqlconfig.LoanCreate{
		OwnerID:      ownerID,
		Principal:    decimal.NewFromFloat(terms.Principal).Round(2),
		AnnualRate:   decimal.NewFromFloat(terms.AnnualRate).Round(3),
		TenureMonths: terms.TenureMonths,
		EMI:          decimal.NewFromFloat(math.Round(report.EMI)),
		DebtToIncome: dti,
		RiskScore:    dti,
		RiskLevel:    string(report.RiskLevel),
	}}
	if err := s.processor.Process(ctx, action); err != nil {
		return Loan{}, err
	}

	return Loan{
		ID:           action.CreatedID,
		Principal:    action.Create.Principal,
		AnnualRate:   action.Create.AnnualRate,
		TenureMonths: action.Create.TenureMonths,
		EMI:          action.Create.EMI,
		DebtToIncome: dti,
		RiskScore:    dti,
		RiskLevel:    report.RiskLevel,
		CreatedAt:    s.analytics.now().UTC(),
	}, nil
}

// ListLoans returns the owner's loans, most recent first.
func (s *LoanService) ListLoans(ctx context.Context, ownerID uuid.UUID) ([]Loan, error) {
	rows, err := s.storage.Loans.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	loans := make([]Loan, len(rows))
	for i, row := range rows {
		loans[i] = Loan{
			ID:           row.ID,
			Principal:    row.Principal,
			AnnualRate:   row.AnnualRate,
			TenureMonths: row.TenureMonths,
			EMI:          row.EMI,
			DebtToIncome: row.DebtToIncome,
			RiskScore:    row.RiskScore,
			RiskLevel:    analytics.RiskLevel(row.RiskLevel),
			CreatedAt:    row.CreatedAt,
		}
	}
	return loans, nil
}

func (s *LoanService) DeleteLoan(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.processor.Process(ctx, &actions.DeleteLoan{OwnerID: ownerID, ID: id})
}
