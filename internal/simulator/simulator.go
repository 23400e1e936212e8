// Package simulator projects the effect of a hypothetical loan on a user's
// current analytics snapshot.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/carson-networks/voice-ledger/internal/analytics"
	"github.com/carson-networks/voice-ledger/internal/classifier"
)

const (
	DefaultRate          = 10.0
	DefaultTenureMonths  = 60
	DefaultMonthlyIncome = 50000.0

	// incomeMultipleLimit flags loans above this many years of income.
	incomeMultipleLimit = 5
)

var ErrInvalidTerms = errors.New("invalid loan terms")

type Terms struct {
	Principal    float64 `json:"principal"`
	AnnualRate   float64 `json:"annual_rate"`
	TenureMonths int     `json:"tenure_months"`
}

func (t Terms) Validate() error {
	switch {
	case t.Principal <= 0 || math.IsNaN(t.Principal) || math.IsInf(t.Principal, 0):
		return fmt.Errorf("%w: principal must be positive", ErrInvalidTerms)
	case t.TenureMonths <= 0:
		return fmt.Errorf("%w: tenure must be positive", ErrInvalidTerms)
	case t.AnnualRate < 0 || math.IsNaN(t.AnnualRate):
		return fmt.Errorf("%w: rate must not be negative", ErrInvalidTerms)
	}
	return nil
}

// EMI is the fixed monthly installment of an amortized loan. tenureMonths
// must be positive.
func EMI(principal, annualRate float64, tenureMonths int) float64 {
	r := annualRate / 12 / 100
	if r == 0 {
		return principal / float64(tenureMonths)
	}
	factor := math.Pow(1+r, float64(tenureMonths))
	return principal * r * factor / (factor - 1)
}

// Side is one half of the before/after comparison.
type Side struct {
	TotalEMI          float64 `json:"total_emi"`
	DebtToIncome      float64 `json:"debt_to_income"`
	HealthScore       int     `json:"health_score"`
	StressProbability float64 `json:"stress_probability"`
}

type Report struct {
	Type            string              `json:"type"`
	Terms           Terms               `json:"terms"`
	EMI             float64             `json:"emi"`
	EffectiveIncome float64             `json:"effective_income"`
	Before          Side                `json:"before"`
	After           Side                `json:"after"`
	RiskLevel       analytics.RiskLevel `json:"risk_level"`
	RiskLabel       string              `json:"risk_label"`
	Warning         string              `json:"warning,omitempty"`
	Tips            []string            `json:"tips"`
	Narration       string              `json:"narration,omitempty"`
}

// Project computes the report without narration. Savings rate, volatility
// and stability are held at their current values.
func Project(terms Terms, snap analytics.Snapshot, profile analytics.Profile, defaultIncome float64) (Report, error) {
	if err := terms.Validate(); err != nil {
		return Report{}, err
	}

	income := snap.MonthlyIncome
	if income <= 0 {
		income = profile.MonthlyIncome
	}
	if income <= 0 {
		income = defaultIncome
	}

	emi := EMI(terms.Principal, terms.AnnualRate, terms.TenureMonths)
	newTotal := snap.TotalEMI + emi
	newDTI := analytics.DebtToIncome(newTotal, income)
	newHealth := analytics.HealthScore(snap.SavingsRate, newDTI, snap.ExpenseVolatility, snap.IncomeStability)
	risk := analytics.RiskLevelFor(newDTI)

	report := Report{
		Type:            string(classifier.AdviceLoanSimulation),
		Terms:           terms,
		EMI:             emi,
		EffectiveIncome: income,
		Before: Side{
			TotalEMI:          snap.TotalEMI,
			DebtToIncome:      snap.DebtToIncome,
			HealthScore:       snap.HealthScore,
			StressProbability: snap.StressProbability,
		},
		After: Side{
			TotalEMI:          newTotal,
			DebtToIncome:      newDTI,
			HealthScore:       newHealth,
			StressProbability: analytics.StressProbability(snap.SavingsRate, newDTI, snap.ExpenseVolatility, snap.IncomeStability),
		},
		RiskLevel: risk,
		RiskLabel: risk.Label(),
		Tips:      analytics.Tips(snap.SavingsRate, newDTI, snap.ExpenseVolatility, profile.Persona),
	}

	annualIncome := income * 12
	if terms.Principal > annualIncome*incomeMultipleLimit {
		report.Warning = fmt.Sprintf("Loan amount exceeds 5x your annual income (₹%.0f).", annualIncome)
	}
	return report, nil
}

// FallbackNarration is the sentence spoken when no narration can be
// generated.
func FallbackNarration(r Report) string {
	text := fmt.Sprintf(
		"Your EMI would be %.0f rupees per month. Debt-to-income ratio would go from %.1f to %.1f percent. Risk level: %s.",
		math.Round(r.EMI), r.Before.DebtToIncome, r.After.DebtToIncome, r.RiskLabel)
	if r.Warning != "" {
		text += " " + r.Warning
	}
	return text
}

// Narrator produces spoken advice, returning fallback when it cannot.
type Narrator interface {
	Narrate(ctx context.Context, kind classifier.AdviceKind, data any, language, fallback string) string
}

type Simulator struct {
	narrator      Narrator
	defaultIncome float64
}

func NewSimulator(narrator Narrator, defaultIncome float64) *Simulator {
	if defaultIncome <= 0 {
		defaultIncome = DefaultMonthlyIncome
	}
	return &Simulator{
		narrator:      narrator,
		defaultIncome: defaultIncome,
	}
}

// Simulate projects terms against snap and narrates the result in language.
func (s *Simulator) Simulate(ctx context.Context, terms Terms, snap analytics.Snapshot, profile analytics.Profile, language string) (Report, error) {
	report, err := Project(terms, snap, profile, s.defaultIncome)
	if err != nil {
		return Report{}, err
	}

	fallback := FallbackNarration(report)
	if s.narrator == nil {
		report.Narration = fallback
		return report, nil
	}
	report.Narration = s.narrator.Narrate(ctx, classifier.AdviceLoanSimulation, report, language, fallback)
	return report, nil
}

// TermsWithDefaults fills missing rate and tenure with the loan checker
// defaults.
func TermsWithDefaults(principal float64, rate *float64, tenure *int) Terms {
	terms := Terms{
		Principal:    principal,
		AnnualRate:   DefaultRate,
		TenureMonths: DefaultTenureMonths,
	}
	if rate != nil {
		terms.AnnualRate = *rate
	}
	if tenure != nil {
		terms.TenureMonths = *tenure
	}
	return terms
}
