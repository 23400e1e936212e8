package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// -- Formula tests --

func TestSavingsRate(t *testing.T) {
	assert.Equal(t, 0.0, SavingsRate(0, 500))
	assert.Equal(t, 0.0, SavingsRate(-10, 0))
	assert.Equal(t, 0.0, SavingsRate(1000, 1500))
	assert.InDelta(t, 25.0, SavingsRate(1000, 750), 1e-9)
}

func TestDebtToIncome_NonPositiveIncome(t *testing.T) {
	for _, income := range []float64{0, -1, -50000} {
		for _, emi := range []float64{0, 1, 12345.6} {
			assert.Equal(t, 100.0, DebtToIncome(emi, income))
		}
	}
	assert.InDelta(t, 20.0, DebtToIncome(10000, 50000), 1e-9)
}

func TestExpenseVolatility(t *testing.T) {
	assert.Equal(t, 0.0, ExpenseVolatility(nil))
	assert.Equal(t, 0.0, ExpenseVolatility([]float64{500}))
	assert.Equal(t, 0.0, ExpenseVolatility([]float64{0, 0, 0}))
	assert.Equal(t, 0.0, ExpenseVolatility([]float64{100, 100, 100}))
	// mean 50, population stddev 50
	assert.InDelta(t, 1.0, ExpenseVolatility([]float64{100, 0}), 1e-9)
	assert.Equal(t, 1.0, ExpenseVolatility([]float64{600, 0, 0, 0, 0, 0}), "capped at 1")
}

func TestIncomeStability(t *testing.T) {
	assert.Equal(t, 1.0, IncomeStability(nil))
	assert.Equal(t, 1.0, IncomeStability([]float64{40000}))
	assert.Equal(t, 0.0, IncomeStability([]float64{0, 0}))
	assert.Equal(t, 1.0, IncomeStability([]float64{30000, 30000, 30000}))
	assert.InDelta(t, 0.5, IncomeStability([]float64{150, 50}), 1e-9)
	assert.Equal(t, 0.0, IncomeStability([]float64{600, 0, 0, 0, 0, 0}))
}

func TestScoresStayInRange(t *testing.T) {
	rates := []float64{-50, 0, 4, 9.99, 10, 19.99, 20, 30, 100}
	dtis := []float64{0, 29.99, 30, 50, 50.01, 100, 250}
	volatilities := []float64{0, 0.3, 0.31, 0.5, 0.51, 1}
	stabilities := []float64{0, 0.49, 0.5, 0.7, 1}

	for _, rate := range rates {
		for _, dti := range dtis {
			for _, vol := range volatilities {
				for _, stab := range stabilities {
					health := HealthScore(rate, dti, vol, stab)
					assert.GreaterOrEqual(t, health, 0)
					assert.LessOrEqual(t, health, 100)

					stress := StressProbability(rate, dti, vol, stab)
					assert.GreaterOrEqual(t, stress, 0.0)
					assert.LessOrEqual(t, stress, 1.0)

					risk := DefaultRisk(dti, rate, health)
					assert.GreaterOrEqual(t, risk, 0.0)
					assert.LessOrEqual(t, risk, 1.0)
				}
			}
		}
	}
}

func TestHealthScore(t *testing.T) {
	assert.Equal(t, 100, HealthScore(30, 0, 0, 1))
	assert.Equal(t, 20, HealthScore(0, 100, 1, 1))
	// 15 + 24 + 16 + 16
	assert.Equal(t, 71, HealthScore(15, 20, 0.2, 0.8))
}

func TestStressProbability(t *testing.T) {
	assert.Equal(t, 0.0, StressProbability(25, 10, 0.1, 0.9))
	assert.InDelta(t, 1.0, StressProbability(5, 60, 0.6, 0.2), 1e-9)
	assert.InDelta(t, 0.5, StressProbability(15, 40, 0.4, 0.6), 1e-9)
}

func TestDefaultRisk(t *testing.T) {
	assert.InDelta(t, 0.15, DefaultRisk(10, 25, 80), 1e-9)
	assert.InDelta(t, 1.0, DefaultRisk(60, 5, 30), 1e-9)
	assert.InDelta(t, 0.5, DefaultRisk(40, 15, 50), 1e-9)
}

func TestRiskLevelFor(t *testing.T) {
	assert.Equal(t, RiskSafe, RiskLevelFor(29.99))
	assert.Equal(t, RiskCaution, RiskLevelFor(30))
	assert.Equal(t, RiskCaution, RiskLevelFor(49.99))
	assert.Equal(t, RiskHighRisk, RiskLevelFor(50))
	assert.Equal(t, "High Risk", RiskHighRisk.Label())
}

// -- Advice tests --

func TestWarnings_SavingsSeverity(t *testing.T) {
	tests := []struct {
		rate float64
		want *Severity
	}{
		{4, severityPtr(SeverityCritical)},
		{7, severityPtr(SeverityWarning)},
		{15, nil},
	}

	for _, tt := range tests {
		var got *Severity
		for _, w := range Warnings(tt.rate, 0, 0, 0) {
			if w.Type == WarningSavings {
				s := w.Severity
				got = &s
			}
		}
		assert.Equal(t, tt.want, got, "savings rate %v", tt.rate)
	}
}

func TestWarnings_AllRulesFire(t *testing.T) {
	warnings := Warnings(2, 75, 0.8, 5)
	assert.Len(t, warnings, 4)

	for _, w := range warnings {
		switch w.Type {
		case WarningVolatility:
			assert.Equal(t, SeverityWarning, w.Severity)
		default:
			assert.Equal(t, SeverityCritical, w.Severity, w.Type)
		}
	}
	assert.Equal(t, "EMI burden is 75.0% of income. This is dangerously high.", warnings[1].Message)
	assert.Equal(t, "You've taken 5 loans recently. Rapid borrowing increases financial risk.", warnings[3].Message)

	warnings = Warnings(50, 55, 0.1, 3)
	assert.Len(t, warnings, 2)
	assert.Equal(t, SeverityWarning, warnings[0].Severity)
	assert.Equal(t, SeverityWarning, warnings[1].Severity)

	assert.Empty(t, Warnings(50, 10, 0.1, 2))
}

func TestTips(t *testing.T) {
	tips := Tips(5, 60, 0.9, PersonaFarmer)
	assert.Len(t, tips, 3)
	assert.Contains(t, tips[0], "seed grain")
	assert.Contains(t, tips[1], "crop loans")
	assert.Contains(t, tips[2], "weather")

	tips = Tips(50, 10, 0.1, PersonaStudent)
	assert.Len(t, tips, 1)
	assert.Contains(t, tips[0], "healthy financial habits")

	tips = Tips(15, 40, 0.1, Persona("pilot"))
	assert.Len(t, tips, 2)
	assert.Contains(t, tips[0], "emergency fund")
	assert.Contains(t, tips[1], "reduce EMI commitments")
}

func severityPtr(s Severity) *Severity {
	return &s
}
