// Package analytics derives savings, debt, volatility, health and risk
// metrics from a user's transactions, loans and profile. Everything here is a
// pure function of its inputs.
package analytics

import "math"

// SentinelDTI is the debt-to-income reported when income is not positive.
const SentinelDTI = 100

func SavingsRate(income, expenses float64) float64 {
	if income <= 0 {
		return 0
	}
	return math.Max(0, (income-expenses)/income*100)
}

// DebtToIncome is total EMI as a percentage of monthly income.
func DebtToIncome(totalEMI, monthlyIncome float64) float64 {
	if monthlyIncome <= 0 {
		return SentinelDTI
	}
	return totalEMI / monthlyIncome * 100
}

// ExpenseVolatility is the coefficient of variation of monthly expense
// totals, capped at 1.
func ExpenseVolatility(monthly []float64) float64 {
	if len(monthly) < 2 {
		return 0
	}
	cv, ok := coefficientOfVariation(monthly)
	if !ok {
		return 0
	}
	return math.Min(1, cv)
}

// IncomeStability is 1 minus the coefficient of variation of monthly income
// totals, floored at 0.
func IncomeStability(monthly []float64) float64 {
	if len(monthly) < 2 {
		return 1
	}
	cv, ok := coefficientOfVariation(monthly)
	if !ok {
		return 0
	}
	return math.Max(0, 1-cv)
}

// coefficientOfVariation uses the population standard deviation. ok is false
// when the mean is zero.
func coefficientOfVariation(values []float64) (float64, bool) {
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0, false
	}

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance) / mean, true
}

// HealthScore combines the four factors into a 0-100 score.
func HealthScore(savingsRate, debtToIncome, expenseVolatility, incomeStability float64) int {
	savingsScore := math.Min(savingsRate/30, 1) * 30
	debtScore := math.Max(0, (100-debtToIncome)/100) * 30
	volatilityScore := math.Max(0, 1-expenseVolatility) * 20
	stabilityScore := incomeStability * 20

	total := savingsScore + debtScore + volatilityScore + stabilityScore
	return int(math.Round(math.Max(0, math.Min(100, total))))
}

// StressProbability sums independent banded contributions, capped at 1.
func StressProbability(savingsRate, debtToIncome, expenseVolatility, incomeStability float64) float64 {
	total := band(savingsRate < 10, savingsRate < 20, 0.3, 0.15, 0) +
		band(debtToIncome > 50, debtToIncome > 30, 0.3, 0.15, 0) +
		band(expenseVolatility > 0.5, expenseVolatility > 0.3, 0.2, 0.1, 0) +
		band(incomeStability < 0.5, incomeStability < 0.7, 0.2, 0.1, 0)
	return math.Min(1, total)
}

// DefaultRisk is the loan default likelihood in [0,1].
func DefaultRisk(debtToIncome, savingsRate float64, healthScore int) float64 {
	total := band(debtToIncome > 50, debtToIncome > 30, 0.4, 0.2, 0.05) +
		band(savingsRate < 10, savingsRate < 20, 0.3, 0.15, 0.05) +
		band(healthScore < 40, healthScore < 60, 0.3, 0.15, 0.05)
	return math.Min(1, total)
}

func band(high, medium bool, highValue, mediumValue, lowValue float64) float64 {
	switch {
	case high:
		return highValue
	case medium:
		return mediumValue
	}
	return lowValue
}

type RiskLevel string

const (
	RiskSafe     RiskLevel = "safe"
	RiskCaution  RiskLevel = "caution"
	RiskHighRisk RiskLevel = "high_risk"
)

// RiskLevelFor bands a debt-to-income ratio.
func RiskLevelFor(debtToIncome float64) RiskLevel {
	switch {
	case debtToIncome < 30:
		return RiskSafe
	case debtToIncome < 50:
		return RiskCaution
	}
	return RiskHighRisk
}

// Label is the display form ("High Risk").
func (r RiskLevel) Label() string {
	switch r {
	case RiskSafe:
		return "Safe"
	case RiskCaution:
		return "Caution"
	}
	return "High Risk"
}
