package analytics

import (
	"strconv"
	"time"
)

const (
	// trailingMonths is the window for volatility, stability and the monthly
	// series.
	trailingMonths = 6
	// recentLoanWindow is how far back a loan counts as recent borrowing.
	recentLoanWindow = 3
)

type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

type Transaction struct {
	Kind     Kind
	Amount   float64
	Category string
	Date     time.Time
}

type Loan struct {
	EMI       float64
	CreatedAt time.Time
}

type Profile struct {
	Persona       Persona
	MonthlyIncome float64
}

// Point is one entry of a chart series.
type Point struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type Snapshot struct {
	MonthlyIncome     float64            `json:"monthly_income"`
	MonthlyExpenses   float64            `json:"monthly_expenses"`
	SavingsRate       float64            `json:"savings_rate"`
	TotalEMI          float64            `json:"total_emi"`
	DebtToIncome      float64            `json:"debt_to_income"`
	ExpenseVolatility float64            `json:"expense_volatility"`
	IncomeStability   float64            `json:"income_stability"`
	HealthScore       int                `json:"health_score"`
	StressProbability float64            `json:"stress_probability"`
	DefaultRisk       float64            `json:"default_risk"`
	Tips              []string           `json:"tips"`
	Warnings          []Warning          `json:"warnings"`
	CategoryBreakdown map[string]float64 `json:"category_breakdown"`
	DailySpending     []Point            `json:"daily_spending"`
	MonthlySpending   []Point            `json:"monthly_spending"`
}

// Compute derives the snapshot as of now. The current period is the calendar
// month of now in UTC.
func Compute(txns []Transaction, loans []Loan, profile Profile, now time.Time) Snapshot {
	now = now.UTC()
	current := monthStart(now, 0)

	expenseByMonth := make([]float64, trailingMonths)
	incomeByMonth := make([]float64, trailingMonths)
	daysInMonth := current.AddDate(0, 1, -1).Day()
	daily := make([]float64, daysInMonth)
	breakdown := make(map[string]float64)

	var monthlyIncome, monthlyExpenses float64
	for _, t := range txns {
		offset := monthsBetween(t.Date.UTC(), now)
		if offset < 0 || offset >= trailingMonths {
			continue
		}

		switch t.Kind {
		case KindIncome:
			incomeByMonth[offset] += t.Amount
			if offset == 0 {
				monthlyIncome += t.Amount
			}
		case KindExpense:
			expenseByMonth[offset] += t.Amount
			if offset == 0 {
				monthlyExpenses += t.Amount
				breakdown[t.Category] += t.Amount
				daily[t.Date.UTC().Day()-1] += t.Amount
			}
		}
	}

	var totalEMI float64
	recentLoans := 0
	recentSince := now.AddDate(0, -recentLoanWindow, 0)
	for _, l := range loans {
		totalEMI += l.EMI
		if !l.CreatedAt.Before(recentSince) {
			recentLoans++
		}
	}

	dtiIncome := monthlyIncome
	if dtiIncome <= 0 {
		dtiIncome = profile.MonthlyIncome
	}
	if dtiIncome <= 0 {
		dtiIncome = 1
	}

	savingsRate := SavingsRate(monthlyIncome, monthlyExpenses)
	debtToIncome := DebtToIncome(totalEMI, dtiIncome)
	volatility := ExpenseVolatility(expenseByMonth)
	stability := IncomeStability(incomeByMonth)
	health := HealthScore(savingsRate, debtToIncome, volatility, stability)

	persona := profile.Persona
	if !persona.Valid() {
		persona = PersonaSalaried
	}

	snap := Snapshot{
		MonthlyIncome:     monthlyIncome,
		MonthlyExpenses:   monthlyExpenses,
		SavingsRate:       savingsRate,
		TotalEMI:          totalEMI,
		DebtToIncome:      debtToIncome,
		ExpenseVolatility: volatility,
		IncomeStability:   stability,
		HealthScore:       health,
		StressProbability: StressProbability(savingsRate, debtToIncome, volatility, stability),
		DefaultRisk:       DefaultRisk(debtToIncome, savingsRate, health),
		Tips:              Tips(savingsRate, debtToIncome, volatility, persona),
		Warnings:          Warnings(savingsRate, debtToIncome, volatility, recentLoans),
		CategoryBreakdown: breakdown,
		DailySpending:     make([]Point, daysInMonth),
		MonthlySpending:   make([]Point, trailingMonths),
	}

	if snap.Warnings == nil {
		snap.Warnings = []Warning{}
	}
	for day, amount := range daily {
		snap.DailySpending[day] = Point{Label: strconv.Itoa(day + 1), Amount: amount}
	}
	// Oldest month first.
	for offset := trailingMonths - 1; offset >= 0; offset-- {
		snap.MonthlySpending[trailingMonths-1-offset] = Point{
			Label:  monthStart(now, offset).Format("Jan"),
			Amount: expenseByMonth[offset],
		}
	}

	return snap
}

// monthStart returns the first instant of the month offset months before
// now's month.
func monthStart(now time.Time, offset int) time.Time {
	return time.Date(now.Year(), now.Month()-time.Month(offset), 1, 0, 0, 0, 0, time.UTC)
}

// monthsBetween counts whole calendar months from t's month to now's month.
// It is negative for future months.
func monthsBetween(t, now time.Time) int {
	return (now.Year()-t.Year())*12 + int(now.Month()-t.Month())
}
