package analytics

import "fmt"

type Persona string

const (
	PersonaStudent    Persona = "student"
	PersonaFarmer     Persona = "farmer"
	PersonaShopkeeper Persona = "shopkeeper"
	PersonaSalaried   Persona = "salaried"
)

func (p Persona) Valid() bool {
	switch p {
	case PersonaStudent, PersonaFarmer, PersonaShopkeeper, PersonaSalaried:
		return true
	}
	return false
}

// maxTips caps the tips returned by Tips.
const maxTips = 3

type personaPhrases struct {
	saveLow  string
	saveMed  string
	debtHigh string
	debtMed  string
	volatile string
	good     string
}

var personas = map[Persona]personaPhrases{
	PersonaFarmer: {
		saveLow:  "Like setting aside seed grain before consuming the harvest,",
		saveMed:  "You're saving some, like keeping reserve grain,",
		debtHigh: "Like taking too many crop loans before the harvest comes in,",
		debtMed:  "Like borrowing for fertilizer while still paying for seeds,",
		volatile: "Like unpredictable weather affecting your crop budget,",
		good:     "Like a well-irrigated, well-planned farm season,",
	},
	PersonaStudent: {
		saveLow:  "Like spending your entire semester stipend in the first month,",
		saveMed:  "You're managing like a careful student budget,",
		debtHigh: "Like taking an education loan on top of existing debt,",
		debtMed:  "Like managing tuition fees while paying for hostel,",
		volatile: "Like irregular freelance gigs making budgeting hard,",
		good:     "Like a well-planned semester budget with savings,",
	},
	PersonaShopkeeper: {
		saveLow:  "Like not keeping any cash reserve in the shop,",
		saveMed:  "Like keeping some stock buffer for slow days,",
		debtHigh: "Like taking vendor credit while still paying old suppliers,",
		debtMed:  "Like managing inventory costs while paying rent,",
		volatile: "Like seasonal sales making income unpredictable,",
		good:     "Like a shop with steady daily sales and good margins,",
	},
	PersonaSalaried: {
		saveLow:  "Like spending your entire paycheck before month-end,",
		saveMed:  "You're saving, but there's room to build a bigger emergency fund,",
		debtHigh: "Like having EMIs eat up most of your paycheck,",
		debtMed:  "Like managing EMIs while trying to save for goals,",
		volatile: "Like unexpected expenses throwing off your monthly budget,",
		good:     "Like a well-structured salary budget with automated savings,",
	},
}

// Tips returns up to three persona-flavored tips. Unknown personas read as
// salaried.
func Tips(savingsRate, debtToIncome, expenseVolatility float64, persona Persona) []string {
	phrases, ok := personas[persona]
	if !ok {
		phrases = personas[PersonaSalaried]
	}

	var tips []string
	switch {
	case savingsRate < 10:
		tips = append(tips, phrases.saveLow+" try to save at least 20% of your income.")
	case savingsRate < 20:
		tips = append(tips, phrases.saveMed+" aim for a 20-30% savings rate.")
	}

	switch {
	case debtToIncome > 50:
		tips = append(tips, phrases.debtHigh+" your debt burden is critical. Consider debt consolidation.")
	case debtToIncome > 30:
		tips = append(tips, phrases.debtMed+" try to reduce EMI commitments before taking new loans.")
	}

	if expenseVolatility > 0.5 {
		tips = append(tips, phrases.volatile+" create a fixed monthly budget to reduce spending swings.")
	}

	if len(tips) == 0 {
		tips = append(tips, phrases.good+" keep maintaining your healthy financial habits!")
	}
	if len(tips) > maxTips {
		tips = tips[:maxTips]
	}
	return tips
}

type WarningType string

const (
	WarningSavings    WarningType = "savings"
	WarningEMI        WarningType = "emi"
	WarningVolatility WarningType = "volatility"
	WarningBorrowing  WarningType = "borrowing"
)

type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

type Warning struct {
	Type     WarningType `json:"type"`
	Message  string      `json:"message"`
	Severity Severity    `json:"severity"`
}

// Warnings evaluates every rule independently and returns all that fire.
// emiBurden is EMI as a percentage of income.
func Warnings(savingsRate, emiBurden, expenseVolatility float64, recentLoans int) []Warning {
	var warnings []Warning

	if savingsRate < 10 {
		warnings = append(warnings, Warning{
			Type:     WarningSavings,
			Message:  fmt.Sprintf("Savings rate is critically low at %.1f%%. Aim for at least 20%%.", savingsRate),
			Severity: severity(savingsRate < 5),
		})
	}

	if emiBurden > 50 {
		warnings = append(warnings, Warning{
			Type:     WarningEMI,
			Message:  fmt.Sprintf("EMI burden is %.1f%% of income. This is dangerously high.", emiBurden),
			Severity: severity(emiBurden > 70),
		})
	}

	if expenseVolatility > 0.5 {
		warnings = append(warnings, Warning{
			Type:     WarningVolatility,
			Message:  "Your spending pattern is highly volatile. Consider a fixed monthly budget.",
			Severity: SeverityWarning,
		})
	}

	if recentLoans >= 3 {
		warnings = append(warnings, Warning{
			Type:     WarningBorrowing,
			Message:  fmt.Sprintf("You've taken %d loans recently. Rapid borrowing increases financial risk.", recentLoans),
			Severity: severity(recentLoans >= 5),
		})
	}

	return warnings
}

func severity(critical bool) Severity {
	if critical {
		return SeverityCritical
	}
	return SeverityWarning
}
