package loan

import (
	"time"

	"github.com/carson-networks/voice-ledger/internal/service"
	"github.com/carson-networks/voice-ledger/internal/simulator"
)

// Loan is the API response model for a saved loan.
type Loan struct {
	ID           string `json:"id" doc:"Loan UUID"`
	Principal    string `json:"principal" doc:"Decimal principal"`
	AnnualRate   string `json:"annualRate" doc:"Annual interest rate in percent"`
	TenureMonths int    `json:"tenureMonths" doc:"Tenure in months"`
	EMI          string `json:"emi" doc:"Monthly installment, rounded to the unit"`
	DebtToIncome string `json:"debtToIncome" doc:"Debt-to-income percentage when saved"`
	RiskScore    string `json:"riskScore" doc:"Risk score when saved"`
	RiskLevel    string `json:"riskLevel" doc:"safe, caution or high_risk"`
	CreatedAt    string `json:"createdAt" doc:"RFC3339 creation time"`
}

// TermsBody is shared by the save and simulate requests. Rate and tenure
// fall back to the simulator defaults when absent.
type TermsBody struct {
	Principal    float64  `json:"principal" required:"true" exclusiveMinimum:"0" doc:"Loan principal"`
	AnnualRate   *float64 `json:"annualRate,omitempty" minimum:"0" doc:"Annual interest rate in percent, defaults to 10"`
	TenureMonths *int     `json:"tenureMonths,omitempty" minimum:"1" doc:"Tenure in months, defaults to 60"`
}

func (b TermsBody) terms() simulator.Terms {
	return simulator.TermsWithDefaults(b.Principal, b.AnnualRate, b.TenureMonths)
}

func fromService(l service.Loan) Loan {
	return Loan{
		ID:           l.ID.String(),
		Principal:    l.Principal.String(),
		AnnualRate:   l.AnnualRate.String(),
		TenureMonths: l.TenureMonths,
		EMI:          l.EMI.String(),
		DebtToIncome: l.DebtToIncome.String(),
		RiskScore:    l.RiskScore.String(),
		RiskLevel:    string(l.RiskLevel),
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
	}
}
