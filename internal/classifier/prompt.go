package classifier

import (
	"encoding/json"
	"fmt"
	"strings"
)

// recentLimit is how many transactions are serialized into the prompt.
const recentLimit = 5

const commandPreamble = `You interpret financial commands spoken or typed by a user in any language
(English, Hindi, Tamil, Marwadi or a mix of them) and answer with one JSON object.

Decide the intent before doing anything else:
- SET_VALUE: the user states what a value is ("my income is 10000", "set income to 10000",
  "income equals 10000"). The value replaces the old one. Never add it.
- ADD_VALUE: the user adds, spends, earns or increases ("add income 1000", "spent 300",
  "I earned 200 today").
- SUBTRACT_VALUE: the user reduces, refunds or deducts an amount.
- QUERY_ONLY: the user asks for advice or information. Put the answer in "response".
- SIMULATE_LOAN: the user asks whether they can afford a loan of a given amount.

"expense is 300" is ADD_VALUE unless the user clearly talks about the total expense.
Understand amounts written as "10,000", "10000", "10k", "₹10,000", "1.5 lakh" or spoken as words.
Reply in the user's language in "response".

Output only this JSON object:
{
  "intent": "SET_VALUE | ADD_VALUE | SUBTRACT_VALUE | QUERY_ONLY | SIMULATE_LOAN",
  "category": "income | expense | savings | other | loan",
  "amount": number or null,
  "currency": "currency code or null",
  "language_detected": "language name",
  "confidence": number between 0 and 1,
  "response": "confirmation or answer in the user's language",
  "tag": "spending category such as food or rent, if mentioned",
  "rate": annual interest rate in percent or null,
  "tenure_months": loan tenure in months or null
}`

// FinancialContext is the user's current state as shown to the model.
type FinancialContext struct {
	Income      float64
	Expenses    float64
	Debt        float64
	SavingsRate float64
	HealthScore int
	Recent      []RecentTransaction
}

type RecentTransaction struct {
	Kind     string  `json:"type"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
}

// BuildCommandPrompt joins the preamble, the optional context and the user's
// text.
func BuildCommandPrompt(text string, fc *FinancialContext) string {
	var b strings.Builder
	b.WriteString(commandPreamble)
	b.WriteString("\n\n")

	if fc != nil {
		recent := fc.Recent
		if len(recent) > recentLimit {
			recent = recent[:recentLimit]
		}
		if recent == nil {
			recent = []RecentTransaction{}
		}
		encoded, _ := json.Marshal(recent)

		b.WriteString("CURRENT FINANCIAL CONTEXT:\n")
		fmt.Fprintf(&b, "Income: %.2f\n", fc.Income)
		fmt.Fprintf(&b, "Expenses: %.2f\n", fc.Expenses)
		fmt.Fprintf(&b, "Debt/Loans: %.2f\n", fc.Debt)
		fmt.Fprintf(&b, "Savings Rate: %.1f%%\n", fc.SavingsRate)
		fmt.Fprintf(&b, "Health Score: %d\n", fc.HealthScore)
		fmt.Fprintf(&b, "Recent Transactions: %s\n\n", encoded)
	}

	fmt.Fprintf(&b, "User Command: %q\n\nRespond with ONLY the JSON.", text)
	return b.String()
}

// AdviceKind selects the narration instructions.
type AdviceKind string

const (
	AdviceGeneral        AdviceKind = "general"
	AdviceLoanSimulation AdviceKind = "loan_simulation"
)

// BuildAdvicePrompt asks for a spoken summary of data in language.
func BuildAdvicePrompt(kind AdviceKind, data any, language string) (string, error) {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("classifier: encode advice data: %w", err)
	}

	instructions := "Keep it short (1-2 sentences)."
	if kind == AdviceLoanSimulation {
		instructions = "Give a complete spoken summary. Compare before and after for debt-to-income, " +
			"health score and stress risk. State the new EMI. Explain the risk level and read out every warning."
	}

	return fmt.Sprintf(`You are a financial assistant. The user speaks %s.
Turn this financial data into a helpful, natural spoken response in %s.
%s

Data:
%s

Response (text only, no markdown):`, language, language, instructions, encoded), nil
}
