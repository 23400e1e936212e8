package assistant

import (
	"fmt"

	"github.com/carson-networks/voice-ledger/internal/analytics"
	"github.com/carson-networks/voice-ledger/internal/command"
	"github.com/carson-networks/voice-ledger/internal/executor"
)

const (
	helpMessage = `I didn't understand that. You can say things like "Add expense 2000 groceries", "My salary is 25000", "Check loan", or "How is my financial health".`
	loanPrompt  = "Opening the loan checker. Please enter the loan details to check eligibility."
)

func amountMissingMessage(cmd command.StructuredCommand) string {
	if cmd.Category == command.CategoryIncome {
		return `I could not detect the amount. Please say something like "My salary is 25000".`
	}
	return `I could not detect the amount. Please say something like "Add expense 2000 groceries".`
}

func dashboardMessage(snap analytics.Snapshot) string {
	return fmt.Sprintf(
		"Here's your dashboard. Your health score is %d out of 100. Monthly income is %.0f rupees and expenses are %.0f rupees.",
		snap.HealthScore, snap.MonthlyIncome, snap.MonthlyExpenses)
}

func healthMessage(snap analytics.Snapshot) string {
	text := fmt.Sprintf(
		"Your financial health score is %d out of 100. Savings rate is %.1f percent. Debt-to-income ratio is %.1f percent. Financial stress probability is %.0f percent.",
		snap.HealthScore, snap.SavingsRate, snap.DebtToIncome, snap.StressProbability*100)
	if len(snap.Tips) > 0 {
		text += " " + snap.Tips[0]
	}
	return text
}

// outcomeMessage is the sentence spoken after a successful command.
func outcomeMessage(cmd command.StructuredCommand, outcome executor.Outcome) string {
	if cmd.Response != "" && cmd.Intent != command.SimulateLoan {
		return cmd.Response
	}

	switch cmd.Intent {
	case command.AddValue:
		if cmd.Category == command.CategoryIncome {
			return fmt.Sprintf("Added income of %.0f rupees.", *cmd.Amount)
		}
		tag := cmd.Tag
		if tag == "" {
			tag = string(command.CategoryOther)
		}
		return fmt.Sprintf("Added expense of %.0f rupees for %s.", *cmd.Amount, tag)
	case command.SetValue:
		if cmd.Category == command.CategoryIncome {
			return fmt.Sprintf("Monthly income set to %.0f rupees.", *cmd.Amount)
		}
		if !outcome.Applied {
			return fmt.Sprintf("Your expenses are already %.0f rupees this month.", *cmd.Amount)
		}
		return fmt.Sprintf("Expenses for this month corrected to %.0f rupees.", *cmd.Amount)
	case command.SubtractValue:
		return fmt.Sprintf("Reduced %s by %.0f rupees.", cmd.Category, *cmd.Amount)
	}
	return outcome.Message
}
