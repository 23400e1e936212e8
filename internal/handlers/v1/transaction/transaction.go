package transaction

import (
	"time"

	"github.com/carson-networks/voice-ledger/internal/service"
)

const dateLayout = "2006-01-02"

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID              string `json:"id" doc:"Transaction UUID"`
	Kind            string `json:"kind" doc:"income or expense"`
	Amount          string `json:"amount" doc:"Signed decimal amount"`
	Category        string `json:"category" doc:"Category tag"`
	Description     string `json:"description" doc:"Free text description"`
	TransactionDate string `json:"transactionDate" doc:"Transaction date (YYYY-MM-DD)"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(tx service.Transaction) Transaction {
	return Transaction{
		ID:              tx.ID.String(),
		Kind:            string(tx.Kind),
		Amount:          tx.Amount.String(),
		Category:        tx.Category,
		Description:     tx.Description,
		TransactionDate: tx.TransactionDate.Format(dateLayout),
		CreatedAt:       tx.CreatedAt.Format(time.RFC3339),
	}
}
