package transaction

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/voice-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/voice-ledger/internal/logging"
	"github.com/carson-networks/voice-ledger/internal/service"
	"github.com/carson-networks/voice-ledger/internal/storage/sqlconfig"
)

const defaultCategory = "other"

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	Kind            string `json:"kind" required:"true" enum:"income,expense" doc:"income or expense"`
	Amount          string `json:"amount" required:"true" doc:"Decimal amount"`
	Category        string `json:"category,omitempty" doc:"Category tag, defaults to other"`
	Description     string `json:"description,omitempty" doc:"Free text description"`
	TransactionDate string `json:"transactionDate,omitempty" doc:"Transaction date (YYYY-MM-DD), defaults to today"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	common.OwnerHeader
	Body CreateTransactionBody
}

// CreateTransactionResponse is the response body for a created transaction.
type CreateTransactionResponse struct {
	ID string `json:"id" doc:"Created transaction UUID"`
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   CreateTransactionResponse
}

type transactionCreator interface {
	CreateTransaction(ctx context.Context, ownerID uuid.UUID, transaction service.Transaction) (uuid.UUID, error)
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
	now                func() time.Time
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc, now: time.Now}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/transaction",
		Summary:       "Create transaction",
		Description:   "Records an income or expense entry.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func parseCreateTransactionInput(input *CreateTransactionInput, now time.Time) (service.Transaction, error) {
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return service.Transaction{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	if amount.IsZero() {
		return service.Transaction{}, huma.NewError(http.StatusBadRequest, "amount must not be zero")
	}

	date := now.UTC().Truncate(24 * time.Hour)
	if input.Body.TransactionDate != "" {
		date, err = time.Parse(dateLayout, input.Body.TransactionDate)
		if err != nil {
			return service.Transaction{}, huma.NewError(http.StatusBadRequest, "invalid transactionDate", err)
		}
	}

	category := strings.TrimSpace(input.Body.Category)
	if category == "" {
		category = defaultCategory
	}

	return service.Transaction{
		Kind:            sqlconfig.TransactionKind(input.Body.Kind),
		Amount:          amount,
		Category:        category,
		Description:     input.Body.Description,
		TransactionDate: date,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	ownerID, err := input.Owner()
	if err != nil {
		return nil, err
	}
	tx, err := parseCreateTransactionInput(input, h.now())
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	id, err := h.TransactionService.CreateTransaction(ctx, ownerID, tx)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, common.Error("failed to create transaction", err)
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   CreateTransactionResponse{ID: id.String()},
	}, nil
}
