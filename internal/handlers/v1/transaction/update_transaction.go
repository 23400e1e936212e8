package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/voice-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/voice-ledger/internal/service"
	"github.com/carson-networks/voice-ledger/internal/storage/sqlconfig"
)

// UpdateTransactionBody holds the fields to change. Absent fields are left as they are.
type UpdateTransactionBody struct {
	Kind            *string `json:"kind,omitempty" enum:"income,expense" doc:"income or expense"`
	Amount          *string `json:"amount,omitempty" doc:"Decimal amount"`
	Category        *string `json:"category,omitempty" doc:"Category tag"`
	Description     *string `json:"description,omitempty" doc:"Free text description"`
	TransactionDate *string `json:"transactionDate,omitempty" doc:"Transaction date (YYYY-MM-DD)"`
}

type UpdateTransactionInput struct {
	common.OwnerHeader
	ID   string `path:"id" format:"uuid" doc:"Transaction UUID"`
	Body UpdateTransactionBody
}

type UpdateTransactionOutput struct{}

type transactionUpdater interface {
	UpdateTransaction(ctx context.Context, ownerID, id uuid.UUID, update service.TransactionUpdate) error
}

// UpdateTransactionHandler handles PATCH /v1/transaction/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
}

func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "update-transaction",
		Method:        http.MethodPatch,
		Path:          "/v1/transaction/{id}",
		Summary:       "Update transaction",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func parseUpdateTransactionInput(input *UpdateTransactionInput) (service.TransactionUpdate, error) {
	var update service.TransactionUpdate
	body := input.Body

	if body.Kind != nil {
		update.Kind = omit.From(sqlconfig.TransactionKind(*body.Kind))
	}
	if body.Amount != nil {
		amount, err := decimal.NewFromString(*body.Amount)
		if err != nil {
			return update, huma.NewError(http.StatusBadRequest, "invalid amount", err)
		}
		if amount.IsZero() {
			return update, huma.NewError(http.StatusBadRequest, "amount must not be zero")
		}
		update.Amount = omit.From(amount)
	}
	if body.Category != nil {
		if *body.Category == "" {
			return update, huma.NewError(http.StatusBadRequest, "category must not be empty")
		}
		update.Category = omit.From(*body.Category)
	}
	if body.Description != nil {
		update.Description = omit.From(*body.Description)
	}
	if body.TransactionDate != nil {
		date, err := time.Parse(dateLayout, *body.TransactionDate)
		if err != nil {
			return update, huma.NewError(http.StatusBadRequest, "invalid transactionDate", err)
		}
		update.TransactionDate = omit.From(date)
	}
	return update, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	ownerID, err := input.Owner()
	if err != nil {
		return nil, err
	}
	id, err := common.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}
	update, err := parseUpdateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	if err := h.TransactionService.UpdateTransaction(ctx, ownerID, id, update); err != nil {
		return nil, common.Error("failed to update transaction", err)
	}
	return &UpdateTransactionOutput{}, nil
}
