package loan

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/voice-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/voice-ledger/internal/logging"
	"github.com/carson-networks/voice-ledger/internal/phrases"
	"github.com/carson-networks/voice-ledger/internal/service"
	"github.com/carson-networks/voice-ledger/internal/simulator"
)

type SaveLoanInput struct {
	common.OwnerHeader
	Body TermsBody
}

type SaveLoanOutput struct {
	Status int
	Body   Loan
}

type ListLoansInput struct {
	common.OwnerHeader
}

type ListLoansResponseBody struct {
	Loans []Loan `json:"loans" doc:"Saved loans, newest first"`
}

type ListLoansOutput struct {
	Body ListLoansResponseBody
}

type DeleteLoanInput struct {
	common.OwnerHeader
	ID string `path:"id" format:"uuid" doc:"Loan UUID"`
}

type DeleteLoanOutput struct{}

type SimulateLoanBody struct {
	TermsBody
	Language string `json:"language,omitempty" doc:"Language for the narration, defaults to en-US"`
}

type SimulateLoanInput struct {
	common.OwnerHeader
	Body SimulateLoanBody
}

type SimulateLoanOutput struct {
	Body simulator.Report
}

type loanService interface {
	SaveLoan(ctx context.Context, ownerID uuid.UUID, terms simulator.Terms) (service.Loan, error)
	ListLoans(ctx context.Context, ownerID uuid.UUID) ([]service.Loan, error)
	DeleteLoan(ctx context.Context, ownerID, id uuid.UUID) error
	Simulate(ctx context.Context, ownerID uuid.UUID, terms simulator.Terms, language string) (simulator.Report, error)
}

// Handler serves the /v1/loan endpoints.
type Handler struct {
	LoanService loanService
}

func NewHandler(svc loanService) *Handler {
	return &Handler{LoanService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "save-loan",
		Method:        http.MethodPost,
		Path:          "/v1/loan",
		Summary:       "Save loan",
		Description:   "Saves loan terms with the EMI and risk they carry against the current snapshot.",
		Tags:          []string{"Loans"},
		DefaultStatus: http.StatusCreated,
	}, h.save)

	huma.Register(api, huma.Operation{
		OperationID: "list-loans",
		Method:      http.MethodGet,
		Path:        "/v1/loan",
		Summary:     "List loans",
		Tags:        []string{"Loans"},
	}, h.list)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-loan",
		Method:        http.MethodDelete,
		Path:          "/v1/loan/{id}",
		Summary:       "Delete loan",
		Tags:          []string{"Loans"},
		DefaultStatus: http.StatusNoContent,
	}, h.delete)

	huma.Register(api, huma.Operation{
		OperationID: "simulate-loan",
		Method:      http.MethodPost,
		Path:        "/v1/loan/simulate",
		Summary:     "Simulate loan",
		Description: "Projects the loan against the current snapshot and narrates the result.",
		Tags:        []string{"Loans"},
	}, h.simulate)
}

func (h *Handler) save(ctx context.Context, input *SaveLoanInput) (*SaveLoanOutput, error) {
	ownerID, err := input.Owner()
	if err != nil {
		return nil, err
	}

	loan, err := h.LoanService.SaveLoan(ctx, ownerID, input.Body.terms())
	if err != nil {
		return nil, common.Error("failed to save loan", err)
	}
	return &SaveLoanOutput{Status: http.StatusCreated, Body: fromService(loan)}, nil
}

func (h *Handler) list(ctx context.Context, input *ListLoansInput) (*ListLoansOutput, error) {
	ownerID, err := input.Owner()
	if err != nil {
		return nil, err
	}

	loans, err := h.LoanService.ListLoans(ctx, ownerID)
	if err != nil {
		return nil, common.Error("failed to list loans", err)
	}

	resp := ListLoansResponseBody{Loans: make([]Loan, len(loans))}
	for i, l := range loans {
		resp.Loans[i] = fromService(l)
	}
	return &ListLoansOutput{Body: resp}, nil
}

func (h *Handler) delete(ctx context.Context, input *DeleteLoanInput) (*DeleteLoanOutput, error) {
	ownerID, err := input.Owner()
	if err != nil {
		return nil, err
	}
	id, err := common.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.LoanService.DeleteLoan(ctx, ownerID, id); err != nil {
		return nil, common.Error("failed to delete loan", err)
	}
	return &DeleteLoanOutput{}, nil
}

func (h *Handler) simulate(ctx context.Context, input *SimulateLoanInput) (*SimulateLoanOutput, error) {
	ownerID, err := input.Owner()
	if err != nil {
		return nil, err
	}
	lang := phrases.Default
	if input.Body.Language != "" {
		var ok bool
		if lang, ok = phrases.Parse(input.Body.Language); !ok {
			return nil, huma.NewError(http.StatusBadRequest, "unsupported language "+input.Body.Language)
		}
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("simulateLoanMs")
	}
	report, err := h.LoanService.Simulate(ctx, ownerID, input.Body.terms(), lang.Label())
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, common.Error("failed to simulate loan", err)
	}

	if logData != nil {
		logData.AddData("riskLevel", report.RiskLevel)
	}
	return &SimulateLoanOutput{Body: report}, nil
}
