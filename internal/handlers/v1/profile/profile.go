package profile

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/voice-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/voice-ledger/internal/service"
)

// Profile is the API model for an owner's profile.
type Profile struct {
	OwnerID       string `json:"ownerID" doc:"Owner UUID"`
	DisplayName   string `json:"displayName" doc:"Name shown in the dashboard"`
	Persona       string `json:"persona" doc:"student, farmer, shopkeeper or salaried"`
	MonthlyIncome string `json:"monthlyIncome" doc:"Declared monthly income"`
	Language      string `json:"language" doc:"Preferred language tag"`
}

type GetProfileInput struct {
	common.OwnerHeader
}

type ProfileOutput struct {
	Body Profile
}

// UpdateProfileBody holds the fields to change. Absent fields are left as they are.
type UpdateProfileBody struct {
	DisplayName   *string `json:"displayName,omitempty" maxLength:"100" doc:"Name shown in the dashboard"`
	Persona       *string `json:"persona,omitempty" doc:"student, farmer, shopkeeper or salaried"`
	MonthlyIncome *string `json:"monthlyIncome,omitempty" doc:"Declared monthly income"`
	Language      *string `json:"language,omitempty" doc:"Preferred language tag"`
}

type UpdateProfileInput struct {
	common.OwnerHeader
	Body UpdateProfileBody
}

type profileService interface {
	GetProfile(ctx context.Context, ownerID uuid.UUID) (service.Profile, error)
	UpdateProfile(ctx context.Context, ownerID uuid.UUID, update service.ProfileUpdate) (service.Profile, error)
}

// Handler serves GET and PUT /v1/profile.
type Handler struct {
	ProfileService profileService
}

func NewHandler(svc profileService) *Handler {
	return &Handler{ProfileService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/v1/profile",
		Summary:     "Get profile",
		Description: "Returns the owner's profile, or the defaults when none was saved.",
		Tags:        []string{"Profile"},
	}, h.get)

	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPut,
		Path:        "/v1/profile",
		Summary:     "Update profile",
		Tags:        []string{"Profile"},
	}, h.update)
}

func parseUpdateProfileInput(input *UpdateProfileInput) (service.ProfileUpdate, error) {
	var update service.ProfileUpdate
	if input.Body.DisplayName != nil {
		update.DisplayName = omit.From(*input.Body.DisplayName)
	}
	if input.Body.Persona != nil {
		update.Persona = omit.From(*input.Body.Persona)
	}
	if input.Body.MonthlyIncome != nil {
		income, err := decimal.NewFromString(*input.Body.MonthlyIncome)
		if err != nil {
			return update, huma.NewError(http.StatusBadRequest, "invalid monthlyIncome", err)
		}
		update.MonthlyIncome = omit.From(income)
	}
	if input.Body.Language != nil {
		update.Language = omit.From(*input.Body.Language)
	}
	return update, nil
}

func fromService(p service.Profile) Profile {
	return Profile{
		OwnerID:       p.OwnerID.String(),
		DisplayName:   p.DisplayName,
		Persona:       string(p.Persona),
		MonthlyIncome: p.MonthlyIncome.String(),
		Language:      string(p.Language),
	}
}

func (h *Handler) get(ctx context.Context, input *GetProfileInput) (*ProfileOutput, error) {
	ownerID, err := input.Owner()
	if err != nil {
		return nil, err
	}

	p, err := h.ProfileService.GetProfile(ctx, ownerID)
	if err != nil {
		return nil, common.Error("failed to get profile", err)
	}
	return &ProfileOutput{Body: fromService(p)}, nil
}

func (h *Handler) update(ctx context.Context, input *UpdateProfileInput) (*ProfileOutput, error) {
	ownerID, err := input.Owner()
	if err != nil {
		return nil, err
	}
	update, err := parseUpdateProfileInput(input)
	if err != nil {
		return nil, err
	}

	p, err := h.ProfileService.UpdateProfile(ctx, ownerID, update)
	if err != nil {
		return nil, common.Error("failed to update profile", err)
	}
	return &ProfileOutput{Body: fromService(p)}, nil
}
