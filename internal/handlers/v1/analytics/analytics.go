package analytics

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/voice-ledger/internal/analytics"
	"github.com/carson-networks/voice-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/voice-ledger/internal/logging"
)

type GetAnalyticsInput struct {
	common.OwnerHeader
}

type AnalyticsResponse struct {
	Persona  analytics.Persona  `json:"persona"`
	Snapshot analytics.Snapshot `json:"snapshot"`
}

type GetAnalyticsOutput struct {
	Body AnalyticsResponse
}

type snapshotter interface {
	Snapshot(ctx context.Context, ownerID uuid.UUID) (analytics.Snapshot, analytics.Profile, error)
}

// Handler serves GET /v1/analytics.
type Handler struct {
	AnalyticsService snapshotter
}

func NewHandler(svc snapshotter) *Handler {
	return &Handler{AnalyticsService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-analytics",
		Method:      http.MethodGet,
		Path:        "/v1/analytics",
		Summary:     "Get analytics",
		Description: "Returns the owner's current financial snapshot: ratios, health score, risk, tips and chart series.",
		Tags:        []string{"Analytics"},
	}, h.handle)
}

func (h *Handler) handle(ctx context.Context, input *GetAnalyticsInput) (*GetAnalyticsOutput, error) {
	ownerID, err := input.Owner()
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("snapshotMs")
	}
	snap, profile, err := h.AnalyticsService.Snapshot(ctx, ownerID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, common.Error("failed to compute analytics", err)
	}

	if logData != nil {
		logData.AddData("healthScore", snap.HealthScore)
	}
	return &GetAnalyticsOutput{Body: AnalyticsResponse{Persona: profile.Persona, Snapshot: snap}}, nil
}
