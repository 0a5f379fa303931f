// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/model"
)

// CampaignDependencies defines the interface for campaign generation.
type CampaignDependencies interface {
	GenerateCampaigns(ctx context.Context, month string, selected []model.CalendarEvent, serviceID string) ([]model.CampaignIdea, error)
}

// CampaignsHandler handles campaign generation requests.
type CampaignsHandler struct {
	deps CampaignDependencies
}

// NewCampaignsHandler creates a new campaigns handler.
func NewCampaignsHandler(deps CampaignDependencies) *CampaignsHandler {
	return &CampaignsHandler{deps: deps}
}

type generateRequest struct {
	Month          string                `json:"month"`
	SelectedEvents []model.CalendarEvent `json:"selectedEvents"`
	ServiceID      string                `json:"serviceId"`
}

func (req generateRequest) validate() error {
	if strings.TrimSpace(req.Month) == "" {
		return errors.New("missing month")
	}
	if req.ServiceID != "" {
		if _, ok := model.ServiceByID(req.ServiceID); !ok {
			return errors.New("unknown serviceId")
		}
	}
	return nil
}

type generateResponse struct {
	Campaigns []model.CampaignIdea `json:"campaigns"`
}

// HandleGenerate handles POST /api/generate-campaign requests.
func (h *CampaignsHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	const op = "api.generate_campaign"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	ideas, err := h.deps.GenerateCampaigns(r.Context(), req.Month, req.SelectedEvents, req.ServiceID)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{Campaigns: ideas})
}
