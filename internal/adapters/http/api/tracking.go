// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	repository "github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/adapters/repository"
)

// TrackingDependencies defines the interface for do-this-for-me tracking.
type TrackingDependencies interface {
	TrackInteraction(ctx context.Context, userID, campaignTitle string, opened, submitted bool) (repository.Interaction, error)
	InteractionStatus(ctx context.Context, userID, campaignTitle string) (repository.Interaction, error)
	HasAnyOpened(ctx context.Context, userID string) (bool, error)
}

// TrackingHandler handles do-this-for-me requests. All routes run behind
// AuthMiddleware.
type TrackingHandler struct {
	deps TrackingDependencies
}

// NewTrackingHandler creates a new tracking handler.
func NewTrackingHandler(deps TrackingDependencies) *TrackingHandler {
	return &TrackingHandler{deps: deps}
}

type trackRequest struct {
	HasOpened    bool `json:"hasOpened"`
	HasSubmitted bool `json:"hasSubmitted"`
}

type interactionResponse struct {
	CampaignTitle string `json:"campaignTitle"`
	HasOpened     bool   `json:"hasOpened"`
	HasSubmitted  bool   `json:"hasSubmitted"`
}

type globalResponse struct {
	HasAnyOpened bool `json:"hasAnyOpened"`
}

// HandleGlobal handles GET /api/do-this-for-me/global requests.
func (h *TrackingHandler) HandleGlobal(w http.ResponseWriter, r *http.Request) {
	const op = "api.do_this_for_me_global"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	opened, err := h.deps.HasAnyOpened(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, globalResponse{HasAnyOpened: opened})
}

// HandleCampaign handles GET and POST /api/do-this-for-me/{title} requests.
func (h *TrackingHandler) HandleCampaign(w http.ResponseWriter, r *http.Request) {
	const op = "api.do_this_for_me"
	title, err := url.PathUnescape(strings.TrimPrefix(r.URL.Path, "/api/do-this-for-me/"))
	if err != nil || title == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	switch r.Method {
	case http.MethodGet:
		in, err := h.deps.InteractionStatus(r.Context(), userID(r), title)
		if err != nil {
			writeServiceError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, interactionResponse{
			CampaignTitle: title,
			HasOpened:     in.HasOpened,
			HasSubmitted:  in.HasSubmitted,
		})
	case http.MethodPost:
		var req trackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		in, err := h.deps.TrackInteraction(r.Context(), userID(r), title, req.HasOpened, req.HasSubmitted)
		if err != nil {
			writeServiceError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, interactionResponse{
			CampaignTitle: in.CampaignTitle,
			HasOpened:     in.HasOpened,
			HasSubmitted:  in.HasSubmitted,
		})
	default:
		http.NotFound(w, r)
	}
}
