// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// SavedCampaignDependencies defines the interface for saved-campaign
// operations.
type SavedCampaignDependencies interface {
	SaveCampaign(ctx context.Context, c SavedCampaign) (SavedCampaign, error)
	SavedCampaigns(ctx context.Context, userID string) ([]SavedCampaign, error)
	DeleteCampaign(ctx context.Context, userID, campaignID string) error
}

// SavedCampaignsHandler handles saved-campaign requests. All routes run
// behind AuthMiddleware.
type SavedCampaignsHandler struct {
	deps SavedCampaignDependencies
}

// NewSavedCampaignsHandler creates a new saved-campaigns handler.
func NewSavedCampaignsHandler(deps SavedCampaignDependencies) *SavedCampaignsHandler {
	return &SavedCampaignsHandler{deps: deps}
}

type saveCampaignRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Month       string `json:"month"`
	Day         int    `json:"day"`
	Year        int    `json:"year"`
}

func (req saveCampaignRequest) validate() error {
	switch {
	case strings.TrimSpace(req.Title) == "":
		return errors.New("missing title")
	case strings.TrimSpace(req.Month) == "":
		return errors.New("missing month")
	case req.Year == 0:
		return errors.New("missing year")
	}
	return nil
}

type savedCampaignsResponse struct {
	Campaigns []SavedCampaign `json:"campaigns"`
}

// HandleCollection handles GET and POST /api/saved-campaigns requests.
func (h *SavedCampaignsHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleSave(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *SavedCampaignsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_saved_campaigns"
	campaigns, err := h.deps.SavedCampaigns(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, savedCampaignsResponse{Campaigns: campaigns})
}

func (h *SavedCampaignsHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	const op = "api.save_campaign"
	var req saveCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	saved, err := h.deps.SaveCampaign(r.Context(), SavedCampaign{
		UserID:      userID(r),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Category:    req.Category,
		Month:       req.Month,
		Day:         req.Day,
		Year:        req.Year,
	})
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// HandleItem handles DELETE /api/saved-campaigns/{id} requests.
func (h *SavedCampaignsHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_saved_campaign"
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/saved-campaigns/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if err := h.deps.DeleteCampaign(r.Context(), userID(r), id); err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
