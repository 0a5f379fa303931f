// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/model"
)

// ServiceDependencies defines the interface for the trade catalog.
type ServiceDependencies interface {
	Services(ctx context.Context) []model.Service
}

// ServicesHandler handles trade catalog requests.
type ServicesHandler struct {
	deps ServiceDependencies
}

// NewServicesHandler creates a new services handler.
func NewServicesHandler(deps ServiceDependencies) *ServicesHandler {
	return &ServicesHandler{deps: deps}
}

type servicesResponse struct {
	Services []model.Service `json:"services"`
}

// HandleListServices handles GET /api/services requests.
func (h *ServicesHandler) HandleListServices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, servicesResponse{Services: h.deps.Services(r.Context())})
}
