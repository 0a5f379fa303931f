// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	repository "github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/adapters/repository"
	service "github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/app"
	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/calendar"
	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Calendar reads.
	Months(ctx context.Context) []string
	MonthEvents(ctx context.Context, month string) (calendar.MonthEvents, error)
	MonthICS(ctx context.Context, month string) (string, error)
	Services(ctx context.Context) []model.Service

	// Campaign generation.
	GenerateCampaigns(ctx context.Context, month string, selected []model.CalendarEvent, serviceID string) ([]model.CampaignIdea, error)

	// Accounts and sessions.
	SignUp(ctx context.Context, email, name, password string) (repository.User, string, error)
	SignIn(ctx context.Context, email, password string) (repository.User, string, error)
	SignOut(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (repository.User, error)

	// Saved campaigns.
	SaveCampaign(ctx context.Context, c repository.SavedCampaign) (repository.SavedCampaign, error)
	SavedCampaigns(ctx context.Context, userID string) ([]repository.SavedCampaign, error)
	DeleteCampaign(ctx context.Context, userID, campaignID string) error

	// Do-this-for-me tracking.
	TrackInteraction(ctx context.Context, userID, campaignTitle string, opened, submitted bool) (repository.Interaction, error)
	InteractionStatus(ctx context.Context, userID, campaignTitle string) (repository.Interaction, error)
	HasAnyOpened(ctx context.Context, userID string) (bool, error)
}

// User mirrors the account shape returned by auth operations.
type User = repository.User

// SavedCampaign mirrors the stored campaign shape.
type SavedCampaign = repository.SavedCampaign

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	monthsHandler    *MonthsHandler
	servicesHandler  *ServicesHandler
	authHandler      *AuthHandler
	campaignsHandler *CampaignsHandler
	savedHandler     *SavedCampaignsHandler
	trackingHandler  *TrackingHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		monthsHandler:    NewMonthsHandler(deps),
		servicesHandler:  NewServicesHandler(deps),
		authHandler:      NewAuthHandler(deps),
		campaignsHandler: NewCampaignsHandler(deps),
		savedHandler:     NewSavedCampaignsHandler(deps),
		trackingHandler:  NewTrackingHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux, deps Dependencies) {
	auth := AuthMiddleware(deps)

	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/months", MetricsMiddleware(s.monthsHandler.HandleListMonths, "months"))
	mux.HandleFunc("/api/months/", MetricsMiddleware(s.monthsHandler.HandleMonth, "month"))
	mux.HandleFunc("/api/services", MetricsMiddleware(s.servicesHandler.HandleListServices, "services"))
	mux.HandleFunc("/api/auth/signup", MetricsMiddleware(s.authHandler.HandleSignUp, "signup"))
	mux.HandleFunc("/api/auth/signin", MetricsMiddleware(s.authHandler.HandleSignIn, "signin"))
	mux.HandleFunc("/api/auth/signout", MetricsMiddleware(auth(s.authHandler.HandleSignOut), "signout"))
	mux.HandleFunc("/api/generate-campaign", MetricsMiddleware(auth(s.campaignsHandler.HandleGenerate), "generate_campaign"))
	mux.HandleFunc("/api/saved-campaigns", MetricsMiddleware(auth(s.savedHandler.HandleCollection), "saved_campaigns"))
	mux.HandleFunc("/api/saved-campaigns/", MetricsMiddleware(auth(s.savedHandler.HandleItem), "saved_campaign"))
	mux.HandleFunc("/api/do-this-for-me/global", MetricsMiddleware(auth(s.trackingHandler.HandleGlobal), "do_this_for_me_global"))
	mux.HandleFunc("/api/do-this-for-me/", MetricsMiddleware(auth(s.trackingHandler.HandleCampaign), "do_this_for_me"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates domain sentinels to their HTTP shape.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownMonth):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", Wrap(op, err))
	case errors.Is(err, service.ErrGeneration):
		writeError(w, http.StatusBadGateway, "generation_failed", Wrap(op, err))
	case errors.Is(err, repository.ErrDuplicate):
		writeError(w, http.StatusConflict, "conflict", Wrap(op, err))
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
