// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/calendar"
	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/model"
	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/pkg/metrics"
)

// MonthDependencies defines the interface for calendar read operations.
type MonthDependencies interface {
	Months(ctx context.Context) []string
	MonthEvents(ctx context.Context, month string) (calendar.MonthEvents, error)
	MonthICS(ctx context.Context, month string) (string, error)
}

// MonthsHandler handles calendar month requests.
type MonthsHandler struct {
	deps MonthDependencies
}

// NewMonthsHandler creates a new months handler.
func NewMonthsHandler(deps MonthDependencies) *MonthsHandler {
	return &MonthsHandler{deps: deps}
}

type monthsResponse struct {
	Months []string `json:"months"`
}

// monthResponse is the per-month read shape: the raw month record plus the
// merged event view the calendar UI renders.
type monthResponse struct {
	calendar.MonthEvents
	CombinedEvents []model.CombinedEvent         `json:"combinedEvents"`
	EventsByDay    map[int][]model.CombinedEvent `json:"eventsByDay"`
	ImagePath      string                        `json:"imagePath"`
}

// HandleListMonths handles GET /api/months requests.
func (h *MonthsHandler) HandleListMonths(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, monthsResponse{Months: h.deps.Months(r.Context())})
}

// HandleMonth handles GET /api/months/{month} and
// GET /api/months/{month}/calendar.ics requests.
func (h *MonthsHandler) HandleMonth(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_month"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/months/")
	wantICS := false
	if rest, ok := strings.CutSuffix(path, "/calendar.ics"); ok {
		path, wantICS = rest, true
	}
	month, err := url.PathUnescape(path)
	if err != nil || month == "" || strings.Contains(month, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	if wantICS {
		h.serveICS(w, r, month)
		return
	}

	m, err := h.deps.MonthEvents(r.Context(), month)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	imagePath := m.ImagePath
	if imagePath == "" {
		imagePath = model.MonthImagePath(m.Month)
	}
	combined := calendar.CombinedForMonth(m)
	metrics.RecordMergeDuplicates(len(m.Events) + len(m.HighlightedDates) + len(m.PromotionalEvents) - len(combined))
	writeJSON(w, http.StatusOK, monthResponse{
		MonthEvents:    m,
		CombinedEvents: combined,
		EventsByDay:    calendar.GroupByDay(combined),
		ImagePath:      imagePath,
	})
}

func (h *MonthsHandler) serveICS(w http.ResponseWriter, r *http.Request, month string) {
	const op = "api.get_month_ics"
	out, err := h.deps.MonthICS(r.Context(), month)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+strings.ToLower(month)+`-calendar.ics"`)
	_, _ = w.Write([]byte(out))
}
