// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/adapters/ics"
	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/adapters/llm"
	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/adapters/repository"
	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/config"
	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/calendar"
	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/model"
	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/pkg/logger"
	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/pkg/metrics"
)

// CampaignGenerator turns a month prompt payload into campaign ideas.
type CampaignGenerator interface {
	GenerateCampaigns(ctx context.Context, payload model.CampaignPromptPayload) ([]model.CampaignIdea, error)
}

// Service implements the API dependencies for the promotional calendar.
type Service struct {
	mu sync.RWMutex

	// Core components
	snapshot  *calendar.Snapshot
	store     repository.Store
	generator CampaignGenerator
	exporter  *ics.Exporter

	// Configuration
	cfg        *config.Config
	sessionTTL time.Duration

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore injects a persistence store, replacing the SQLite store the
// service would otherwise open on Start.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithCampaignGenerator injects a campaign generator, replacing the OpenAI
// client the service would otherwise build on Start.
func WithCampaignGenerator(g CampaignGenerator) Option {
	return func(s *Service) {
		if g != nil {
			s.generator = g
		}
	}
}

// WithSnapshot injects a pre-loaded calendar snapshot.
func WithSnapshot(snapshot *calendar.Snapshot) Option {
	return func(s *Service) {
		if snapshot != nil {
			s.snapshot = snapshot
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service from the loaded configuration.
func New(cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		cfg:        cfg,
		sessionTTL: time.Duration(cfg.SessionTTLHours) * time.Hour,
		logger:     nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the calendar snapshot and opens the remaining components that
// were not injected.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting calendar service...")

	if s.snapshot == nil {
		snapshot, err := calendar.Load(s.cfg.MonthlyCalendarPath(), s.cfg.PromotionalCalendarPath(), s.cfg.ImageMappingPath())
		if err != nil {
			return fmt.Errorf("load calendar snapshot: %w", err)
		}
		s.snapshot = snapshot
	}
	metrics.RecordSnapshotLoad()

	if s.store == nil {
		store, err := repository.NewSQLiteStore(s.cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		s.store = store
	}

	if s.generator == nil {
		s.generator = llm.New(s.cfg.OpenAIAPIKey,
			llm.WithBaseURL(s.cfg.OpenAIBaseURL),
			llm.WithModel(s.cfg.OpenAIModel),
			llm.WithTimeout(time.Duration(s.cfg.LLMTimeoutSeconds)*time.Second),
			llm.WithLogger(s.logger.Named("llm")),
		)
	}

	s.exporter = ics.New(s.cfg.CalendarYear)

	s.started = true
	s.logger.Info(ctx, "calendar service started",
		logger.Int("months", len(s.snapshot.MonthlyData)),
		logger.Int("promotionalEvents", len(s.snapshot.PromotionalEvents)),
		logger.Int("calendarYear", s.cfg.CalendarYear),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping calendar service...")

	if s.store != nil {
		_ = s.store.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "calendar service stopped")
}

// Months returns the month names present in the theme calendar.
func (s *Service) Months(ctx context.Context) []string {
	return calendar.AvailableMonths(s.snapshot)
}

// MonthEvents returns the merged view of one month. The lookup is
// case-insensitive; names that are not months at all fail with
// ErrUnknownMonth.
func (s *Service) MonthEvents(ctx context.Context, month string) (calendar.MonthEvents, error) {
	if !model.IsMonthName(month) {
		return calendar.MonthEvents{}, fmt.Errorf("%q: %w", month, ErrUnknownMonth)
	}
	metrics.RecordMonthRequest(model.FormatMonthName(month))
	return calendar.EventsForMonth(s.snapshot, month), nil
}

// MonthICS renders one month as an iCalendar document.
func (s *Service) MonthICS(ctx context.Context, month string) (string, error) {
	m, err := s.MonthEvents(ctx, month)
	if err != nil {
		return "", err
	}
	return s.exporter.MonthCalendar(m)
}

// Services returns the home-service catalog.
func (s *Service) Services(ctx context.Context) []model.Service {
	return model.Services
}

// GenerateCampaigns builds the month's prompt payload and asks the generator
// for campaign ideas. Selected events, when present, narrow the prompt to
// those dates.
func (s *Service) GenerateCampaigns(ctx context.Context, month string, selected []model.CalendarEvent, serviceID string) ([]model.CampaignIdea, error) {
	m, err := s.MonthEvents(ctx, month)
	if err != nil {
		return nil, err
	}

	payload := calendar.BuildCampaignPromptPayload(
		m.Month,
		m.Themes,
		calendar.MergedDaily(m),
		calendar.MergedHighlights(m),
		selected,
		serviceID,
	)

	start := time.Now()
	ideas, err := s.generator.GenerateCampaigns(ctx, payload)
	if err != nil {
		metrics.RecordCampaignGenerationFailure()
		s.logger.Error(ctx, "campaign generation failed",
			logger.String("month", m.Month),
			logger.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	metrics.RecordCampaignGenerated(float64(time.Since(start).Milliseconds()))
	return ideas, nil
}

// SignUp registers a new account and opens a session for it.
func (s *Service) SignUp(ctx context.Context, email, name, password string) (repository.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return repository.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, email, name, string(hash))
	if err != nil {
		return repository.User{}, "", err
	}

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return repository.User{}, "", err
	}
	s.logger.Info(ctx, "user registered", logger.String("userID", user.ID))
	return user, token, nil
}

// SignIn verifies credentials and opens a session.
func (s *Service) SignIn(ctx context.Context, email, password string) (repository.User, string, error) {
	user, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.RecordSignIn(false)
			return repository.User{}, "", ErrInvalidCredentials
		}
		return repository.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.RecordSignIn(false)
		return repository.User{}, "", ErrInvalidCredentials
	}

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return repository.User{}, "", err
	}
	metrics.RecordSignIn(true)
	return user, token, nil
}

// SignOut invalidates a session token.
func (s *Service) SignOut(ctx context.Context, token string) error {
	return s.store.DeleteSession(ctx, token)
}

// Authenticate resolves a bearer token to its user. Unknown and expired
// tokens fail with repository.ErrNotFound.
func (s *Service) Authenticate(ctx context.Context, token string) (repository.User, error) {
	return s.store.SessionUser(ctx, token)
}

func (s *Service) openSession(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	expiresAt := time.Now().Add(s.sessionTTL)
	if err := s.store.CreateSession(ctx, userID, token, expiresAt); err != nil {
		return "", err
	}
	return token, nil
}

// SaveCampaign pins a campaign to a user's collection.
func (s *Service) SaveCampaign(ctx context.Context, c repository.SavedCampaign) (repository.SavedCampaign, error) {
	saved, err := s.store.SaveCampaign(ctx, c)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			metrics.RecordCampaignSaveConflict()
		}
		return repository.SavedCampaign{}, err
	}
	metrics.RecordCampaignSaved()
	return saved, nil
}

// SavedCampaigns lists a user's collection, newest first.
func (s *Service) SavedCampaigns(ctx context.Context, userID string) ([]repository.SavedCampaign, error) {
	return s.store.CampaignsForUser(ctx, userID)
}

// DeleteCampaign removes a campaign from a user's collection.
func (s *Service) DeleteCampaign(ctx context.Context, userID, campaignID string) error {
	if err := s.store.DeleteCampaign(ctx, userID, campaignID); err != nil {
		return err
	}
	metrics.RecordCampaignDeleted()
	return nil
}

// TrackInteraction records that a user opened or submitted the
// do-this-for-me flow for a campaign title. Flags only ever turn on.
func (s *Service) TrackInteraction(ctx context.Context, userID, campaignTitle string, opened, submitted bool) (repository.Interaction, error) {
	return s.store.UpsertInteraction(ctx, userID, campaignTitle, opened, submitted)
}

// InteractionStatus returns the tracking record for one campaign title. A
// campaign the user never touched reports zero-valued flags rather than an
// error.
func (s *Service) InteractionStatus(ctx context.Context, userID, campaignTitle string) (repository.Interaction, error) {
	in, err := s.store.Interaction(ctx, userID, campaignTitle)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Interaction{UserID: userID, CampaignTitle: campaignTitle}, nil
	}
	return in, err
}

// HasAnyOpened reports whether the user ever opened the do-this-for-me flow.
func (s *Service) HasAnyOpened(ctx context.Context, userID string) (bool, error) {
	return s.store.HasAnyOpened(ctx, userID)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
	}
	if s.snapshot != nil {
		stats["months"] = len(s.snapshot.MonthlyData)
		stats["promotionalEvents"] = len(s.snapshot.PromotionalEvents)
	}
	return stats
}
