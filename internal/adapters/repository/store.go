// Package repository defines the persistence store interface and errors.
package repository

import (
	"context"
	"time"
)

// User is an authenticated account.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// SavedCampaign is a campaign idea a user pinned to their collection.
// Uniqueness is per (user, title, month, day, year).
type SavedCampaign struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Month       string    `json:"month"`
	Day         int       `json:"day"`
	Year        int       `json:"year"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Interaction tracks a user's "Do This For Me" engagement with one campaign
// title.
type Interaction struct {
	ID            string    `json:"id"`
	UserID        string    `json:"-"`
	CampaignTitle string    `json:"campaignTitle"`
	HasOpened     bool      `json:"hasOpened"`
	HasSubmitted  bool      `json:"hasSubmitted"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Store provides read/write access to users, sessions, saved campaigns and
// interaction tracking.
type Store interface {
	// CreateUser inserts a new account. Returns ErrDuplicate when the email
	// is already registered.
	CreateUser(ctx context.Context, email, name, passwordHash string) (User, error)

	// UserByEmail returns ErrNotFound for unknown addresses.
	UserByEmail(ctx context.Context, email string) (User, error)

	// CreateSession records an opaque bearer token for a user.
	CreateSession(ctx context.Context, userID, token string, expiresAt time.Time) error

	// SessionUser resolves a token to its user. Expired or unknown tokens
	// return ErrNotFound.
	SessionUser(ctx context.Context, token string) (User, error)

	// DeleteSession invalidates a token. Deleting an unknown token is not an
	// error.
	DeleteSession(ctx context.Context, token string) error

	// SaveCampaign inserts a saved campaign. Returns ErrDuplicate when the
	// (user, title, month, day, year) key already exists.
	SaveCampaign(ctx context.Context, c SavedCampaign) (SavedCampaign, error)

	// CampaignsForUser lists a user's saved campaigns, newest first.
	CampaignsForUser(ctx context.Context, userID string) ([]SavedCampaign, error)

	// DeleteCampaign removes a campaign owned by the user. Returns
	// ErrNotFound when it does not exist or belongs to someone else.
	DeleteCampaign(ctx context.Context, userID, campaignID string) error

	// Interaction returns the tracking record for a campaign title, or
	// ErrNotFound when the user never engaged with it.
	Interaction(ctx context.Context, userID, campaignTitle string) (Interaction, error)

	// UpsertInteraction creates or updates the tracking record, OR-ing the
	// boolean flags so an opened interaction never flips back.
	UpsertInteraction(ctx context.Context, userID, campaignTitle string, opened, submitted bool) (Interaction, error)

	// HasAnyOpened reports whether the user opened any interaction at all.
	HasAnyOpened(ctx context.Context, userID string) (bool, error)

	Close() error
}
