package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const defaultBusyTimeout = 5 * time.Second

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db          *sql.DB
	now         func() time.Time
	busyTimeout time.Duration
}

// NewSQLiteStore opens (creating if needed) the database at path and applies
// the schema.
func NewSQLiteStore(path string, opts ...Option) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{
		db:          db,
		now:         time.Now,
		busyTimeout: defaultBusyTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		fmt.Sprintf("PRAGMA busy_timeout = %d", s.busyTimeout.Milliseconds()),
	}
	for _, p := range pragmas {
		if _, err := s.db.Exec(p); err != nil {
			return fmt.Errorf("apply pragma: %w", err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		expires_at DATETIME NOT NULL
	);
	CREATE TABLE IF NOT EXISTS saved_campaigns (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		month TEXT NOT NULL,
		day INTEGER NOT NULL,
		year INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		UNIQUE(user_id, title, month, day, year)
	);
	CREATE TABLE IF NOT EXISTS interactions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		campaign_title TEXT NOT NULL,
		has_opened INTEGER NOT NULL DEFAULT 0,
		has_submitted INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME NOT NULL,
		UNIQUE(user_id, campaign_title)
	);
	CREATE INDEX IF NOT EXISTS idx_saved_campaigns_user ON saved_campaigns(user_id, created_at);
	CREATE INDEX IF NOT EXISTS idx_sessions_expiry ON sessions(expires_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// isUniqueViolation recognizes SQLite unique-constraint failures without
// binding to driver-internal error types.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (s *SQLiteStore) CreateUser(ctx context.Context, email, name, passwordHash string) (User, error) {
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    s.now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt)
	if isUniqueViolation(err) {
		return User{}, fmt.Errorf("user %q: %w", email, ErrDuplicate)
	}
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *SQLiteStore) UserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, name, password_hash, created_at FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, fmt.Errorf("user %q: %w", email, ErrNotFound)
	}
	if err != nil {
		return User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

func (s *SQLiteStore) CreateSession(ctx context.Context, userID, token string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)`,
		token, userID, expiresAt.UTC())
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SessionUser(ctx context.Context, token string) (User, error) {
	var u User
	var expiresAt time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT u.id, u.email, u.name, u.password_hash, u.created_at, s.expires_at
		 FROM sessions s JOIN users u ON u.id = s.user_id
		 WHERE s.token = ?`, token).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, fmt.Errorf("session: %w", ErrNotFound)
	}
	if err != nil {
		return User{}, fmt.Errorf("query session: %w", err)
	}
	if s.now().UTC().After(expiresAt) {
		// Expired tokens read as unknown; cleanup is opportunistic.
		_, _ = s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
		return User{}, fmt.Errorf("session expired: %w", ErrNotFound)
	}
	return u, nil
}

func (s *SQLiteStore) DeleteSession(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SaveCampaign(ctx context.Context, c SavedCampaign) (SavedCampaign, error) {
	c.ID = uuid.NewString()
	c.CreatedAt = s.now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO saved_campaigns (id, user_id, title, description, category, month, day, year, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Title, c.Description, c.Category, c.Month, c.Day, c.Year, c.CreatedAt)
	if isUniqueViolation(err) {
		return SavedCampaign{}, fmt.Errorf("campaign %q: %w", c.Title, ErrDuplicate)
	}
	if err != nil {
		return SavedCampaign{}, fmt.Errorf("save campaign: %w", err)
	}
	return c, nil
}

func (s *SQLiteStore) CampaignsForUser(ctx context.Context, userID string) ([]SavedCampaign, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, description, category, month, day, year, created_at
		 FROM saved_campaigns WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []SavedCampaign{}
	for rows.Next() {
		var c SavedCampaign
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.Description, &c.Category, &c.Month, &c.Day, &c.Year, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaigns: %w", err)
	}
	return campaigns, nil
}

func (s *SQLiteStore) DeleteCampaign(ctx context.Context, userID, campaignID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM saved_campaigns WHERE id = ? AND user_id = ?`, campaignID, userID)
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("campaign %q: %w", campaignID, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) Interaction(ctx context.Context, userID, campaignTitle string) (Interaction, error) {
	var in Interaction
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, campaign_title, has_opened, has_submitted, updated_at
		 FROM interactions WHERE user_id = ? AND campaign_title = ?`, userID, campaignTitle).
		Scan(&in.ID, &in.UserID, &in.CampaignTitle, &in.HasOpened, &in.HasSubmitted, &in.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Interaction{}, fmt.Errorf("interaction %q: %w", campaignTitle, ErrNotFound)
	}
	if err != nil {
		return Interaction{}, fmt.Errorf("query interaction: %w", err)
	}
	return in, nil
}

func (s *SQLiteStore) UpsertInteraction(ctx context.Context, userID, campaignTitle string, opened, submitted bool) (Interaction, error) {
	now := s.now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO interactions (id, user_id, campaign_title, has_opened, has_submitted, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, campaign_title) DO UPDATE SET
		   has_opened = MAX(has_opened, excluded.has_opened),
		   has_submitted = MAX(has_submitted, excluded.has_submitted),
		   updated_at = excluded.updated_at`,
		uuid.NewString(), userID, campaignTitle, opened, submitted, now)
	if err != nil {
		return Interaction{}, fmt.Errorf("upsert interaction: %w", err)
	}
	return s.Interaction(ctx, userID, campaignTitle)
}

func (s *SQLiteStore) HasAnyOpened(ctx context.Context, userID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM interactions WHERE user_id = ? AND has_opened = 1`, userID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query interactions: %w", err)
	}
	return n > 0, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
