package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("not found")

// Session is one signed-in admin's console session, including the API token
// pair the console holds on the admin's behalf.
type Session struct {
	ID           string
	UserID       int64
	Email        string
	Username     string
	Role         string
	AccessToken  string
	RefreshToken string
	AccessExpiry time.Time
	CreatedAt    time.Time
	LastSeenAt   time.Time
}

// SessionStore persists console sessions across restarts.
type SessionStore interface {
	PutSession(ctx context.Context, session Session) error
	GetSession(ctx context.Context, sessionID string) (Session, error)
	UpdateSessionTokens(ctx context.Context, sessionID, accessToken, refreshToken string, accessExpiry time.Time) error
	TouchSession(ctx context.Context, sessionID string, seenAt time.Time) error
	DeleteSession(ctx context.Context, sessionID string) error
	ListSessions(ctx context.Context) ([]Session, error)
	DeleteExpiredSessions(ctx context.Context, lastSeenBefore time.Time) (int64, error)
}

// Store is the composite interface for console storage concerns.
type Store interface {
	SessionStore
	Close() error
}
