package distribution

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenStore persists rotated tokens for a console session. Implementations
// must tolerate being called concurrently.
type TokenStore interface {
	UpdateSessionTokens(ctx context.Context, sessionID string, pair TokenPair, accessExpiry time.Time) error
}

// RefreshFunc exchanges a refresh token for a new pair.
type RefreshFunc func(ctx context.Context, refreshToken string) (TokenPair, error)

// TokenSource holds the bearer credentials for one console session. Reads
// and rotations are safe for concurrent use; concurrent refreshes coalesce
// into a single upstream call.
type TokenSource struct {
	mu       sync.Mutex
	pair     TokenPair
	expiry   time.Time
	inflight chan struct{}
	lastErr  error

	sessionID string
	store     TokenStore
}

// NewTokenSource creates a token source seeded with pair. When store is
// non-nil, rotations are persisted under sessionID.
func NewTokenSource(pair TokenPair, sessionID string, store TokenStore) *TokenSource {
	return &TokenSource{
		pair:      pair,
		expiry:    AccessTokenExpiry(pair.AccessToken),
		sessionID: sessionID,
		store:     store,
	}
}

// AccessToken returns the current access token, empty when none is held.
func (ts *TokenSource) AccessToken() string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.pair.AccessToken
}

// RefreshToken returns the current refresh token, empty when none is held.
func (ts *TokenSource) RefreshToken() string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.pair.RefreshToken
}

// Expiry returns the access token expiry, zero when unknown.
func (ts *TokenSource) Expiry() time.Time {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.expiry
}

// Refresh rotates the pair via fn. When a refresh is already in flight the
// call waits for it and returns its outcome instead of issuing a second
// upstream request.
func (ts *TokenSource) Refresh(ctx context.Context, fn RefreshFunc) error {
	ts.mu.Lock()
	if ts.inflight != nil {
		done := ts.inflight
		ts.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
		ts.mu.Lock()
		err := ts.lastErr
		ts.mu.Unlock()
		return err
	}
	done := make(chan struct{})
	ts.inflight = done
	refreshToken := ts.pair.RefreshToken
	ts.mu.Unlock()

	pair, err := fn(ctx, refreshToken)

	ts.mu.Lock()
	ts.inflight = nil
	ts.lastErr = err
	if err == nil {
		ts.pair = pair
		ts.expiry = AccessTokenExpiry(pair.AccessToken)
	}
	store := ts.store
	sessionID := ts.sessionID
	expiry := ts.expiry
	close(done)
	ts.mu.Unlock()

	if err == nil && store != nil {
		// The rotation already happened upstream; a failed local write must
		// not fail the request that triggered it.
		if perr := store.UpdateSessionTokens(ctx, sessionID, pair, expiry); perr != nil {
			log.Printf("persist rotated tokens for session %s: %v", sessionID, perr)
		}
	}
	return err
}

// AccessTokenExpiry extracts the exp claim from a JWT access token without
// verifying the signature. Returns the zero time when the token is not a
// JWT or carries no expiry. Informational only; the API remains the
// authority on token validity.
func AccessTokenExpiry(accessToken string) time.Time {
	if accessToken == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
