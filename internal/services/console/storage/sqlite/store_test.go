package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/indie-hain/console/internal/services/console/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestPutAndGetSession(t *testing.T) {
	store := openTempStore(t)

	createdAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	session := storage.Session{
		ID:           "session-1",
		UserID:       7,
		Email:        "admin@indie-hain.dev",
		Username:     "admin",
		Role:         "admin",
		AccessToken:  "tok-1",
		RefreshToken: "ref-1",
		AccessExpiry: createdAt.Add(30 * time.Minute),
		CreatedAt:    createdAt,
		LastSeenAt:   createdAt,
	}
	if err := store.PutSession(context.Background(), session); err != nil {
		t.Fatalf("put session: %v", err)
	}

	got, err := store.GetSession(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.UserID != 7 || got.Email != "admin@indie-hain.dev" || got.Role != "admin" {
		t.Fatalf("unexpected session: %+v", got)
	}
	if got.AccessToken != "tok-1" || got.RefreshToken != "ref-1" {
		t.Fatalf("unexpected tokens: %+v", got)
	}
	if !got.AccessExpiry.Equal(session.AccessExpiry) {
		t.Fatalf("access expiry = %v, want %v", got.AccessExpiry, session.AccessExpiry)
	}
	if !got.CreatedAt.Equal(createdAt) {
		t.Fatalf("created at = %v, want %v", got.CreatedAt, createdAt)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	store := openTempStore(t)

	_, err := store.GetSession(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPutSessionValidation(t *testing.T) {
	store := openTempStore(t)

	if err := store.PutSession(context.Background(), storage.Session{}); err == nil {
		t.Fatal("expected error for empty session id")
	}
}

func TestPutSessionDefaultsTimestamps(t *testing.T) {
	store := openTempStore(t)

	if err := store.PutSession(context.Background(), storage.Session{ID: "session-2", Role: "admin"}); err != nil {
		t.Fatalf("put session: %v", err)
	}
	got, err := store.GetSession(context.Background(), "session-2")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.CreatedAt.IsZero() || got.LastSeenAt.IsZero() {
		t.Fatalf("expected timestamps to be defaulted, got %+v", got)
	}
}

func TestUpdateSessionTokens(t *testing.T) {
	store := openTempStore(t)

	if err := store.PutSession(context.Background(), storage.Session{ID: "session-3", Role: "admin", AccessToken: "old", RefreshToken: "old-ref"}); err != nil {
		t.Fatalf("put session: %v", err)
	}

	expiry := time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)
	if err := store.UpdateSessionTokens(context.Background(), "session-3", "new", "new-ref", expiry); err != nil {
		t.Fatalf("update tokens: %v", err)
	}

	got, err := store.GetSession(context.Background(), "session-3")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.AccessToken != "new" || got.RefreshToken != "new-ref" {
		t.Fatalf("tokens not rotated: %+v", got)
	}
	if !got.AccessExpiry.Equal(expiry) {
		t.Fatalf("access expiry = %v, want %v", got.AccessExpiry, expiry)
	}
}

func TestUpdateSessionTokensMissingSession(t *testing.T) {
	store := openTempStore(t)

	err := store.UpdateSessionTokens(context.Background(), "missing", "a", "b", time.Time{})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteSession(t *testing.T) {
	store := openTempStore(t)

	if err := store.PutSession(context.Background(), storage.Session{ID: "session-4", Role: "admin"}); err != nil {
		t.Fatalf("put session: %v", err)
	}
	if err := store.DeleteSession(context.Background(), "session-4"); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, err := store.GetSession(context.Background(), "session-4"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected session gone, got %v", err)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	store := openTempStore(t)

	old := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	fresh := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	for _, session := range []storage.Session{
		{ID: "stale-1", Role: "admin", CreatedAt: old, LastSeenAt: old},
		{ID: "stale-2", Role: "admin", CreatedAt: old, LastSeenAt: old},
		{ID: "active", Role: "admin", CreatedAt: fresh, LastSeenAt: fresh},
	} {
		if err := store.PutSession(context.Background(), session); err != nil {
			t.Fatalf("put session %s: %v", session.ID, err)
		}
	}

	removed, err := store.DeleteExpiredSessions(context.Background(), time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}

	sessions, err := store.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != "active" {
		t.Fatalf("unexpected sessions after prune: %+v", sessions)
	}
}

func TestListSessionsNewestFirst(t *testing.T) {
	store := openTempStore(t)

	base := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"first", "second", "third"} {
		session := storage.Session{
			ID:         id,
			Role:       "admin",
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
			LastSeenAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := store.PutSession(context.Background(), session); err != nil {
			t.Fatalf("put session %s: %v", id, err)
		}
	}

	sessions, err := store.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("len = %d, want 3", len(sessions))
	}
	if sessions[0].ID != "third" || sessions[2].ID != "first" {
		t.Fatalf("unexpected order: %s, %s, %s", sessions[0].ID, sessions[1].ID, sessions[2].ID)
	}
}

func TestNilStoreOperations(t *testing.T) {
	var store *Store
	if err := store.PutSession(context.Background(), storage.Session{ID: "x"}); err == nil {
		t.Fatal("expected error for nil store")
	}
	if _, err := store.GetSession(context.Background(), "x"); err == nil {
		t.Fatal("expected error for nil store")
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "console.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil && err != sql.ErrConnDone {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
