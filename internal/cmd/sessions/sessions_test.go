package sessions

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/indie-hain/console/internal/services/console/storage"
	consolesqlite "github.com/indie-hain/console/internal/services/console/storage/sqlite"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("sessions", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "data/console.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
	if cfg.PruneAge != defaultPruneAge {
		t.Fatalf("PruneAge = %v", cfg.PruneAge)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("INDIE_HAIN_CONSOLE_DB_PATH", "/var/lib/console.db")

	fs := flag.NewFlagSet("sessions", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "/var/lib/console.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}

	fs = flag.NewFlagSet("sessions", flag.ContinueOnError)
	cfg, err = ParseConfig(fs, []string{"-db-path", "override.db"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "override.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
}

func TestRunRequiresExactlyOneAction(t *testing.T) {
	var out bytes.Buffer
	if err := Run(context.Background(), Config{DBPath: "x.db"}, &out); err == nil {
		t.Fatal("expected error when no action is selected")
	}
	if err := Run(context.Background(), Config{DBPath: "x.db", List: true, Prune: true, PruneAge: time.Hour}, &out); err == nil {
		t.Fatal("expected error when two actions are selected")
	}
}

func seedSession(t *testing.T, dbPath, id string, lastSeen time.Time) {
	t.Helper()
	store, err := consolesqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	session := storage.Session{
		ID:           id,
		UserID:       7,
		Email:        "admin@example.test",
		Username:     "admin",
		Role:         "admin",
		AccessToken:  "access",
		RefreshToken: "refresh",
		CreatedAt:    lastSeen,
		LastSeenAt:   lastSeen,
	}
	if err := store.PutSession(context.Background(), session); err != nil {
		t.Fatalf("put session: %v", err)
	}
}

func TestRunListJSON(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "console.db")
	seedSession(t, dbPath, "s1", time.Now())

	var out bytes.Buffer
	if err := Run(context.Background(), Config{DBPath: dbPath, List: true, JSON: true}, &out); err != nil {
		t.Fatalf("run list: %v", err)
	}
	var rows []sessionRow
	if err := json.Unmarshal(out.Bytes(), &rows); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "s1" {
		t.Fatalf("rows = %+v", rows)
	}
	if strings.Contains(out.String(), "access") {
		t.Fatal("list output must not leak tokens")
	}
}

func TestRunPruneRemovesIdleSessions(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "console.db")
	seedSession(t, dbPath, "old", time.Now().Add(-48*time.Hour))
	seedSession(t, dbPath, "fresh", time.Now())

	var out bytes.Buffer
	cfg := Config{DBPath: dbPath, Prune: true, PruneAge: 24 * time.Hour}
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run prune: %v", err)
	}
	if !strings.Contains(out.String(), "removed 1") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunRevoke(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "console.db")
	seedSession(t, dbPath, "victim", time.Now())

	var out bytes.Buffer
	if err := Run(context.Background(), Config{DBPath: dbPath, Revoke: "victim"}, &out); err != nil {
		t.Fatalf("run revoke: %v", err)
	}
	if !strings.Contains(out.String(), "revoked session victim") {
		t.Fatalf("output = %q", out.String())
	}

	if err := Run(context.Background(), Config{DBPath: dbPath, Revoke: "victim"}, &out); err == nil {
		t.Fatal("expected error revoking missing session")
	}
}
