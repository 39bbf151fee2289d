// Package sessions implements the console session maintenance CLI: listing,
// pruning and revoking persisted console sessions.
package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	platformcmd "github.com/indie-hain/console/internal/platform/cmd"
	"github.com/indie-hain/console/internal/services/console/storage"
	consolesqlite "github.com/indie-hain/console/internal/services/console/storage/sqlite"
)

// defaultPruneAge matches the console's idle session TTL.
const defaultPruneAge = 7 * 24 * time.Hour

// Config holds the sessions command configuration. The database path
// defaults from the same environment variable the console server reads.
type Config struct {
	DBPath   string `env:"INDIE_HAIN_CONSOLE_DB_PATH" envDefault:"data/console.db"`
	List     bool
	Prune    bool
	PruneAge time.Duration
	Revoke   string
	JSON     bool
}

// ParseConfig loads environment defaults into a Config and then parses
// flags over them.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse sessions env: %w", err)
	}
	cfg.PruneAge = defaultPruneAge

	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "session database path")
	fs.BoolVar(&cfg.List, "list", false, "list persisted sessions")
	fs.BoolVar(&cfg.Prune, "prune", false, "remove sessions idle past the prune age")
	fs.DurationVar(&cfg.PruneAge, "prune-age", cfg.PruneAge, "idle age after which -prune removes a session")
	fs.StringVar(&cfg.Revoke, "revoke", "", "remove one session by ID")
	fs.BoolVar(&cfg.JSON, "json", false, "emit JSON instead of a table")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the requested session maintenance action.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		return errors.New("output is required")
	}
	actions := 0
	for _, selected := range []bool{cfg.List, cfg.Prune, cfg.Revoke != ""} {
		if selected {
			actions++
		}
	}
	if actions != 1 {
		return errors.New("exactly one of -list, -prune or -revoke is required")
	}

	store, err := consolesqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	switch {
	case cfg.List:
		err = list(ctx, store, out, cfg.JSON)
	case cfg.Prune:
		err = prune(ctx, store, out, cfg.PruneAge, cfg.JSON)
	default:
		err = revoke(ctx, store, out, cfg.Revoke, cfg.JSON)
	}
	return err
}

func list(ctx context.Context, store *consolesqlite.Store, out io.Writer, asJSON bool) error {
	sessions, err := store.ListSessions(ctx)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	if asJSON {
		return writeJSON(out, sessionRows(sessions))
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSER\tROLE\tCREATED\tLAST SEEN")
	for _, session := range sessions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			session.ID,
			session.Username,
			session.Role,
			session.CreatedAt.Format(time.RFC3339),
			session.LastSeenAt.Format(time.RFC3339),
		)
	}
	return tw.Flush()
}

func prune(ctx context.Context, store *consolesqlite.Store, out io.Writer, age time.Duration, asJSON bool) error {
	if age <= 0 {
		return errors.New("prune age must be greater than zero")
	}
	removed, err := store.DeleteExpiredSessions(ctx, time.Now().Add(-age))
	if err != nil {
		return fmt.Errorf("prune sessions: %w", err)
	}
	if asJSON {
		return writeJSON(out, map[string]int64{"removed": removed})
	}
	_, err = fmt.Fprintf(out, "removed %d sessions\n", removed)
	return err
}

func revoke(ctx context.Context, store *consolesqlite.Store, out io.Writer, sessionID string, asJSON bool) error {
	sessionID = strings.TrimSpace(sessionID)
	if _, err := store.GetSession(ctx, sessionID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("session %s not found", sessionID)
		}
		return fmt.Errorf("load session %s: %w", sessionID, err)
	}
	if err := store.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("revoke session %s: %w", sessionID, err)
	}
	if asJSON {
		return writeJSON(out, map[string]string{"revoked": sessionID})
	}
	_, err := fmt.Fprintf(out, "revoked session %s\n", sessionID)
	return err
}

// sessionRow is the JSON shape for -list; tokens are deliberately omitted.
type sessionRow struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"user_id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

func sessionRows(sessions []storage.Session) []sessionRow {
	rows := make([]sessionRow, 0, len(sessions))
	for _, session := range sessions {
		rows = append(rows, sessionRow{
			ID:         session.ID,
			UserID:     session.UserID,
			Email:      session.Email,
			Username:   session.Username,
			Role:       session.Role,
			CreatedAt:  session.CreatedAt,
			LastSeenAt: session.LastSeenAt,
		})
	}
	return rows
}

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
