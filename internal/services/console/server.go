package console

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/indie-hain/console/internal/distribution"
	"github.com/indie-hain/console/internal/platform/timeouts"
	consolesqlite "github.com/indie-hain/console/internal/services/console/storage/sqlite"
)

// sessionCleanupInterval controls how often idle persisted sessions are
// pruned.
const sessionCleanupInterval = time.Hour

// Config defines the inputs for the console process.
//
// The console is a control plane over the distribution API; APIBaseURL
// selects that API, DBPath the local session store.
type Config struct {
	HTTPAddr   string
	APIBaseURL string
	DBPath     string
	// RefreshInterval triggers periodic background reloads of the platform
	// collections. Zero disables the ticker; data then only refreshes on
	// operator action.
	RefreshInterval time.Duration
}

// Server hosts the console: the HTTP surface, the session store and the
// background refresh loop.
type Server struct {
	httpAddr   string
	api        *distribution.Client
	store      *consolesqlite.Store
	handler    *Handler
	httpServer *http.Server

	refreshInterval time.Duration

	// refreshClient is the client of the most recent successful load. The
	// background ticker reuses it; until a load happened there is nothing
	// to refresh with.
	mu            sync.Mutex
	refreshClient loaderClient
}

// NewServer builds a configured console server.
func NewServer(cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	apiBaseURL := strings.TrimSpace(cfg.APIBaseURL)
	if apiBaseURL == "" {
		return nil, errors.New("distribution api url is required")
	}

	store, err := openConsoleStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	api := distribution.New(apiBaseURL, nil)
	handler := NewHandler(api, store)

	server := &Server{
		httpAddr:        httpAddr,
		api:             api,
		store:           store,
		handler:         handler,
		refreshInterval: cfg.RefreshInterval,
	}
	handler.afterLoad = server.rememberRefreshClient
	server.httpServer = &http.Server{
		Addr:              httpAddr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	return server, nil
}

// ListenAndServe runs the HTTP server and background loops until the
// context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("console server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	loopCtx, cancelLoops := context.WithCancel(ctx)
	defer cancelLoops()
	go s.refreshLoop(loopCtx)
	go s.sessionCleanupLoop(loopCtx)

	serveErr := make(chan error, 1)
	log.Printf("console listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases resources held by the server.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close console store: %v", err)
		}
	}
}

func (s *Server) rememberRefreshClient(client loaderClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshClient = client
}

func (s *Server) currentRefreshClient() loaderClient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshClient
}

// refreshLoop reloads the platform collections on a fixed interval, reusing
// the token-bound client of the last successful operator-triggered load.
func (s *Server) refreshLoop(ctx context.Context) {
	if s.refreshInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			client := s.currentRefreshClient()
			if client == nil {
				continue
			}
			if _, err := s.handler.loader.Load(ctx, client); err != nil {
				log.Printf("background refresh: %v", err)
				if errors.Is(err, distribution.ErrUnauthenticated) || errors.Is(err, distribution.ErrForbidden) {
					// The held tokens died; wait for a fresh sign-in.
					s.rememberRefreshClient(nil)
				}
			}
		}
	}
}

// sessionCleanupLoop prunes persisted sessions idle past the session TTL.
func (s *Server) sessionCleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-sessionTTL)
			removed, err := s.store.DeleteExpiredSessions(ctx, cutoff)
			if err != nil {
				log.Printf("session cleanup: %v", err)
				continue
			}
			if removed > 0 {
				log.Printf("session cleanup removed %d idle sessions", removed)
			}
		}
	}
}

func openConsoleStore(path string) (*consolesqlite.Store, error) {
	if strings.TrimSpace(path) == "" {
		path = filepath.Join("data", "console.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := consolesqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open console sqlite store: %w", err)
	}
	return store, nil
}
