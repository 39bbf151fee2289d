package console

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/indie-hain/console/internal/distribution"
	"github.com/indie-hain/console/internal/id"
	"github.com/indie-hain/console/internal/services/console/i18n"
	appsmodule "github.com/indie-hain/console/internal/services/console/module/apps"
	dashboardmodule "github.com/indie-hain/console/internal/services/console/module/dashboard"
	paymentsmodule "github.com/indie-hain/console/internal/services/console/module/payments"
	submissionsmodule "github.com/indie-hain/console/internal/services/console/module/submissions"
	usersmodule "github.com/indie-hain/console/internal/services/console/module/users"
	"github.com/indie-hain/console/internal/services/console/query"
	"github.com/indie-hain/console/internal/services/console/routepath"
	"github.com/indie-hain/console/internal/services/console/storage"
	"github.com/indie-hain/console/internal/services/console/templates"
	"github.com/indie-hain/console/internal/services/console/transport/httpmux"
	"golang.org/x/text/message"
)

const (
	// sessionCookieName stores the active console session ID.
	sessionCookieName = "hain_console_session"
	// sessionTTL controls how long an idle console session stays valid.
	sessionTTL = 7 * 24 * time.Hour
)

//go:embed static/*
var staticFS embed.FS

// Handler routes console requests. Everything except the login page and
// static assets requires a resolved console session.
type Handler struct {
	api       *distribution.Client
	store     storage.Store
	snapshots *snapshotStore
	views     *viewStateStore
	loader    *loader
	verifier  *verifier
	verified  *verifyStore
	progress  *progressHub
	subCache  *submissionViewCache

	// afterLoad, when set, observes the client of each successful load.
	// The server uses it to keep a token-bound client for background
	// refreshes.
	afterLoad func(client loaderClient)
}

// load runs a full load and reports the client to the afterLoad hook on
// success.
func (h *Handler) load(ctx context.Context, client loaderClient) (*Snapshot, error) {
	snapshot, err := h.loader.Load(ctx, client)
	if err == nil && h.afterLoad != nil {
		h.afterLoad(client)
	}
	return snapshot, err
}

// NewHandler builds the console HTTP handler. api is the unauthenticated
// base client; per-request clients are bound to the session's tokens.
func NewHandler(api *distribution.Client, store storage.Store) *Handler {
	snapshots := newSnapshotStore()
	views := newViewStateStore()
	verified := newVerifyStore()
	progress := newProgressHub()
	return &Handler{
		api:       api,
		store:     store,
		snapshots: snapshots,
		views:     views,
		loader:    newLoader(snapshots, views),
		verifier:  newVerifier(verified, progress),
		verified:  verified,
		progress:  progress,
		subCache:  &submissionViewCache{},
	}
}

// Routes wires the console route table.
func (h *Handler) Routes() http.Handler {
	appMux := http.NewServeMux()
	dashboardmodule.RegisterRoutes(appMux, h)
	usersmodule.RegisterRoutes(appMux, h)
	submissionsmodule.RegisterRoutes(appMux, h)
	appsmodule.RegisterRoutes(appMux, h)
	paymentsmodule.RegisterRoutes(appMux, h)

	rootMux := http.NewServeMux()
	static, err := fs.Sub(staticFS, "static")
	if err == nil {
		httpmux.MountStatic(rootMux, static, nil)
	}
	rootMux.HandleFunc(routepath.Login, h.handleLogin)
	rootMux.HandleFunc(routepath.Logout, h.handleLogout)
	httpmux.MountConsoleRoutes(rootMux, h.requireSession(appMux))
	return rootMux
}

// tokenPersister adapts the session store to the distribution client's
// token persistence hook.
type tokenPersister struct {
	store storage.SessionStore
}

func (p tokenPersister) UpdateSessionTokens(ctx context.Context, sessionID string, pair distribution.TokenPair, accessExpiry time.Time) error {
	return p.store.UpdateSessionTokens(ctx, sessionID, pair.AccessToken, pair.RefreshToken, accessExpiry)
}

// sessionContext carries the resolved console session through a request.
type sessionContext struct {
	session storage.Session
	client  *distribution.Client
}

type sessionContextKey struct{}

func withSessionContext(ctx context.Context, sc *sessionContext) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sc)
}

func sessionFromContext(ctx context.Context) *sessionContext {
	sc, _ := ctx.Value(sessionContextKey{}).(*sessionContext)
	return sc
}

// requireSession resolves the session cookie, binds a distribution client
// to the session's tokens and rejects unauthenticated requests with a
// redirect to the login page.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || strings.TrimSpace(cookie.Value) == "" {
			h.redirectToLogin(w, r, "")
			return
		}
		session, err := h.store.GetSession(r.Context(), strings.TrimSpace(cookie.Value))
		if err != nil {
			h.clearSessionCookie(w, r)
			h.redirectToLogin(w, r, "expired")
			return
		}
		if err := h.store.TouchSession(r.Context(), session.ID, time.Now()); err != nil {
			log.Printf("touch session %s: %v", session.ID, err)
		}
		tokens := distribution.NewTokenSource(distribution.TokenPair{
			AccessToken:  session.AccessToken,
			RefreshToken: session.RefreshToken,
		}, session.ID, tokenPersister{store: h.store})
		sc := &sessionContext{
			session: session,
			client:  h.api.WithTokens(tokens),
		}
		next.ServeHTTP(w, r.WithContext(withSessionContext(r.Context(), sc)))
	})
}

func (h *Handler) redirectToLogin(w http.ResponseWriter, r *http.Request, reason string) {
	target := routepath.Login
	if reason != "" {
		target += "?reason=" + url.QueryEscape(reason)
	}
	// HTMX swaps cannot follow a normal redirect into a full page.
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// teardownOnAuthError destroys the console session when an API call came
// back unauthenticated or forbidden, and reports whether it did so.
func (h *Handler) teardownOnAuthError(w http.ResponseWriter, r *http.Request, err error) bool {
	var reason string
	switch {
	case errors.Is(err, distribution.ErrUnauthenticated):
		reason = "expired"
	case errors.Is(err, distribution.ErrForbidden):
		reason = "forbidden"
	default:
		return false
	}
	if sc := sessionFromContext(r.Context()); sc != nil {
		if derr := h.store.DeleteSession(r.Context(), sc.session.ID); derr != nil {
			log.Printf("delete session %s: %v", sc.session.ID, derr)
		}
		h.views.Drop(sc.session.ID)
	}
	h.clearSessionCookie(w, r)
	h.redirectToLogin(w, r, reason)
	return true
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) localizer(w http.ResponseWriter, r *http.Request) (*message.Printer, string) {
	tag, persist := i18n.ResolveTag(r)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	return i18n.Printer(tag), tag.String()
}

func (h *Handler) pageContext(w http.ResponseWriter, r *http.Request) templates.PageContext {
	loc, lang := h.localizer(w, r)
	ctx := templates.PageContext{Lang: lang, Loc: loc}
	if sc := sessionFromContext(r.Context()); sc != nil {
		ctx.Username = sc.session.Username
	}
	return ctx
}

// renderPage writes a fragment directly for HTMX swaps and wraps it in the
// full layout otherwise.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, ctx templates.PageContext, fragment string, data any, titleKey string) {
	var body bytes.Buffer
	if err := templates.RenderFragment(&body, fragment, data); err != nil {
		log.Printf("render %s: %v", fragment, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if isHTMXRequest(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(body.Bytes())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := templates.Page{Ctx: ctx, Title: ctx.Loc.Sprintf(titleKey), Body: template.HTML(body.String())}
	if err := templates.RenderPage(w, page); err != nil {
		log.Printf("render layout for %s: %v", fragment, err)
	}
}

func isHTMXRequest(r *http.Request) bool {
	return r != nil && r.Header.Get("HX-Request") == "true"
}

func requireSameOrigin(w http.ResponseWriter, r *http.Request, loc *message.Printer) bool {
	if r == nil {
		http.Error(w, loc.Sprintf("error.csrf_invalid"), http.StatusForbidden)
		return false
	}
	if origin := strings.TrimSpace(r.Header.Get("Origin")); origin != "" {
		if !sameOrigin(origin, r) {
			http.Error(w, loc.Sprintf("error.csrf_invalid"), http.StatusForbidden)
			return false
		}
		return true
	}
	if referer := strings.TrimSpace(r.Referer()); referer != "" {
		if !sameOrigin(referer, r) {
			http.Error(w, loc.Sprintf("error.csrf_invalid"), http.StatusForbidden)
			return false
		}
		return true
	}
	http.Error(w, loc.Sprintf("error.csrf_invalid"), http.StatusForbidden)
	return false
}

func sameOrigin(rawURL string, r *http.Request) bool {
	if rawURL == "" || rawURL == "null" || r == nil {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	if !strings.EqualFold(parsed.Host, r.Host) {
		return false
	}
	if parsed.Scheme != "" {
		return strings.EqualFold(parsed.Scheme, requestScheme(r))
	}
	return true
}

func requestScheme(r *http.Request) string {
	if r == nil {
		return "http"
	}
	if proto := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); proto != "" {
		parts := strings.Split(proto, ",")
		return strings.ToLower(strings.TrimSpace(parts[0]))
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func isHTTPS(r *http.Request) bool {
	return requestScheme(r) == "https"
}

// newSessionID issues a console session identifier.
func newSessionID() string {
	return id.NewID()
}

// submissionViewCache memoizes one filtered submission view per snapshot
// generation and filter. The generation bump on commit is the only
// invalidation.
type submissionViewCache struct {
	mu         sync.Mutex
	generation uint64
	filter     query.SubmissionFilter
	view       []distribution.Submission
	valid      bool
}

func (c *submissionViewCache) Get(generation uint64, filter query.SubmissionFilter) ([]distribution.Submission, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid || c.generation != generation || c.filter != filter {
		return nil, false
	}
	return c.view, true
}

func (c *submissionViewCache) Put(generation uint64, filter query.SubmissionFilter, view []distribution.Submission) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation = generation
	c.filter = filter
	c.view = view
	c.valid = true
}
