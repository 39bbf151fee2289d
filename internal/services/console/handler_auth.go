package console

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/indie-hain/console/internal/distribution"
	"github.com/indie-hain/console/internal/platform/timeouts"
	"github.com/indie-hain/console/internal/services/console/routepath"
	"github.com/indie-hain/console/internal/services/console/storage"
	"github.com/indie-hain/console/internal/services/console/templates"
)

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.renderLogin(w, r, "", reasonMessageKey(r.URL.Query().Get("reason")))
	case http.MethodPost:
		h.submitLogin(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// reasonMessageKey maps a login redirect reason to its catalog key.
func reasonMessageKey(reason string) string {
	switch reason {
	case "expired":
		return "error.session_expired"
	case "forbidden":
		return "error.admin_required"
	default:
		return ""
	}
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, identity, errKey string) {
	ctx := h.pageContext(w, r)
	view := templates.LoginView{Ctx: ctx, Identity: identity}
	if errKey != "" {
		view.Error = ctx.Loc.Sprintf(errKey)
	}
	h.renderPage(w, r, ctx, "login.html", view, "title.login")
}

// submitLogin exchanges credentials for a token pair, verifies the account
// is an admin and establishes the console session.
func (h *Handler) submitLogin(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.localizer(w, r)
	if !requireSameOrigin(w, r, loc) {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, "", "error.invalid_request")
		return
	}
	identity := strings.TrimSpace(r.PostFormValue("identity"))
	password := r.PostFormValue("password")
	if identity == "" || password == "" {
		h.renderLogin(w, r, identity, "error.invalid_credentials")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.APIRequest)
	defer cancel()

	pair, err := h.api.Login(ctx, distribution.Credentials{Identity: identity, Password: password})
	if err != nil {
		if errors.Is(err, distribution.ErrUnauthenticated) {
			h.renderLogin(w, r, identity, "error.invalid_credentials")
			return
		}
		log.Printf("login %q: %v", identity, err)
		h.renderLogin(w, r, identity, "error.action_failed")
		return
	}

	// Identify the account with a throwaway token source; the session is
	// only persisted once the admin role is confirmed.
	probe := h.api.WithTokens(distribution.NewTokenSource(pair, "", nil))
	user, err := probe.Me(ctx)
	if err != nil {
		log.Printf("login me %q: %v", identity, err)
		h.renderLogin(w, r, identity, "error.action_failed")
		return
	}
	if user.Role != distribution.RoleAdmin {
		h.renderLogin(w, r, identity, "error.admin_required")
		return
	}

	now := time.Now()
	session := storage.Session{
		ID:           newSessionID(),
		UserID:       user.ID,
		Email:        user.Email,
		Username:     user.Username,
		Role:         user.Role,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		AccessExpiry: distribution.AccessTokenExpiry(pair.AccessToken),
		CreatedAt:    now,
		LastSeenAt:   now,
	}
	if err := h.store.PutSession(r.Context(), session); err != nil {
		log.Printf("persist session for user %d: %v", user.ID, err)
		h.renderLogin(w, r, identity, "error.action_failed")
		return
	}

	h.setSessionCookie(w, r, session.ID)
	http.Redirect(w, r, routepath.Root, http.StatusSeeOther)
}

// handleLogout tears down the console session. The upstream logout call is
// best-effort; the local session dies regardless.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	loc, _ := h.localizer(w, r)
	if !requireSameOrigin(w, r, loc) {
		return
	}

	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		sessionID := strings.TrimSpace(cookie.Value)
		if session, err := h.store.GetSession(r.Context(), sessionID); err == nil {
			tokens := distribution.NewTokenSource(distribution.TokenPair{
				AccessToken:  session.AccessToken,
				RefreshToken: session.RefreshToken,
			}, session.ID, nil)
			ctx, cancel := context.WithTimeout(r.Context(), timeouts.APIRequest)
			if err := h.api.WithTokens(tokens).Logout(ctx); err != nil {
				log.Printf("upstream logout for session %s: %v", sessionID, err)
			}
			cancel()
		}
		if err := h.store.DeleteSession(r.Context(), sessionID); err != nil && !errors.Is(err, storage.ErrNotFound) {
			log.Printf("delete session %s: %v", sessionID, err)
		}
		h.views.Drop(sessionID)
	}

	h.clearSessionCookie(w, r)
	http.Redirect(w, r, routepath.Login, http.StatusSeeOther)
}
