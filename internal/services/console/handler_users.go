package console

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/indie-hain/console/internal/platform/timeouts"
	"github.com/indie-hain/console/internal/services/console/query"
	"github.com/indie-hain/console/internal/services/console/routepath"
	"github.com/indie-hain/console/internal/services/console/templates"
)

// userFilterFromRequest reads the accounts filter from query or form
// values. Filters here are request-scoped; only the submission filter is
// sticky across requests.
func userFilterFromRequest(r *http.Request) query.UserFilter {
	return query.UserFilter{
		Role: r.FormValue("role"),
		Text: r.FormValue("q"),
	}
}

// HandleUsersPage renders the accounts page.
func (h *Handler) HandleUsersPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := h.pageContext(w, r)
	message, isErr, ok := h.ensureSnapshot(w, r, ctx)
	if !ok {
		return
	}
	view := h.usersView(r, ctx, userFilterFromRequest(r), message, isErr)
	h.renderPage(w, r, ctx, "users.html", view, "title.users")
}

// HandleUsersTable re-renders the accounts table for a filter change.
func (h *Handler) HandleUsersTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := h.pageContext(w, r)
	view := h.usersView(r, ctx, userFilterFromRequest(r), "", false)
	h.renderPage(w, r, ctx, "users_table.html", view, "title.users")
}

// HandleUserRole changes one account's role.
func (h *Handler) HandleUserRole(w http.ResponseWriter, r *http.Request, userID string) {
	h.userAction(w, r, userID, "role")
}

// HandleUserDelete removes one account.
func (h *Handler) HandleUserDelete(w http.ResponseWriter, r *http.Request, userID string) {
	h.userAction(w, r, userID, "delete")
}

// HandleUserResetPassword resets one account's password and records the
// returned temp password for display.
func (h *Handler) HandleUserResetPassword(w http.ResponseWriter, r *http.Request, userID string) {
	h.userAction(w, r, userID, "reset-password")
}

func (h *Handler) userAction(w http.ResponseWriter, r *http.Request, rawID, action string) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := h.pageContext(w, r)
	if !requireSameOrigin(w, r, ctx.Loc) {
		return
	}
	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || userID <= 0 {
		http.NotFound(w, r)
		return
	}
	sc := sessionFromContext(r.Context())
	if sc == nil {
		h.redirectToLogin(w, r, "")
		return
	}

	reqCtx, cancel := context.WithTimeout(r.Context(), timeouts.APIRequest)
	defer cancel()

	var errKey string
	switch action {
	case "role":
		role := r.PostFormValue("role")
		if _, err = sc.client.SetUserRole(reqCtx, userID, role); err != nil {
			errKey = "error.user_role_failed"
		}
	case "delete":
		if err = sc.client.DeleteUser(reqCtx, userID); err != nil {
			errKey = "error.user_delete_failed"
		}
	case "reset-password":
		var password string
		if password, err = sc.client.ResetUserPassword(reqCtx, userID); err != nil {
			errKey = "error.user_reset_failed"
		} else {
			h.views.SetTempPassword(sc.session.ID, userID, password)
		}
	default:
		http.NotFound(w, r)
		return
	}

	if err != nil {
		if h.teardownOnAuthError(w, r, err) {
			return
		}
		log.Printf("user %d %s: %v", userID, action, err)
	} else {
		// The collection changed upstream; refresh so the table reflects it.
		// Temp passwords are re-applied afterwards since a load wipes them.
		passwords := h.views.TempPasswords(sc.session.ID)
		if _, lerr := h.load(r.Context(), sc.client); lerr != nil {
			if h.teardownOnAuthError(w, r, lerr) {
				return
			}
			log.Printf("reload after user %d %s: %v", userID, action, lerr)
		}
		for id, password := range passwords {
			h.views.SetTempPassword(sc.session.ID, id, password)
		}
	}

	message := ""
	if errKey != "" {
		message = ctx.Loc.Sprintf(errKey)
	}
	view := h.usersView(r, ctx, userFilterFromRequest(r), message, errKey != "")
	h.renderPage(w, r, ctx, "users_table.html", view, "title.users")
}

func (h *Handler) usersView(r *http.Request, ctx templates.PageContext, filter query.UserFilter, message string, isErr bool) templates.UsersView {
	view := templates.UsersView{
		Ctx:          ctx,
		RoleOptions:  roleOptions(filter.Role, ctx.Loc),
		Text:         filter.Text,
		Message:      message,
		MessageIsErr: isErr,
	}

	snapshot := h.snapshots.Current()
	if snapshot == nil {
		return view
	}
	var passwords map[int64]string
	if sc := sessionFromContext(r.Context()); sc != nil {
		passwords = h.views.TempPasswords(sc.session.ID)
	}

	for _, user := range query.FilterUsers(snapshot.Users, filter) {
		view.Rows = append(view.Rows, templates.UserRow{
			ID:           user.ID,
			Email:        user.Email,
			Username:     user.Username,
			Role:         user.Role,
			RoleLabel:    formatRole(user.Role, ctx.Loc),
			RoleOptions:  roleChoices(user.Role, ctx.Loc),
			TempPassword: passwords[user.ID],
			RolePath:     routepath.UserRole(user.ID),
			DeletePath:   routepath.UserDelete(user.ID),
			ResetPath:    routepath.UserResetPassword(user.ID),
		})
	}
	return view
}

// ensureSnapshot lazily runs the first load before rendering a collection
// page. Reports ok=false when the response has already been written. A
// failed load that is not an auth error comes back as a message so the
// page can say why it is empty.
func (h *Handler) ensureSnapshot(w http.ResponseWriter, r *http.Request, ctx templates.PageContext) (message string, isErr, ok bool) {
	if h.snapshots.Current() != nil {
		return "", false, true
	}
	sc := sessionFromContext(r.Context())
	if sc == nil {
		return "", false, true
	}
	if _, err := h.load(r.Context(), sc.client); err != nil {
		if h.teardownOnAuthError(w, r, err) {
			return "", false, false
		}
		log.Printf("initial load: %v", err)
		return ctx.Loc.Sprintf("error.load_failed"), true, true
	}
	return "", false, true
}
