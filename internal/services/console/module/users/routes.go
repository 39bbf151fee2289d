// Package users wires the account-management routes.
package users

import (
	"net/http"
	"strings"

	sharedpath "github.com/indie-hain/console/internal/services/console/module/sharedpath"
	routepath "github.com/indie-hain/console/internal/services/console/routepath"
)

// Service defines users route handlers consumed by this route module.
type Service interface {
	HandleUsersPage(w http.ResponseWriter, r *http.Request)
	HandleUsersTable(w http.ResponseWriter, r *http.Request)
	HandleUserRole(w http.ResponseWriter, r *http.Request, userID string)
	HandleUserDelete(w http.ResponseWriter, r *http.Request, userID string)
	HandleUserResetPassword(w http.ResponseWriter, r *http.Request, userID string)
}

// RegisterRoutes wires user routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.Users, service.HandleUsersPage)
	mux.HandleFunc(routepath.UsersTable, service.HandleUsersTable)
	mux.HandleFunc(routepath.UsersPrefix, func(w http.ResponseWriter, r *http.Request) {
		HandleUserPath(w, r, service)
	})
}

// HandleUserPath parses user action subroutes and dispatches to service
// handlers.
func HandleUserPath(w http.ResponseWriter, r *http.Request, service Service) {
	if service == nil {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, routepath.UsersPrefix)
	parts := sharedpath.SplitPathParts(path)
	if len(parts) != 2 {
		http.NotFound(w, r)
		return
	}
	switch parts[1] {
	case "role":
		service.HandleUserRole(w, r, parts[0])
	case "delete":
		service.HandleUserDelete(w, r, parts[0])
	case "reset-password":
		service.HandleUserResetPassword(w, r, parts[0])
	default:
		http.NotFound(w, r)
	}
}
