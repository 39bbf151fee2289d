// Package apps wires the public-catalog routes.
package apps

import (
	"net/http"

	routepath "github.com/indie-hain/console/internal/services/console/routepath"
)

// Service defines catalog route handlers consumed by this route module.
type Service interface {
	HandleAppsPage(w http.ResponseWriter, r *http.Request)
	HandleAppsTable(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires catalog routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.Apps, service.HandleAppsPage)
	mux.HandleFunc(routepath.AppsTable, service.HandleAppsTable)
}
