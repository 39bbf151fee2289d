// Package payments wires the dev-upgrade payment routes.
package payments

import (
	"net/http"

	routepath "github.com/indie-hain/console/internal/services/console/routepath"
)

// Service defines payment route handlers consumed by this route module.
type Service interface {
	HandlePaymentsPage(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires payment routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.Payments, service.HandlePaymentsPage)
}
