// Package submissions wires the moderation-queue routes.
package submissions

import (
	"net/http"
	"strings"

	sharedpath "github.com/indie-hain/console/internal/services/console/module/sharedpath"
	routepath "github.com/indie-hain/console/internal/services/console/routepath"
)

// Service defines submission route handlers consumed by this route module.
type Service interface {
	HandleSubmissionsPage(w http.ResponseWriter, r *http.Request)
	HandleSubmissionsTable(w http.ResponseWriter, r *http.Request)
	HandleSubmissionsSelect(w http.ResponseWriter, r *http.Request)
	HandleSubmissionsSelectSection(w http.ResponseWriter, r *http.Request)
	HandleSubmissionsBulk(w http.ResponseWriter, r *http.Request)
	HandleSubmissionApprove(w http.ResponseWriter, r *http.Request, submissionID string)
	HandleSubmissionReject(w http.ResponseWriter, r *http.Request, submissionID string)
	HandleSubmissionManifest(w http.ResponseWriter, r *http.Request, submissionID string)
	HandleSubmissionFiles(w http.ResponseWriter, r *http.Request, submissionID string, rest []string)
}

// RegisterRoutes wires submission routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.Submissions, service.HandleSubmissionsPage)
	mux.HandleFunc(routepath.SubmissionsTable, service.HandleSubmissionsTable)
	mux.HandleFunc(routepath.SubmissionsSelect, service.HandleSubmissionsSelect)
	mux.HandleFunc(routepath.SubmissionsSelectSection, service.HandleSubmissionsSelectSection)
	mux.HandleFunc(routepath.SubmissionsBulk, service.HandleSubmissionsBulk)
	mux.HandleFunc(routepath.SubmissionsPrefix, func(w http.ResponseWriter, r *http.Request) {
		HandleSubmissionPath(w, r, service)
	})
}

// HandleSubmissionPath parses submission subroutes and dispatches to
// service handlers.
func HandleSubmissionPath(w http.ResponseWriter, r *http.Request, service Service) {
	if service == nil {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, routepath.SubmissionsPrefix)
	parts := sharedpath.SplitPathParts(path)
	if len(parts) < 2 {
		http.NotFound(w, r)
		return
	}
	switch parts[1] {
	case "approve":
		if len(parts) == 2 {
			service.HandleSubmissionApprove(w, r, parts[0])
			return
		}
	case "reject":
		if len(parts) == 2 {
			service.HandleSubmissionReject(w, r, parts[0])
			return
		}
	case "manifest":
		if len(parts) == 2 {
			service.HandleSubmissionManifest(w, r, parts[0])
			return
		}
	case "files":
		service.HandleSubmissionFiles(w, r, parts[0], parts[2:])
		return
	}
	http.NotFound(w, r)
}
