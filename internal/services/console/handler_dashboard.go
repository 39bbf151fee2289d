package console

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/indie-hain/console/internal/distribution"
	"github.com/indie-hain/console/internal/services/console/query"
	"github.com/indie-hain/console/internal/services/console/routepath"
	"github.com/indie-hain/console/internal/services/console/templates"
)

// HandleDashboard renders the KPI overview, running the first load lazily.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	// "/" is a catch-all pattern; anything else under it is a 404.
	if r.URL.Path != routepath.Root {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sc := sessionFromContext(r.Context())
	ctx := h.pageContext(w, r)

	message, isErr := "", false
	if h.snapshots.Current() == nil && sc != nil {
		// First visit after startup: populate the snapshot before rendering.
		if _, err := h.load(r.Context(), sc.client); err != nil {
			if h.teardownOnAuthError(w, r, err) {
				return
			}
			log.Printf("initial load: %v", err)
			message, isErr = ctx.Loc.Sprintf("error.load_failed"), true
		}
	}

	view := h.dashboardView(ctx, message, isErr)
	h.renderPage(w, r, ctx, "dashboard.html", view, "title.dashboard")
}

// HandleReload runs a full load and re-renders whichever fragment the
// request targets, so the refresh button works from the dashboard and the
// moderation queue alike.
func (h *Handler) HandleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := h.pageContext(w, r)
	if !requireSameOrigin(w, r, ctx.Loc) {
		return
	}
	sc := sessionFromContext(r.Context())

	message, isErr := "", false
	if sc != nil {
		if _, err := h.load(r.Context(), sc.client); err != nil {
			if h.teardownOnAuthError(w, r, err) {
				return
			}
			log.Printf("reload: %v", err)
			message, isErr = ctx.Loc.Sprintf("error.load_failed"), true
		}
	}

	switch r.Header.Get("HX-Target") {
	case "submissions-table":
		h.renderSubmissionsTable(w, r, ctx, message, isErr)
	default:
		view := h.dashboardView(ctx, message, isErr)
		h.renderPage(w, r, ctx, "dashboard.html", view, "title.dashboard")
	}
}

func (h *Handler) dashboardView(ctx templates.PageContext, message string, isErr bool) templates.DashboardView {
	view := templates.DashboardView{Ctx: ctx, Message: message, MessageIsErr: isErr}
	snapshot := h.snapshots.Current()
	if snapshot == nil {
		return view
	}
	view.LoadedAt = snapshot.LoadedAt.Format(time.RFC3339)
	if snapshot.OverviewErr != "" {
		view.OverviewNote = ctx.Loc.Sprintf("dashboard.overview_unavailable")
	}
	if snapshot.PaymentsErr != "" {
		view.PaymentsNote = ctx.Loc.Sprintf("dashboard.payments_unavailable")
	}

	counts := query.CountsFromOverview(snapshot.Overview, snapshot.Submissions, time.Now())
	usersTotal := int64(len(snapshot.Users))
	appsTotal := int64(len(snapshot.Apps))
	if snapshot.Overview != nil {
		if snapshot.Overview.Users != nil && snapshot.Overview.Users.Total > 0 {
			usersTotal = snapshot.Overview.Users.Total
		}
		if snapshot.Overview.Apps != nil && snapshot.Overview.Apps.Total > 0 {
			appsTotal = snapshot.Overview.Apps.Total
		}
	}

	view.KPIs = []templates.KPI{
		{Label: ctx.Loc.Sprintf("dashboard.users_total"), Value: formatCount(usersTotal)},
		{Label: ctx.Loc.Sprintf("dashboard.apps_total"), Value: formatCount(appsTotal)},
		{Label: ctx.Loc.Sprintf("dashboard.submissions_total"), Value: formatCount(counts.Total)},
	}
	for _, status := range []string{distribution.StatusPending, distribution.StatusApproved, distribution.StatusRejected} {
		view.StatusCounts = append(view.StatusCounts, templates.KPI{
			Label: formatStatus(status, ctx.Loc),
			Value: formatCount(counts.ByStatus[status]),
		})
	}
	for _, bucket := range []query.Bucket{query.BucketOK, query.BucketWarn, query.BucketCrit} {
		view.BucketCounts = append(view.BucketCounts, templates.KPI{
			Label: formatSLA(bucket, ctx.Loc),
			Value: formatCount(counts.ByBucket[bucket]),
		})
	}
	return view
}

func formatCount(count int64) string {
	return strconv.FormatInt(count, 10)
}
