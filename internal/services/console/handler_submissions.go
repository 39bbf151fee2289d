package console

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/indie-hain/console/internal/distribution"
	"github.com/indie-hain/console/internal/platform/timeouts"
	"github.com/indie-hain/console/internal/services/console/query"
	"github.com/indie-hain/console/internal/services/console/routepath"
	"github.com/indie-hain/console/internal/services/console/templates"
)

// submissionFilterFromRequest reads filter criteria from the request. The
// parsed filter becomes the session's sticky filter on table requests.
func submissionFilterFromRequest(r *http.Request) query.SubmissionFilter {
	return query.SubmissionFilter{
		Status:   r.FormValue("status"),
		Platform: r.FormValue("platform"),
		Channel:  r.FormValue("channel"),
		SLA:      query.Bucket(r.FormValue("sla")),
		Text:     r.FormValue("q"),
	}
}

// HandleSubmissionsPage renders the moderation queue page.
func (h *Handler) HandleSubmissionsPage(w http.ResponseWriter, r *http.Request) {
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
	view := h.submissionsView(r, ctx, message, isErr)
	h.renderPage(w, r, ctx, "submissions.html", view, "title.submissions")
}

// HandleSubmissionsTable applies the submitted filter and re-renders the
// queue fragment.
func (h *Handler) HandleSubmissionsTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := h.pageContext(w, r)
	if sc := sessionFromContext(r.Context()); sc != nil {
		h.views.SetFilter(sc.session.ID, submissionFilterFromRequest(r))
	}
	h.renderSubmissionsTable(w, r, ctx, "", false)
}

// HandleSubmissionsSelect toggles one submission in the selection set.
func (h *Handler) HandleSubmissionsSelect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := h.pageContext(w, r)
	if !requireSameOrigin(w, r, ctx.Loc) {
		return
	}
	submissionID, err := strconv.ParseInt(r.PostFormValue("id"), 10, 64)
	if err != nil || submissionID <= 0 {
		http.Error(w, ctx.Loc.Sprintf("error.invalid_request"), http.StatusBadRequest)
		return
	}
	if sc := sessionFromContext(r.Context()); sc != nil {
		h.views.Toggle(sc.session.ID, submissionID)
	}
	h.renderSubmissionsTable(w, r, ctx, "", false)
}

// HandleSubmissionsSelectSection selects or clears every visible row of one
// status section.
func (h *Handler) HandleSubmissionsSelectSection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := h.pageContext(w, r)
	if !requireSameOrigin(w, r, ctx.Loc) {
		return
	}
	status := r.PostFormValue("status")
	clear := r.PostFormValue("mode") == "clear"

	if sc := sessionFromContext(r.Context()); sc != nil {
		ids := h.visibleSectionIDs(sc.session.ID, status)
		if clear {
			h.views.ClearSection(sc.session.ID, ids)
		} else {
			h.views.SelectAll(sc.session.ID, ids)
		}
	}
	h.renderSubmissionsTable(w, r, ctx, "", false)
}

// visibleSectionIDs returns the IDs of the filtered view rows carrying the
// given status. Section selection only ever touches visible rows.
func (h *Handler) visibleSectionIDs(sessionID, status string) []int64 {
	snapshot := h.snapshots.Current()
	if snapshot == nil {
		return nil
	}
	view := h.filteredSubmissions(snapshot, h.views.Filter(sessionID))
	ids := make([]int64, 0, len(view))
	for _, sub := range view {
		if sub.Status == status {
			ids = append(ids, sub.ID)
		}
	}
	return ids
}

// HandleSubmissionsBulk runs a bulk approve or reject over the selection.
func (h *Handler) HandleSubmissionsBulk(w http.ResponseWriter, r *http.Request) {
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
	if sc == nil {
		h.redirectToLogin(w, r, "")
		return
	}
	approve := r.PostFormValue("action") == "approve"
	note := strings.TrimSpace(r.PostFormValue("note"))

	report, err := bulkUpdate(r.Context(), sc.client, h.views, sc.session.ID, h.snapshots.Current(), approve, note)
	if err != nil {
		h.renderSubmissionsTable(w, r, ctx, ctx.Loc.Sprintf("error.no_matching_selection"), true)
		return
	}
	if authErr := report.firstAuthErr(); authErr != nil && h.teardownOnAuthError(w, r, authErr) {
		return
	}

	message, isErr := "", false
	if failed := report.Failed(); failed > 0 {
		message, isErr = ctx.Loc.Sprintf("error.bulk_failures", failed), true
	}

	// Reload so transitioned rows show their new status. A failed reload
	// keeps the stale snapshot and the failure tally.
	if _, lerr := h.load(r.Context(), sc.client); lerr != nil {
		if h.teardownOnAuthError(w, r, lerr) {
			return
		}
		log.Printf("reload after bulk: %v", lerr)
	}
	h.renderSubmissionsTable(w, r, ctx, message, isErr)
}

// HandleSubmissionApprove approves a single submission.
func (h *Handler) HandleSubmissionApprove(w http.ResponseWriter, r *http.Request, submissionID string) {
	if id, ok := parseSubmissionID(submissionID); ok {
		h.moderateSubmission(w, r, id, true)
		return
	}
	http.NotFound(w, r)
}

// HandleSubmissionReject rejects a single submission with an optional note.
func (h *Handler) HandleSubmissionReject(w http.ResponseWriter, r *http.Request, submissionID string) {
	if id, ok := parseSubmissionID(submissionID); ok {
		h.moderateSubmission(w, r, id, false)
		return
	}
	http.NotFound(w, r)
}

func parseSubmissionID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) moderateSubmission(w http.ResponseWriter, r *http.Request, submissionID int64, approve bool) {
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
	if sc == nil {
		h.redirectToLogin(w, r, "")
		return
	}

	reqCtx, cancel := context.WithTimeout(r.Context(), timeouts.APIRequest)
	defer cancel()

	var err error
	if approve {
		err = sc.client.ApproveSubmission(reqCtx, submissionID)
	} else {
		note := strings.TrimSpace(r.PostFormValue("note"))
		if note == "" {
			note = defaultRejectNote
		}
		err = sc.client.RejectSubmission(reqCtx, submissionID, note)
	}

	message, isErr := "", false
	if err != nil {
		if h.teardownOnAuthError(w, r, err) {
			return
		}
		log.Printf("moderate submission %d: %v", submissionID, err)
		message, isErr = ctx.Loc.Sprintf("error.action_failed"), true
	} else if _, lerr := h.load(r.Context(), sc.client); lerr != nil {
		if h.teardownOnAuthError(w, r, lerr) {
			return
		}
		log.Printf("reload after moderation: %v", lerr)
	}
	h.renderSubmissionsTable(w, r, ctx, message, isErr)
}

// filteredSubmissions resolves the filtered, sorted queue view through the
// per-generation memo cache.
func (h *Handler) filteredSubmissions(snapshot *Snapshot, filter query.SubmissionFilter) []distribution.Submission {
	if view, ok := h.subCache.Get(snapshot.Generation, filter); ok {
		return view
	}
	view := query.FilterSubmissions(snapshot.Submissions, filter, time.Now())
	h.subCache.Put(snapshot.Generation, filter, view)
	return view
}

func (h *Handler) renderSubmissionsTable(w http.ResponseWriter, r *http.Request, ctx templates.PageContext, message string, isErr bool) {
	view := h.submissionsView(r, ctx, message, isErr)
	h.renderPage(w, r, ctx, "submissions_table.html", view, "title.submissions")
}

func (h *Handler) submissionsView(r *http.Request, ctx templates.PageContext, message string, isErr bool) templates.SubmissionsView {
	var sessionID string
	if sc := sessionFromContext(r.Context()); sc != nil {
		sessionID = sc.session.ID
	}
	filter := h.views.Filter(sessionID)

	view := templates.SubmissionsView{
		Ctx:          ctx,
		Text:         filter.Text,
		Message:      message,
		MessageIsErr: isErr,
	}

	snapshot := h.snapshots.Current()
	var subs []distribution.Submission
	if snapshot != nil {
		subs = h.filteredSubmissions(snapshot, filter)
	}

	var platforms, channels []string
	if snapshot != nil {
		platforms = distinctValues(snapshot.Submissions, func(s distribution.Submission) string { return s.Platform })
		channels = distinctValues(snapshot.Submissions, func(s distribution.Submission) string { return s.Channel })
	}
	view.StatusOptions = statusOptions(filter.Status, ctx.Loc)
	view.PlatformOptions = selectOptions(platforms, filter.Platform, func(v string) string { return v }, ctx.Loc)
	view.ChannelOptions = selectOptions(channels, filter.Channel, func(v string) string { return v }, ctx.Loc)
	view.SLAOptions = slaOptions(filter.SLA, ctx.Loc)

	selected := h.views.SelectedIDs(sessionID)
	view.SelectedCount = len(selected)
	now := time.Now()

	sections := map[string][]templates.SubmissionRow{}
	for _, sub := range subs {
		bucket := query.SLABucket(now, sub.CreatedAt)
		sections[sub.Status] = append(sections[sub.Status], templates.SubmissionRow{
			ID:           sub.ID,
			AppSlug:      sub.AppSlug,
			Version:      sub.Version,
			Platform:     sub.Platform,
			Channel:      sub.Channel,
			Status:       sub.Status,
			StatusLabel:  formatStatus(sub.Status, ctx.Loc),
			SLA:          string(bucket),
			SLALabel:     formatSLA(bucket, ctx.Loc),
			Age:          formatAge(now, sub.CreatedAt),
			Note:         sub.Note,
			Selected:     hasID(selected, sub.ID),
			Pending:      sub.Status == distribution.StatusPending,
			TogglePath:   routepath.SubmissionsSelect,
			ApprovePath:  routepath.SubmissionApprove(sub.ID),
			RejectPath:   routepath.SubmissionReject(sub.ID),
			ManifestPath: routepath.SubmissionManifest(sub.ID),
			FilesPath:    routepath.SubmissionFiles(sub.ID),
		})
	}
	// Pending first; the queue is primarily a pending worklist.
	for _, status := range []string{distribution.StatusPending, distribution.StatusApproved, distribution.StatusRejected} {
		rows := sections[status]
		if len(rows) == 0 && filter.Status != status {
			continue
		}
		view.Sections = append(view.Sections, templates.SubmissionSection{
			Status:     status,
			Label:      formatStatus(status, ctx.Loc),
			Rows:       rows,
			SelectPath: routepath.SubmissionsSelectSection,
			ClearPath:  routepath.SubmissionsSelectSection,
		})
	}

	manifestID, filesID := h.views.OpenPanels(sessionID)
	if manifestID != 0 {
		if manifest, ok := h.manifestView(r, ctx, manifestID); ok {
			view.Manifest = manifest
		}
	}
	if filesID != 0 {
		if files, ok := h.filesView(r, ctx, filesID, "", false); ok {
			view.Files = files
		}
	}
	return view
}

func hasID(set map[int64]struct{}, id int64) bool {
	_, ok := set[id]
	return ok
}
