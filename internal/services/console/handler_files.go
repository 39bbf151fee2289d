package console

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/indie-hain/console/internal/platform/timeouts"
	"github.com/indie-hain/console/internal/services/console/routepath"
	"github.com/indie-hain/console/internal/services/console/templates"
	"golang.org/x/net/websocket"
)

// HandleSubmissionManifest loads and renders the manifest panel.
func (h *Handler) HandleSubmissionManifest(w http.ResponseWriter, r *http.Request, rawID string) {
	submissionID, ok := parseSubmissionID(rawID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := h.pageContext(w, r)
	if sc := sessionFromContext(r.Context()); sc != nil {
		h.views.SetOpenManifest(sc.session.ID, submissionID)
	}
	view, ok := h.manifestView(r, ctx, submissionID)
	if !ok {
		http.Error(w, ctx.Loc.Sprintf("error.manifest_unavailable"), http.StatusBadGateway)
		return
	}
	h.renderPage(w, r, ctx, "manifest.html", view, "title.submissions")
}

func (h *Handler) manifestView(r *http.Request, ctx templates.PageContext, submissionID int64) (*templates.ManifestView, bool) {
	sc := sessionFromContext(r.Context())
	if sc == nil {
		return nil, false
	}
	reqCtx, cancel := context.WithTimeout(r.Context(), timeouts.APIRequest)
	defer cancel()

	manifest, err := sc.client.SubmissionManifest(reqCtx, submissionID)
	if err != nil {
		log.Printf("manifest for submission %d: %v", submissionID, err)
		return nil, false
	}
	view := &templates.ManifestView{
		Ctx:          ctx,
		SubmissionID: submissionID,
		App:          manifest.App,
		Version:      manifest.Version,
		Platform:     manifest.Platform,
		Channel:      manifest.Channel,
		TotalSize:    formatBytes(manifest.TotalSize),
	}
	for _, file := range manifest.Files {
		view.Files = append(view.Files, templates.ManifestFileRow{
			Path: file.Path,
			Size: formatBytes(file.Size),
		})
	}
	return view, true
}

// HandleSubmissionFiles dispatches /submissions/{id}/files and its
// sub-routes: downloads, verification and the progress websocket.
func (h *Handler) HandleSubmissionFiles(w http.ResponseWriter, r *http.Request, rawID string, rest []string) {
	submissionID, ok := parseSubmissionID(rawID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if len(rest) == 0 {
		h.handleFilesPanel(w, r, submissionID)
		return
	}
	switch rest[0] {
	case "zip":
		h.handleFilesZip(w, r, submissionID)
	case "download":
		h.handleFileDownload(w, r, submissionID)
	case "verify":
		h.handleFileVerify(w, r, submissionID)
	case "verify-batch":
		h.handleFilesVerifyBatch(w, r, submissionID)
	case "progress":
		if len(rest) == 2 && rest[1] == "ws" {
			h.handleFilesProgressWS(w, r, submissionID)
			return
		}
		http.NotFound(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) handleFilesPanel(w http.ResponseWriter, r *http.Request, submissionID int64) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := h.pageContext(w, r)
	if sc := sessionFromContext(r.Context()); sc != nil {
		h.views.SetOpenFiles(sc.session.ID, submissionID)
	}
	view, ok := h.filesView(r, ctx, submissionID, "", false)
	if !ok {
		http.Error(w, ctx.Loc.Sprintf("error.files_unavailable"), http.StatusBadGateway)
		return
	}
	h.renderPage(w, r, ctx, "files.html", view, "title.submissions")
}

func (h *Handler) filesView(r *http.Request, ctx templates.PageContext, submissionID int64, message string, isErr bool) (*templates.FilesView, bool) {
	sc := sessionFromContext(r.Context())
	if sc == nil {
		return nil, false
	}
	reqCtx, cancel := context.WithTimeout(r.Context(), timeouts.APIRequest)
	defer cancel()

	files, err := sc.client.SubmissionFiles(reqCtx, submissionID)
	if err != nil {
		log.Printf("files for submission %d: %v", submissionID, err)
		return nil, false
	}

	view := &templates.FilesView{
		Ctx:             ctx,
		SubmissionID:    submissionID,
		ZipPath:         routepath.SubmissionFilesZip(submissionID),
		VerifyBatchPath: routepath.SubmissionFilesVerifyBatch(submissionID),
		ProgressWSPath:  routepath.SubmissionFilesProgressWS(submissionID),
		Message:         message,
		MessageIsErr:    isErr,
	}
	if frame, ok := h.progress.Latest(submissionID); ok {
		view.Progress = ctx.Loc.Sprintf("files.progress", frame.Done, frame.Total)
	}

	records := h.verified.ForSubmission(submissionID)
	for _, file := range files {
		row := templates.FileRow{
			Path:         file.Path,
			Size:         formatBytes(file.Size),
			DownloadPath: routepath.SubmissionFileDownload(submissionID, file.Path),
			VerifyPath:   routepath.SubmissionFileVerify(submissionID, file.Path),
		}
		if record, ok := records[file.Path]; ok {
			row.Checked = true
			row.OK = record.OK()
			row.Expected = record.Expected
			row.Error = record.Error
			if record.OK() {
				row.ResultLabel = ctx.Loc.Sprintf("files.ok")
			} else {
				row.ResultLabel = ctx.Loc.Sprintf("files.mismatch")
			}
		}
		view.Rows = append(view.Rows, row)
	}
	return view, true
}

// handleFilesZip proxies the zipped build artifact to the operator.
func (h *Handler) handleFilesZip(w http.ResponseWriter, r *http.Request, submissionID int64) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sc := sessionFromContext(r.Context())
	if sc == nil {
		h.redirectToLogin(w, r, "")
		return
	}
	reqCtx, cancel := context.WithTimeout(r.Context(), timeouts.APIStream)
	defer cancel()

	body, header, err := sc.client.DownloadSubmissionZip(reqCtx, submissionID)
	if err != nil {
		if h.teardownOnAuthError(w, r, err) {
			return
		}
		log.Printf("zip for submission %d: %v", submissionID, err)
		http.Error(w, "upstream error", http.StatusBadGateway)
		return
	}
	defer body.Close()
	proxyDownload(w, body, header, "application/zip")
}

// handleFileDownload proxies a single build file.
func (h *Handler) handleFileDownload(w http.ResponseWriter, r *http.Request, submissionID int64) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	loc, _ := h.localizer(w, r)
	path := r.URL.Query().Get("path")
	if strings.TrimSpace(path) == "" {
		http.Error(w, loc.Sprintf("error.invalid_request"), http.StatusBadRequest)
		return
	}
	sc := sessionFromContext(r.Context())
	if sc == nil {
		h.redirectToLogin(w, r, "")
		return
	}
	reqCtx, cancel := context.WithTimeout(r.Context(), timeouts.APIStream)
	defer cancel()

	body, header, err := sc.client.DownloadSubmissionFile(reqCtx, submissionID, path)
	if err != nil {
		if h.teardownOnAuthError(w, r, err) {
			return
		}
		log.Printf("download %s for submission %d: %v", path, submissionID, err)
		http.Error(w, "upstream error", http.StatusBadGateway)
		return
	}
	defer body.Close()
	proxyDownload(w, body, header, "application/octet-stream")
}

// proxyDownload copies an upstream stream to the response, carrying over
// the size and disposition headers when the upstream set them.
func proxyDownload(w http.ResponseWriter, body io.Reader, header http.Header, fallbackType string) {
	contentType := header.Get("Content-Type")
	if contentType == "" {
		contentType = fallbackType
	}
	w.Header().Set("Content-Type", contentType)
	for _, name := range []string{"Content-Length", "Content-Disposition"} {
		if value := header.Get(name); value != "" {
			w.Header().Set(name, value)
		}
	}
	if _, err := io.Copy(w, body); err != nil {
		log.Printf("proxy download: %v", err)
	}
}

// handleFileVerify re-checks a single file and re-renders the panel.
func (h *Handler) handleFileVerify(w http.ResponseWriter, r *http.Request, submissionID int64) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := h.pageContext(w, r)
	if !requireSameOrigin(w, r, ctx.Loc) {
		return
	}
	path := r.URL.Query().Get("path")
	if strings.TrimSpace(path) == "" {
		http.Error(w, ctx.Loc.Sprintf("error.invalid_request"), http.StatusBadRequest)
		return
	}
	sc := sessionFromContext(r.Context())
	if sc == nil {
		h.redirectToLogin(w, r, "")
		return
	}

	reqCtx, cancel := context.WithTimeout(r.Context(), timeouts.APIRequest)
	defer cancel()

	message, isErr := "", false
	if _, err := h.verifier.VerifyFile(reqCtx, sc.client, submissionID, path); err != nil {
		if h.teardownOnAuthError(w, r, err) {
			return
		}
		log.Printf("verify %s for submission %d: %v", path, submissionID, err)
		message, isErr = ctx.Loc.Sprintf("error.verify_failed"), true
	}
	h.renderFilesPanel(w, r, ctx, submissionID, message, isErr)
}

// handleFilesVerifyBatch verifies every file of the submission and
// re-renders the panel with the outcome.
func (h *Handler) handleFilesVerifyBatch(w http.ResponseWriter, r *http.Request, submissionID int64) {
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

	reqCtx, cancel := context.WithTimeout(r.Context(), timeouts.APIStream)
	defer cancel()

	files, err := sc.client.SubmissionFiles(reqCtx, submissionID)
	if err != nil {
		if h.teardownOnAuthError(w, r, err) {
			return
		}
		log.Printf("files for submission %d: %v", submissionID, err)
		http.Error(w, ctx.Loc.Sprintf("error.files_unavailable"), http.StatusBadGateway)
		return
	}
	paths := make([]string, 0, len(files))
	for _, file := range files {
		paths = append(paths, file.Path)
	}

	message, isErr := "", false
	if err := h.verifier.VerifyBatch(reqCtx, sc.client, submissionID, paths); err != nil {
		if h.teardownOnAuthError(w, r, err) {
			return
		}
		log.Printf("verify batch for submission %d: %v", submissionID, err)
		message, isErr = ctx.Loc.Sprintf("error.verify_failed"), true
	}
	h.renderFilesPanel(w, r, ctx, submissionID, message, isErr)
}

func (h *Handler) renderFilesPanel(w http.ResponseWriter, r *http.Request, ctx templates.PageContext, submissionID int64, message string, isErr bool) {
	view, ok := h.filesView(r, ctx, submissionID, message, isErr)
	if !ok {
		http.Error(w, ctx.Loc.Sprintf("error.files_unavailable"), http.StatusBadGateway)
		return
	}
	h.renderPage(w, r, ctx, "files.html", view, "title.submissions")
}

// handleFilesProgressWS streams verification progress frames over a
// websocket. The latest known frame is replayed on connect so a client
// joining mid-run sees the current state immediately.
func (h *Handler) handleFilesProgressWS(w http.ResponseWriter, r *http.Request, submissionID int64) {
	websocket.Handler(func(conn *websocket.Conn) {
		defer conn.Close()

		frames, cancel := h.progress.Subscribe(submissionID)
		defer cancel()

		if frame, ok := h.progress.Latest(submissionID); ok {
			if err := sendProgressFrame(conn, frame); err != nil {
				return
			}
		}
		for {
			select {
			case frame, ok := <-frames:
				if !ok {
					return
				}
				if err := sendProgressFrame(conn, frame); err != nil {
					return
				}
			case <-conn.Request().Context().Done():
				return
			}
		}
	}).ServeHTTP(w, r)
}

func sendProgressFrame(conn *websocket.Conn, frame progressFrame) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	return websocket.Message.Send(conn, string(payload))
}
