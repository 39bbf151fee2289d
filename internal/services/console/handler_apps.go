package console

import (
	"net/http"

	"github.com/indie-hain/console/internal/services/console/query"
	"github.com/indie-hain/console/internal/services/console/templates"
)

func appFilterFromRequest(r *http.Request) query.AppFilter {
	return query.AppFilter{
		Price: r.FormValue("price"),
		Text:  r.FormValue("q"),
	}
}

// HandleAppsPage renders the public catalog page.
func (h *Handler) HandleAppsPage(w http.ResponseWriter, r *http.Request) {
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
	view := h.appsView(ctx, appFilterFromRequest(r), message, isErr)
	h.renderPage(w, r, ctx, "apps.html", view, "title.apps")
}

// HandleAppsTable re-renders the catalog table for a filter change.
func (h *Handler) HandleAppsTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := h.pageContext(w, r)
	view := h.appsView(ctx, appFilterFromRequest(r), "", false)
	h.renderPage(w, r, ctx, "apps_table.html", view, "title.apps")
}

func (h *Handler) appsView(ctx templates.PageContext, filter query.AppFilter, message string, isErr bool) templates.AppsView {
	view := templates.AppsView{
		Ctx:          ctx,
		PriceOptions: priceOptions(filter.Price, ctx.Loc),
		Text:         filter.Text,
		Message:      message,
		MessageIsErr: isErr,
	}
	snapshot := h.snapshots.Current()
	if snapshot == nil {
		return view
	}
	for _, app := range query.FilterApps(snapshot.Apps, filter) {
		view.Rows = append(view.Rows, templates.AppRow{
			ID:          app.ID,
			Slug:        app.Slug,
			Title:       app.Title,
			Price:       formatPrice(app.Price),
			Sale:        formatSale(app.SalePercent),
			Description: app.Description,
		})
	}
	return view
}
