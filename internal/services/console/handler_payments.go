package console

import (
	"net/http"

	"github.com/indie-hain/console/internal/services/console/templates"
)

// HandlePaymentsPage renders the dev-upgrade payments page.
func (h *Handler) HandlePaymentsPage(w http.ResponseWriter, r *http.Request) {
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

	view := templates.PaymentsView{Ctx: ctx, Message: message, MessageIsErr: isErr}
	snapshot := h.snapshots.Current()
	if snapshot != nil {
		if snapshot.PaymentsErr != "" {
			view.Note = ctx.Loc.Sprintf("dashboard.payments_unavailable")
		}
		for _, payment := range snapshot.Payments {
			view.Rows = append(view.Rows, templates.PaymentRow{
				ID:       payment.ID,
				UserID:   payment.UserID,
				Email:    payment.Email,
				Amount:   formatAmount(payment.Amount, payment.Currency),
				Currency: payment.Currency,
				Status:   payment.Status,
				Created:  payment.CreatedAt,
			})
		}
	}
	h.renderPage(w, r, ctx, "payments.html", view, "title.payments")
}
