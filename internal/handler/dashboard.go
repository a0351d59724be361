package handler

import (
	"log/slog"
	"net/http"

	"github.com/Meerdlawar/SweetDive/internal/api"
	"github.com/Meerdlawar/SweetDive/internal/domain"
	"github.com/Meerdlawar/SweetDive/internal/session"
)

// DashboardHandler serves the landing screen with headline counts and the
// most recent orders.
type DashboardHandler struct {
	base
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(client *api.Client, sessions *session.Store, renderer *Renderer, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{base: base{
		client:   client,
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
	}}
}

// Dashboard renders the dashboard.
//
// GET /
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := h.sessions.Context(r)

	data := h.page(w, r, "Dashboard")

	stats, err := h.client.DashboardStats(ctx)
	if err != nil {
		if domain.ErrorCode(err) == domain.EUNAUTHORIZED {
			h.Error(w, r, err)
			return
		}
		// Degrade rather than fail: the nav stays usable when the
		// backend cannot produce numbers.
		h.logError(r, err, domain.ErrorCode(err))
		data["LoadError"] = domain.ErrorMessage(err)
		h.renderer.RenderHTTP(w, "dashboard", data)
		return
	}

	data["Stats"] = stats
	h.renderer.RenderHTTP(w, "dashboard", data)
}
