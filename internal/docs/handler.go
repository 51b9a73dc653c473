package docs

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fleetgate/internal/platform/metrics"
	"fleetgate/internal/platform/middleware"
	"fleetgate/internal/transport/http/shared"
	dErrors "fleetgate/pkg/domain-errors"
)

// Handler serves the documentation pages.
type Handler struct {
	service *Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewHandler(service *Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{service: service, logger: logger, metrics: m}
}

// Register attaches the docs routes as an inline group so several domain
// handlers can share one parent router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Recovery(h.logger))
		r.Use(middleware.RequestID)
		r.Use(middleware.Logger(h.logger))
		r.Use(middleware.Timeout(10 * time.Second))
		r.Use(middleware.LatencyMiddleware(h.metrics))
		r.Get("/docs/{page}", h.handlePage)
	})
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	page := Page(chi.URLParam(r, "page"))
	html, ok := h.service.Render(page)
	if !ok {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown documentation page"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(html)
}
