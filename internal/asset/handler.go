package asset

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"fleetgate/internal/platform/metrics"
	"fleetgate/internal/platform/middleware"
	"fleetgate/internal/transport/http/shared"
	dErrors "fleetgate/pkg/domain-errors"
)

const qrSizePixels = 256

// Handler exposes asset registration over HTTP. All routes require a portal
// access token.
type Handler struct {
	service      *Service
	logger       *slog.Logger
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
	baseURL      string
}

func NewHandler(service *Service, logger *slog.Logger, m *metrics.Metrics, jwtValidator middleware.JWTValidator, baseURL string) *Handler {
	return &Handler{
		service:      service,
		logger:       logger,
		metrics:      m,
		jwtValidator: jwtValidator,
		baseURL:      baseURL,
	}
}

// Register attaches the asset routes as an inline group so several domain
// handlers can share one parent router. All routes require a portal token.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Recovery(h.logger))
		r.Use(middleware.RequestID)
		r.Use(middleware.Logger(h.logger))
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.LatencyMiddleware(h.metrics))
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/assets", h.handleCreate)
		r.Get("/assets/{id}", h.handleGet)
		r.Put("/assets/{id}/name", h.handleRename)
		r.Get("/assets/{id}/qr.png", h.handleQR)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var raw map[string]string
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		h.logger.WarnContext(ctx, "invalid asset request",
			"request_id", requestID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	a, rejections, err := h.service.Create(ctx, raw)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "asset create failed",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}
	if len(rejections) > 0 {
		shared.WriteRejection(w, rejections)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid asset id"))
		return
	}
	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) handleRename(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid asset id"))
		return
	}

	var raw map[string]string
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	rejections, err := h.service.Rename(ctx, id, raw)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if len(rejections) > 0 {
		shared.WriteRejection(w, rejections)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleQR serves a PNG QR label encoding the asset's tracking URL.
func (h *Handler) handleQR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid asset id"))
		return
	}

	a, err := h.service.Get(ctx, id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	png, err := qrcode.Encode(a.TrackingURL(h.baseURL), qrcode.Medium, qrSizePixels)
	if err != nil {
		h.logger.ErrorContext(ctx, "qr encode failed",
			"request_id", middleware.GetRequestID(ctx),
			"asset_id", a.ID.String(),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "qr generation failed"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
