package customer

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fleetgate/internal/platform/metrics"
	"fleetgate/internal/platform/middleware"
	"fleetgate/internal/transport/http/shared"
	dErrors "fleetgate/pkg/domain-errors"
)

// Handler exposes registration and login over HTTP.
type Handler struct {
	service *Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewHandler(service *Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{service: service, logger: logger, metrics: m}
}

// Register attaches the customer routes. Each domain registers through an
// inline group so several handlers can share one parent router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Recovery(h.logger))
		r.Use(middleware.RequestID)
		r.Use(middleware.Logger(h.logger))
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.LatencyMiddleware(h.metrics))
		r.Post("/customers/register", h.handleRegister)
		r.Post("/customers/login", h.handleLogin)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var raw map[string]string
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		h.logger.WarnContext(ctx, "invalid registration request",
			"request_id", requestID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	c, rejections, err := h.service.Register(ctx, raw)
	if err != nil {
		if !dErrors.Is(err, dErrors.CodeConflict) && !dErrors.Is(err, dErrors.CodeUnavailable) {
			h.logger.ErrorContext(ctx, "registration failed",
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

	shared.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var raw map[string]string
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		h.logger.WarnContext(ctx, "invalid login request",
			"request_id", requestID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	token, rejections, err := h.service.Login(ctx, raw)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "login failed",
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

	shared.WriteJSON(w, http.StatusOK, map[string]string{"access_token": token})
}
