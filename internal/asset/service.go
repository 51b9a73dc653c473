package asset

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"fleetgate/internal/audit"
	"fleetgate/internal/device"
	"fleetgate/internal/notify"
	"fleetgate/internal/platform/metrics"
	"fleetgate/internal/platform/middleware"
	"fleetgate/internal/validation"
	dErrors "fleetgate/pkg/domain-errors"
	"fleetgate/pkg/sentinel"
)

// Enqueuer accepts notification jobs without blocking the caller.
type Enqueuer interface {
	Enqueue(ctx context.Context, job notify.Job)
}

// Service handles asset registration and maintenance.
type Service struct {
	store   Store
	devices device.Store
	forms   *Forms
	notify  Enqueuer
	staff   []string
	baseURL string

	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   *audit.Publisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAudit(pub *audit.Publisher) Option {
	return func(s *Service) { s.audit = pub }
}

// WithStaffRecipients sets who is notified when an asset is registered.
func WithStaffRecipients(emails []string) Option {
	return func(s *Service) { s.staff = emails }
}

func New(store Store, devices device.Store, accounts []string, notifier Enqueuer, baseURL string, opts ...Option) *Service {
	s := &Service{
		store:   store,
		devices: devices,
		forms:   NewForms(devices, accounts),
		notify:  notifier,
		baseURL: baseURL,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates a submission, persists the asset, claims its tracking
// unit, and notifies staff. The staff email is best effort.
func (s *Service) Create(ctx context.Context, raw map[string]string) (Asset, []validation.Error, error) {
	payload, rejections, err := s.forms.SubmitCreate(ctx, raw)
	if err != nil {
		return Asset{}, nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "device directory unavailable")
	}
	if len(rejections) > 0 {
		s.recordRejection(ctx, "asset_create", rejections)
		return Asset{}, rejections, nil
	}

	a := Asset{
		ID:        uuid.New(),
		Name:      payload.Get("name"),
		VIN:       payload.Get("vin_number"),
		IMEI:      payload.Get("imei_number"),
		Account:   payload.Get("account"),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Create(ctx, a); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return Asset{}, nil, dErrors.New(dErrors.CodeConflict, "vin already registered")
		}
		return Asset{}, nil, dErrors.Wrap(err, dErrors.CodeInternal, "create asset")
	}
	if err := s.devices.MarkAssigned(ctx, a.IMEI); err != nil {
		s.logger.WarnContext(ctx, "claim device failed",
			"request_id", middleware.GetRequestID(ctx),
			"imei", a.IMEI,
			"error", err.Error(),
		)
	}

	if s.metrics != nil {
		s.metrics.SubmissionsAccepted.Inc()
		s.metrics.AssetsCreated.Inc()
	}
	s.emit(ctx, audit.Event{
		Action:  audit.ActionAssetCreated,
		Subject: a.VIN,
		Params:  map[string]string{"imei": a.IMEI, "account": a.Account},
	})
	s.notifyStaff(ctx, a)

	s.logger.InfoContext(ctx, "asset created",
		"request_id", middleware.GetRequestID(ctx),
		"asset_id", a.ID.String(),
		"vin", a.VIN,
	)
	return a, nil, nil
}

// Rename validates the update submission and renames the asset.
func (s *Service) Rename(ctx context.Context, id uuid.UUID, raw map[string]string) ([]validation.Error, error) {
	payload, rejections, err := s.forms.SubmitUpdate(ctx, raw)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "validation unavailable")
	}
	if len(rejections) > 0 {
		s.recordRejection(ctx, "asset_update", rejections)
		return rejections, nil
	}

	if err := s.store.Rename(ctx, id, payload.Get("name")); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "asset not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "rename asset")
	}
	if s.metrics != nil {
		s.metrics.SubmissionsAccepted.Inc()
	}
	return nil, nil
}

// Get returns one asset.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Asset, error) {
	a, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Asset{}, dErrors.New(dErrors.CodeNotFound, "asset not found")
		}
		return Asset{}, dErrors.Wrap(err, dErrors.CodeInternal, "get asset")
	}
	return a, nil
}

func (s *Service) notifyStaff(ctx context.Context, a Asset) {
	if s.notify == nil || len(s.staff) == 0 {
		return
	}
	job := notify.NewJob(
		notify.TemplateAssetCreated,
		"New asset registered",
		map[string]any{
			"vin":     a.VIN,
			"imei":    a.IMEI,
			"account": a.Account,
		},
		s.staff...,
	)
	s.notify.Enqueue(ctx, job)
}

func (s *Service) recordRejection(ctx context.Context, formName string, rejections []validation.Error) {
	if s.metrics != nil {
		s.metrics.SubmissionsRejected.Inc()
	}
	params := make(map[string]string, len(rejections))
	for _, r := range rejections {
		params[r.Field] = string(r.Code)
	}
	s.emit(ctx, audit.Event{
		Action:  audit.ActionSubmissionRejected,
		Subject: formName,
		Params:  params,
	})
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	event.RequestID = middleware.GetRequestID(ctx)
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "error", err.Error())
	}
}
