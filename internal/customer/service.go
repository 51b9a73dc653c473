package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fleetgate/internal/audit"
	"fleetgate/internal/notify"
	"fleetgate/internal/platform/metrics"
	"fleetgate/internal/platform/middleware"
	"fleetgate/internal/validation"
	dErrors "fleetgate/pkg/domain-errors"
	emailutil "fleetgate/pkg/email"
	"fleetgate/pkg/sentinel"
)

// Enqueuer accepts notification jobs without blocking the caller.
type Enqueuer interface {
	Enqueue(ctx context.Context, job notify.Job)
}

// Service handles registration and login.
type Service struct {
	store   Store
	forms   *Forms
	tokens  *TokenService
	notify  Enqueuer
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

func New(store Store, tokens *TokenService, notifier Enqueuer, baseURL string, opts ...Option) *Service {
	s := &Service{
		store:   store,
		forms:   NewForms(UsernameLookup(store)),
		tokens:  tokens,
		notify:  notifier,
		baseURL: baseURL,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates a registration submission and creates the account. On
// success a welcome email is enqueued; delivery is best effort and never
// fails the registration.
func (s *Service) Register(ctx context.Context, raw map[string]string) (Customer, []validation.Error, error) {
	payload, rejections, err := s.forms.SubmitRegistration(ctx, raw)
	if err != nil {
		return Customer{}, nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "registration check unavailable")
	}
	if len(rejections) > 0 {
		s.recordRejection(ctx, "registration", rejections)
		return Customer{}, rejections, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Get("password1")), bcrypt.DefaultCost)
	if err != nil {
		return Customer{}, nil, fmt.Errorf("hash password: %w", err)
	}

	c := Customer{
		ID:           uuid.New(),
		Username:     payload.Get("username"),
		FirstName:    payload.Get("first_name"),
		LastName:     payload.Get("last_name"),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Create(ctx, c); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return Customer{}, nil, dErrors.New(dErrors.CodeConflict, "username already registered")
		}
		return Customer{}, nil, dErrors.Wrap(err, dErrors.CodeInternal, "create customer")
	}

	if s.metrics != nil {
		s.metrics.SubmissionsAccepted.Inc()
		s.metrics.CustomersRegistered.Inc()
	}
	s.emit(ctx, audit.Event{
		Action:  audit.ActionCustomerRegistered,
		Subject: c.Username,
	})
	s.sendWelcome(ctx, c)

	s.logger.InfoContext(ctx, "customer registered",
		"request_id", middleware.GetRequestID(ctx),
		"customer_id", c.ID.String(),
	)
	return c, nil, nil
}

// Login validates the submission and returns a signed access token.
func (s *Service) Login(ctx context.Context, raw map[string]string) (string, []validation.Error, error) {
	payload, rejections, err := s.forms.SubmitLogin(ctx, raw)
	if err != nil {
		return "", nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "user directory unavailable")
	}
	if len(rejections) > 0 {
		s.recordRejection(ctx, "login", rejections)
		return "", rejections, nil
	}

	c, err := s.store.FindByUsername(ctx, payload.Get("username"))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return "", nil, dErrors.Wrap(err, dErrors.CodeInternal, "find customer")
	}
	if err := bcrypt.CompareHashAndPassword(c.PasswordHash, []byte(payload.Get("password"))); err != nil {
		s.logger.WarnContext(ctx, "login rejected",
			"request_id", middleware.GetRequestID(ctx),
			"username", c.Username,
		)
		return "", nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := s.tokens.Generate(c)
	if err != nil {
		return "", nil, dErrors.Wrap(err, dErrors.CodeInternal, "sign token")
	}
	return token, nil, nil
}

func (s *Service) sendWelcome(ctx context.Context, c Customer) {
	if s.notify == nil {
		return
	}
	firstName := c.FirstName
	if firstName == "" {
		firstName, _ = emailutil.DeriveNameFromEmail(c.Username)
	}
	job := notify.NewJob(
		notify.TemplateRegistrationComplete,
		"Your account is ready",
		map[string]any{
			"first_name": firstName,
			"login_link": emailutil.LoginLink(s.baseURL, c.Username),
		},
		c.Username,
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
