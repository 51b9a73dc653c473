package subscription

import (
	"context"
	"fmt"
	"log/slog"

	"fleetgate/internal/audit"
	"fleetgate/internal/notify"
	emailutil "fleetgate/pkg/email"
)

// Enqueuer accepts notification jobs without blocking the caller.
type Enqueuer interface {
	Enqueue(ctx context.Context, job notify.Job)
}

// Service runs the daily balance update and tells customers when their
// subscription lapses.
type Service struct {
	store   Store
	notify  Enqueuer
	baseURL string
	logger  *slog.Logger
	audit   *audit.Publisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAudit(pub *audit.Publisher) Option {
	return func(s *Service) { s.audit = pub }
}

func New(store Store, notifier Enqueuer, baseURL string, opts ...Option) *Service {
	s := &Service{
		store:   store,
		notify:  notifier,
		baseURL: baseURL,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DailyUpdate decrements every active subscription by one day and enqueues a
// lapse notification for each one that ran out. Runs from the scheduler.
func (s *Service) DailyUpdate(ctx context.Context) error {
	lapsed, err := s.store.DecrementAll(ctx)
	if err != nil {
		return fmt.Errorf("subscription daily update: %w", err)
	}

	for _, sub := range lapsed {
		s.logger.InfoContext(ctx, "subscription lapsed",
			"account", sub.Account,
		)
		if s.audit != nil {
			_ = s.audit.Emit(ctx, audit.Event{
				Action:  audit.ActionSubscriptionLapsed,
				Subject: sub.Account,
			})
		}
		if s.notify == nil || sub.Email == "" {
			continue
		}
		firstName := sub.FirstName
		if firstName == "" {
			firstName, _ = emailutil.DeriveNameFromEmail(sub.Email)
		}
		job := notify.NewJob(
			notify.TemplateSubscriptionLapsed,
			"Your subscription has lapsed",
			map[string]any{
				"first_name": firstName,
				"renew_link": s.baseURL + "/billing/renew",
			},
			sub.Email,
		)
		s.notify.Enqueue(ctx, job)
	}
	return nil
}
