package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fleetgate/internal/asset"
	"fleetgate/internal/audit"
	"fleetgate/internal/customer"
	"fleetgate/internal/device"
	"fleetgate/internal/docs"
	"fleetgate/internal/notify"
	"fleetgate/internal/platform/config"
	"fleetgate/internal/platform/httpserver"
	"fleetgate/internal/platform/logger"
	"fleetgate/internal/platform/metrics"
	platformredis "fleetgate/internal/platform/redis"
	"fleetgate/internal/schedule"
	"fleetgate/internal/subscription"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("fatal", "error", err.Error())
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	m := metrics.New()

	// Stores fall back to memory when no database is configured, which keeps
	// local development free of infrastructure.
	var (
		customerStore     customer.Store
		assetStore        asset.Store
		deviceStore       device.Store
		subscriptionStore subscription.Store
	)
	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(context.Background()); err != nil {
			return err
		}
		customerStore = customer.NewPostgres(db)
		assetStore = asset.NewPostgres(db)
		deviceStore = device.NewPostgres(db)
		subscriptionStore = subscription.NewPostgres(db)
		log.Info("using postgres stores")
	} else {
		customerStore = customer.NewMemoryStore()
		assetStore = asset.NewMemoryStore()
		deviceStore = device.NewMemoryStore()
		subscriptionStore = subscription.NewMemoryStore()
		log.Warn("no postgres DSN configured, using in-memory stores")
	}

	// Audit trail: local store always, Kafka fan-out when brokers are set.
	auditStore := audit.Store(audit.NewMemoryStore())
	if len(cfg.Kafka.Brokers) > 0 {
		sink, err := audit.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic, auditStore, log)
		if err != nil {
			return err
		}
		defer sink.Close()
		auditStore = sink
		log.Info("audit events fan out to kafka", "topic", cfg.Kafka.Topic)
	}
	auditPub := audit.NewPublisher(auditStore, audit.WithAsyncBuffer(cfg.QueueBuffer))
	defer auditPub.Close()

	// Notification pipeline. The renderer checks every template at startup.
	renderer, err := notify.NewRenderer(notify.DefaultSources()...)
	if err != nil {
		return err
	}
	var queue notify.Queue
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		queue = notify.NewRedisQueue(redisClient.Client)
		log.Info("notification queue backed by redis")
	} else {
		queue = notify.NewMemoryQueue(cfg.QueueBuffer)
	}
	mailer := notify.NewSMTPMailer(cfg.SMTP, log)
	dispatcher := notify.New(queue, renderer, mailer, log,
		notify.WithWorkers(cfg.Workers),
		notify.WithMetrics(m),
		notify.WithObserver(audit.NotificationObserver(auditPub)),
	)

	// Domain services.
	tokens := customer.NewTokenService(cfg.JWTSigningKey, cfg.JWTTTL)
	customerService := customer.New(customerStore, tokens, dispatcher, cfg.BaseURL,
		customer.WithLogger(log),
		customer.WithMetrics(m),
		customer.WithAudit(auditPub),
	)
	assetService := asset.New(assetStore, deviceStore, cfg.Accounts, dispatcher, cfg.BaseURL,
		asset.WithLogger(log),
		asset.WithMetrics(m),
		asset.WithAudit(auditPub),
		asset.WithStaffRecipients(cfg.SMTP.AdminBCC),
	)
	subscriptionService := subscription.New(subscriptionStore, dispatcher, cfg.BaseURL,
		subscription.WithLogger(log),
		subscription.WithAudit(auditPub),
	)
	docsService, err := docs.NewService(cfg.DocsDir)
	if err != nil {
		return err
	}

	// Periodic jobs.
	runner, err := schedule.New(log, []schedule.Entry{
		{Spec: "0 0 * * *", Name: "subscription_days_update", Job: subscriptionService.DailyUpdate},
	})
	if err != nil {
		return err
	}

	// HTTP surface.
	router := newRouter(log, m, customerService, assetService, docsService, tokens, cfg.BaseURL)

	srv := httpserver.New(cfg.Addr, router)

	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()
	dispatcherDone := make(chan error, 1)
	go func() {
		dispatcherDone <- dispatcher.Run(dispatcherCtx)
	}()
	runner.Start()

	log.Info("starting fleetgate", "addr", cfg.Addr)
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	runner.Stop()
	stopDispatcher()
	select {
	case err := <-dispatcherDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("dispatcher exited with error", "error", err.Error())
		}
	case <-time.After(5 * time.Second):
		log.Warn("dispatcher did not drain in time")
	}
	return nil
}

// newRouter composes every domain handler on one chi router. Handlers
// register through inline groups, so they can share the parent.
func newRouter(
	log *slog.Logger,
	m *metrics.Metrics,
	customerService *customer.Service,
	assetService *asset.Service,
	docsService *docs.Service,
	tokens *customer.TokenService,
	baseURL string,
) chi.Router {
	router := chi.NewRouter()
	customer.NewHandler(customerService, log, m).Register(router)
	asset.NewHandler(assetService, log, m, tokens, baseURL).Register(router)
	docs.NewHandler(docsService, log, m).Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return router
}
