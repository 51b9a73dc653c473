package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures process-level configuration. Built once in main from the
// environment so the rest of the tree stays constructor-injected.
type Config struct {
	Addr    string
	BaseURL string

	PostgresDSN string
	Redis       RedisConfig

	SMTP  SMTPConfig
	Kafka KafkaConfig

	JWTSigningKey string
	JWTTTL        time.Duration

	DocsDir string

	// Accounts an asset may be registered under.
	Accounts []string

	// Notification dispatcher sizing.
	QueueBuffer int
	Workers     int
}

// RedisConfig holds connection settings for the notification queue backend.
// An empty URL means Redis is not configured and the in-memory queue is used.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// SMTPConfig holds mail transport settings. AdminBCC receives a blind copy of
// every outgoing message, matching the portal's notification policy.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	ReplyTo  string
	AdminBCC []string
}

// KafkaConfig holds the audit event sink settings. Empty brokers disable the
// Kafka sink; audit events still land in the local store.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Addr:        envStr("FLEETGATE_ADDR", ":8080"),
		BaseURL:     envStr("FLEETGATE_BASE_URL", "http://localhost:8080"),
		PostgresDSN: os.Getenv("FLEETGATE_POSTGRES_DSN"),
		Redis: RedisConfig{
			URL:          os.Getenv("FLEETGATE_REDIS_URL"),
			PoolSize:     envInt("FLEETGATE_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("FLEETGATE_REDIS_MIN_IDLE", 2),
			DialTimeout:  envDur("FLEETGATE_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDur("FLEETGATE_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDur("FLEETGATE_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		SMTP: SMTPConfig{
			Host:     envStr("FLEETGATE_SMTP_HOST", "localhost"),
			Port:     envInt("FLEETGATE_SMTP_PORT", 587),
			Username: os.Getenv("FLEETGATE_SMTP_USERNAME"),
			Password: os.Getenv("FLEETGATE_SMTP_PASSWORD"),
			From:     envStr("FLEETGATE_SMTP_FROM", "no-reply@fleetgate.local"),
			ReplyTo:  envStr("FLEETGATE_SMTP_REPLY_TO", "support@fleetgate.local"),
			AdminBCC: envList("FLEETGATE_ADMIN_BCC"),
		},
		Kafka: KafkaConfig{
			Brokers: envList("FLEETGATE_KAFKA_BROKERS"),
			Topic:   envStr("FLEETGATE_KAFKA_AUDIT_TOPIC", "fleetgate.audit"),
		},
		// Use a default for development - must be overridden in production.
		JWTSigningKey: envStr("FLEETGATE_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTTTL:        envDur("FLEETGATE_JWT_TTL", time.Hour),
		DocsDir:       envStr("FLEETGATE_DOCS_DIR", "docs"),
		Accounts:      envListDefault("FLEETGATE_ACCOUNTS", []string{"default"}),
		QueueBuffer:   envInt("FLEETGATE_QUEUE_BUFFER", 256),
		Workers:       envInt("FLEETGATE_WORKERS", 4),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDur(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envListDefault(key string, fallback []string) []string {
	if v := envList(key); len(v) > 0 {
		return v
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
