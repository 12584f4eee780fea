package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	platformstrings "inkind/pkg/platform/strings"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string

	Ledger   Ledger
	Redis    Redis
	Postgres Postgres
	Kafka    Kafka

	// AuditBuffer sizes the in-process audit event channel.
	AuditBuffer int
}

// Ledger configures the client for the external donation ledger.
type Ledger struct {
	// GatewayURL points at the contract relay. Empty means the in-process
	// fake ledger is used (dev mode).
	GatewayURL string
	Timeout    time.Duration
}

// Redis configures the optional shared view cache.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Postgres configures the optional durable audit journal.
type Postgres struct {
	DSN string
}

// Kafka configures the optional settled-transition event stream.
type Kafka struct {
	Seeds []string
	Topic string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("INKIND_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	kafkaTopic := os.Getenv("KAFKA_AUDIT_TOPIC")
	if kafkaTopic == "" {
		kafkaTopic = "inkind.donation.settled"
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		Ledger: Ledger{
			GatewayURL: os.Getenv("LEDGER_GATEWAY_URL"),
			Timeout:    envDuration("LEDGER_TIMEOUT", 15*time.Second),
		},
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postgres: Postgres{
			DSN: os.Getenv("POSTGRES_DSN"),
		},
		Kafka: Kafka{
			Seeds: envList("KAFKA_SEEDS"),
			Topic: kafkaTopic,
		},
		AuditBuffer: envInt("AUDIT_BUFFER", 256),
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

func envList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	out := platformstrings.DedupeAndTrim(strings.Split(raw, ","))
	if len(out) == 0 {
		return nil
	}
	return out
}
