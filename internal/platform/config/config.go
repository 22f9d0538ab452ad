package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures HTTP server level configuration. AccessKeyHash is the
// bcrypt hash of the gate key; an empty value disables the gate.
type Server struct {
	Addr          string
	JWTSigningKey string
	AccessKeyHash string
}

// Profile configures the external identity provider that owns user profiles.
// When APIBase is empty the service falls back to an in-memory store, which is
// only suitable for development and tests.
type Profile struct {
	APIBase   string
	APISecret string
	// CacheTTL bounds staleness of cached profile snapshots when Redis is
	// configured. Reads are treated as possibly-stale snapshots regardless.
	CacheTTL time.Duration
}

// Mailing configures the mailing-list provider used by the subscribe endpoint.
// An empty APIKey disables forwarding; submissions are then log-only.
type Mailing struct {
	APIKey       string
	BaseURL      string
	SignalListID string
	OSListID     string
}

// Postgres configures the optional submission-log database. An empty DSN
// keeps the log in memory.
type Postgres struct {
	DSN string
}

// Redis configures the optional profile snapshot cache.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Config aggregates all runtime configuration.
type Config struct {
	Server   Server
	Profile  Profile
	Mailing  Mailing
	Postgres Postgres
	Redis    Redis
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:          envOr("PRAXIS_ADDR", ":8080"),
			JWTSigningKey: envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			AccessKeyHash: os.Getenv("PRAXIS_ACCESS_KEY_HASH"),
		},
		Profile: Profile{
			APIBase:   os.Getenv("PROFILE_API_BASE"),
			APISecret: os.Getenv("PROFILE_API_SECRET"),
			CacheTTL:  envDuration("PROFILE_CACHE_TTL", 30*time.Second),
		},
		Mailing: Mailing{
			APIKey:       os.Getenv("MAILING_API_KEY"),
			BaseURL:      envOr("MAILING_API_BASE", "https://api.mailinglist.example.com"),
			SignalListID: envOr("MAILING_SIGNAL_LIST_ID", "signal"),
			OSListID:     envOr("MAILING_OS_LIST_ID", "os-waitlist"),
		},
		Postgres: Postgres{
			DSN: os.Getenv("DATABASE_URL"),
		},
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}
}

func envOr(key, fallback string) string {
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

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
