package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, populated once at startup
// from environment variables (optionally seeded from a .env file).
// It is passed by reference into the layers that need it — there is
// no package-level configuration state.
type Config struct {
	Service struct {
		Name    string
		Version string
		Env     string
		Port    string
	}

	Logging struct {
		Level string
	}

	Auth struct {
		// Secret signs and verifies session tokens. Required: the
		// process refuses to start without it.
		Secret string
		// TokenTTL is the validity window of issued tokens.
		TokenTTL time.Duration
	}

	Database struct {
		// URL selects the pgx-backed user directory when set.
		// Empty selects the in-memory directory.
		URL string
	}

	Tracing struct {
		Enabled    bool
		Endpoint   string
		SampleRate float64
	}

	Profiling struct {
		Enabled  bool
		Endpoint string
	}

	Shutdown struct {
		Timeout             time.Duration
		ReadinessDrainDelay time.Duration
	}
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present (development
// convenience; real environments set variables directly).
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Service.Name = getenv("SERVICE_NAME", "auth-service")
	cfg.Service.Version = getenv("SERVICE_VERSION", "dev")
	cfg.Service.Env = getenv("ENV", "dev")
	cfg.Service.Port = getenv("PORT", "8080")

	cfg.Logging.Level = getenv("LOG_LEVEL", "info")

	cfg.Auth.Secret = os.Getenv("JWT_SECRET")
	cfg.Auth.TokenTTL = getduration("TOKEN_TTL", 7*24*time.Hour)

	cfg.Database.URL = os.Getenv("DATABASE_URL")

	cfg.Tracing.Enabled = getbool("TRACING_ENABLED", false)
	cfg.Tracing.Endpoint = getenv("TRACING_ENDPOINT", "localhost:4318")
	cfg.Tracing.SampleRate = getfloat("TRACING_SAMPLE_RATE", 1.0)

	cfg.Profiling.Enabled = getbool("PROFILING_ENABLED", false)
	cfg.Profiling.Endpoint = getenv("PROFILING_ENDPOINT", "http://localhost:4040")

	cfg.Shutdown.Timeout = getduration("SHUTDOWN_TIMEOUT", 10*time.Second)
	cfg.Shutdown.ReadinessDrainDelay = getduration("READINESS_DRAIN_DELAY", 0)

	return cfg
}

// Validate checks the invariants that must hold before the service is
// allowed to serve traffic.
func (c *Config) Validate() error {
	if c.Auth.Secret == "" {
		return errors.New("JWT_SECRET is required: refusing to start without a signing secret")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return errors.New("TRACING_SAMPLE_RATE must be within [0, 1]")
	}
	return nil
}

// GetShutdownTimeoutDuration returns the timeout applied to HTTP
// server shutdown.
func (c *Config) GetShutdownTimeoutDuration() time.Duration {
	return c.Shutdown.Timeout
}

// GetReadinessDrainDelayDuration returns how long to keep serving
// after readiness starts failing, so load balancers can drain.
func (c *Config) GetReadinessDrainDelayDuration() time.Duration {
	return c.Shutdown.ReadinessDrainDelay
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getfloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getduration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
