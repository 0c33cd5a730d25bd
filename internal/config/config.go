package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	// используется, только если авторизация выключена
	devSessionSecret = "grcwalk-dev-session-secret"
)

type Config struct {
	DBDriver          string
	DBDSN             string
	DBConnectAttempts int

	ServerPort    string
	SessionSecret string
	GinMode       string

	AuthEnabled   bool
	AdminUsername string
	AdminPassword string

	SeedData bool

	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from the environment; a .env file is picked up
// when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBDriver:      strings.ToLower(os.Getenv("DB_DRIVER")),
		DBDSN:         os.Getenv("DB_DSN"),
		ServerPort:    os.Getenv("SERVER_PORT"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		GinMode:       os.Getenv("GIN_MODE"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		LogFormat:     strings.ToLower(os.Getenv("LOG_FORMAT")),
	}

	if cfg.DBDriver == "" {
		if cfg.DBDSN != "" {
			cfg.DBDriver = DriverPostgres
		} else {
			cfg.DBDriver = DriverMemory
		}
	}
	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DBDSN == "" {
			return nil, goerr.New("DB_DSN is not set")
		}
	case DriverMemory:
	default:
		return nil, goerr.New("unknown DB_DRIVER", goerr.V("driver", cfg.DBDriver))
	}

	var err error
	if cfg.DBConnectAttempts, err = intEnv("DB_CONNECT_ATTEMPTS", 10); err != nil {
		return nil, err
	}
	if cfg.AuthEnabled, err = boolEnv("AUTH_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.SeedData, err = boolEnv("SEED_DATA", false); err != nil {
		return nil, err
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.SessionSecret == "" {
		if cfg.AuthEnabled {
			return nil, goerr.New("SESSION_SECRET is not set")
		}
		cfg.SessionSecret = devSessionSecret
	}
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(envOr("LOG_LEVEL", "info"))); err != nil {
		return nil, goerr.Wrap(err, "invalid LOG_LEVEL")
	}
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, goerr.New("invalid LOG_FORMAT", goerr.V("format", cfg.LogFormat))
	}

	return cfg, nil
}

// NewLogger builds the process logger described by cfg.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid "+key, goerr.V("value", v))
	}
	return n, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, goerr.Wrap(err, "invalid "+key, goerr.V("value", v))
	}
	return b, nil
}
