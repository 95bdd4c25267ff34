package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the frontend needs from the environment.
type Config struct {
	ListenAddr string

	// Base URL of the primini backend API, without the /api suffix.
	BackendBaseURL string

	// Secret used to sign session and flash cookies.
	CookieSecret  string
	SecureCookies bool

	Log LogConfig
}

type LogConfig struct {
	Level  string // debug|info|warn|error
	Format string // json|text

	// Optional fluentd/fluent-bit forwarding.
	FluentEnabled bool
	FluentHost    string
	FluentPort    int
	FluentTag     string
}

// Load reads configuration from the environment. A .env file is loaded first
// when present (local development; production uses real env vars).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		BackendBaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:8000"),
		CookieSecret:   os.Getenv("COOKIE_SECRET"),
		SecureCookies:  getEnvAsBool("SECURE_COOKIES", false),
	}
	if cfg.CookieSecret == "" {
		return nil, fmt.Errorf("COOKIE_SECRET environment variable is required")
	}

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")
	cfg.Log.FluentEnabled = getEnvAsBool("FLUENT_ENABLED", false)
	if cfg.Log.FluentEnabled {
		cfg.Log.FluentHost = os.Getenv("FLUENT_HOST")
		if cfg.Log.FluentHost == "" {
			log.Println("WARNING: FLUENT_ENABLED is true but FLUENT_HOST is not set. Disabling fluent forwarding.")
			cfg.Log.FluentEnabled = false
		}
		cfg.Log.FluentPort = getEnvAsInt("FLUENT_PORT", 24224)
		cfg.Log.FluentTag = getEnv("FLUENT_TAG", "primini-web")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: env %s=%q is not an int, using default %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: env %s=%q is not a bool, using default %t", key, valStr, defaultValue)
		return defaultValue
	}
	return valBool
}
