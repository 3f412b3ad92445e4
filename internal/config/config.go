package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the nutriplan-api service configuration.
type Config struct {
	HTTP struct {
		Port            string
		ReadTimeout     time.Duration
		WriteTimeout    time.Duration
		ShutdownTimeout time.Duration
		MaxBodyBytes    int64
	}

	CORS struct {
		AllowedOrigins []string
	}

	// Reference.File replaces the embedded reference tables when set.
	Reference struct {
		File string
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	var err error

	cfg.HTTP.Port = getEnv("PORT", "8080")
	if cfg.HTTP.ReadTimeout, err = getDuration("HTTP_READ_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.HTTP.WriteTimeout, err = getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.HTTP.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}

	maxBody := getEnv("MAX_BODY_BYTES", "1048576")
	cfg.HTTP.MaxBodyBytes, err = strconv.ParseInt(maxBody, 10, 64)
	if err != nil || cfg.HTTP.MaxBodyBytes <= 0 {
		return nil, fmt.Errorf("MAX_BODY_BYTES: invalid value %q", maxBody)
	}

	cfg.CORS.AllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "*"))
	cfg.Reference.File = getEnv("REFERENCE_FILE", "")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
