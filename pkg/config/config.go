// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service settings.
type Config struct {
	Addr            string
	LogLevel        string
	OtelHost        string
	OtelProbability float64
	TLSCertFile     string
	TLSKeyFile      string
	ShutdownTimeout time.Duration
}

// TLS reports whether both certificate and key were configured.
func (c Config) TLS() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading env file: %w", err)
	}

	prob, err := envFloat("OTEL_PROBABILITY", 1.0)
	if err != nil {
		return Config{}, err
	}
	if prob < 0 || prob > 1 {
		return Config{}, fmt.Errorf("OTEL_PROBABILITY must be within [0,1], got %v", prob)
	}
	timeout, err := envDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Addr:            envDefault("CARTAPI_ADDR", ":5131"),
		LogLevel:        envDefault("LOG_LEVEL", "info"),
		OtelHost:        os.Getenv("OTEL_HOST"),
		OtelProbability: prob,
		TLSCertFile:     os.Getenv("TLS_CERT_FILE"),
		TLSKeyFile:      os.Getenv("TLS_KEY_FILE"),
		ShutdownTimeout: timeout,
	}, nil
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return f, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
