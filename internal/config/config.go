package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr    string
	LogLevel    string
	CORSOrigins []string

	// per-client-IP request budget; <= 0 disables the limiter
	RateLimitPerMin int
	RateLimitBurst  int
}

func Load() (Config, error) {
	cfg := Config{
		HTTPAddr: os.Getenv("HTTP_ADDR"),
		LogLevel: getenvDefault("LOG_LEVEL", "info"),
	}

	// Railway-style deployments hand us PORT; HTTP_ADDR wins when both are set.
	if cfg.HTTPAddr == "" {
		port := getenvDefault("PORT", "8080")
		if _, err := strconv.Atoi(port); err != nil {
			return Config{}, errors.New("PORT must be numeric")
		}
		cfg.HTTPAddr = ":" + port
	}

	n, err := strconv.Atoi(getenvDefault("RATE_LIMIT_PER_MIN", "120"))
	if err != nil {
		return Config{}, errors.New("RATE_LIMIT_PER_MIN must be numeric")
	}
	cfg.RateLimitPerMin = n

	b, err := strconv.Atoi(getenvDefault("RATE_LIMIT_BURST", "30"))
	if err != nil {
		return Config{}, errors.New("RATE_LIMIT_BURST must be numeric")
	}
	cfg.RateLimitBurst = b

	// parse CORS origins
	corsOrigins := getenvDefault("CORS_ORIGINS", "")
	if corsOrigins != "" {
		cfg.CORSOrigins = strings.Split(corsOrigins, ",")
		for i := range cfg.CORSOrigins {
			cfg.CORSOrigins[i] = strings.TrimSpace(cfg.CORSOrigins[i])
		}
	} else {
		cfg.CORSOrigins = []string{"*"} // the frontend origin is not known upfront
	}

	return cfg, nil
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
