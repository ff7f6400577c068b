package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPPort            string
	CalendarServiceAddr string
	Locale              string

	// RateLimit requests per RateLimitPeriod are allowed for each client IP.
	// Zero disables throttling.
	RateLimit       int
	RateLimitPeriod time.Duration

	// HealthTCPTargets are extra dependencies probed by /health, read from
	// HEALTH_CHECK_TCP as name=host:port pairs separated by commas.
	HealthTCPTargets []Target
}

type Target struct {
	Name string
	Addr string
}

func Load() *Config {
	return &Config{
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		CalendarServiceAddr: getEnv("CALENDAR_SERVICE_ADDR", "calendar-service:50059"),
		Locale:              getEnv("APP_LOCALE", "en"),
		RateLimit:           getInt("RATE_LIMIT_REQUESTS", 120),
		RateLimitPeriod:     getDuration("RATE_LIMIT_PERIOD", time.Minute),
		HealthTCPTargets:    parseTargets(os.Getenv("HEALTH_CHECK_TCP")),
	}
}

func parseTargets(raw string) []Target {
	var targets []Target
	for _, pair := range strings.Split(raw, ",") {
		name, addr, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || name == "" || addr == "" {
			continue
		}
		targets = append(targets, Target{Name: name, Addr: addr})
	}
	return targets
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}
