package config

import (
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"nepdate/shared/pkg/db"
)

type Config struct {
	GRPCPort    string
	MetricsPort string

	// DB is nil when DB_HOST is not set; the compiled-in table is used then.
	DB            *db.Config
	SeedCalendar  bool
	MigrateSchema bool

	// Redis is nil when neither REDIS_URL nor REDIS_HOST is set.
	Redis    *redis.Options
	CacheTTL time.Duration

	MaxSearchSteps int
}

func Load() (*Config, error) {
	cfg := &Config{
		GRPCPort:       getEnv("GRPC_PORT", "50059"),
		MetricsPort:    getEnv("METRICS_PORT", "9109"),
		SeedCalendar:   getBool("DB_SEED_CALENDAR", false),
		MigrateSchema:  getBool("DB_MIGRATE", true),
		CacheTTL:       getDuration("CACHE_TTL", 24*time.Hour),
		MaxSearchSteps: getInt("BS_MAX_SEARCH_STEPS", 0),
	}

	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.DB = &db.Config{
			Host:            host,
			Port:            getInt("DB_PORT", 3306),
			User:            getEnv("DB_USER", "root"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_DATABASE", "nepdate"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			MaxRetries:      getInt("DB_MAX_RETRIES", 5),
		}
	}

	if url := os.Getenv("REDIS_URL"); url != "" {
		opts, err := redis.ParseURL(url)
		if err != nil {
			return nil, err
		}
		cfg.Redis = opts
	} else if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.Redis = &redis.Options{
			Addr:     host + ":" + getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		}
	}

	return cfg, nil
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

func getBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
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
