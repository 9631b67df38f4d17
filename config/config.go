package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Environment    string
	ServerPort     string
	APIURL         string
	StorageDriver  string
	DBHost         string
	DBPort         int
	DBUser         string
	DBPassword     string
	DBName         string
	RedisAddr      string
	RedisPassword  string
	CatalogTTL     time.Duration
	JWTSecret      string
	APITimeout     time.Duration
	ChapterTimeout time.Duration
	VisitorIdle    time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		ServerPort:    getEnv("PORT", "3000"),
		APIURL:        getEnv("API_URL", "http://localhost:8080/api"),
		StorageDriver: getEnv("STORAGE_DRIVER", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "bac_exam_platform"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
	}

	var err error
	if cfg.DBPort, err = getInt("DB_PORT", 5432); err != nil {
		return nil, err
	}
	if cfg.CatalogTTL, err = getDuration("CATALOG_TTL_MINUTES", 30, time.Minute); err != nil {
		return nil, err
	}
	if cfg.APITimeout, err = getDuration("API_TIMEOUT_SECONDS", 30, time.Second); err != nil {
		return nil, err
	}
	if cfg.ChapterTimeout, err = getDuration("CHAPTER_TIMEOUT_SECONDS", 10, time.Second); err != nil {
		return nil, err
	}
	if cfg.VisitorIdle, err = getDuration("VISITOR_IDLE_MINUTES", 120, time.Minute); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}
	switch cfg.StorageDriver {
	case "postgres", "memory":
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (want postgres or memory)", cfg.StorageDriver)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, defaultValue int, unit time.Duration) (time.Duration, error) {
	n, err := getInt(key, defaultValue)
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * unit, nil
}
