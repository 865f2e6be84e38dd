package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPTimeout = 15 * time.Second
	defaultPageSize    = 20
	defaultSTTLanguage = "ful"
	defaultCacheSize   = 512
	defaultCacheTTL    = 5 * time.Minute
)

type Config struct {
	BackendURL  string
	AppEnv      string
	AccessToken string
	HTTPTimeout time.Duration
	PageSize    int
	STTLanguage string
	CacheSize   int
	CacheTTL    time.Duration
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		BackendURL:  os.Getenv("BACKEND_URL"),
		AppEnv:      os.Getenv("APP_ENV"),
		AccessToken: os.Getenv("ACCESS_TOKEN"),
		HTTPTimeout: durationEnv("HTTP_TIMEOUT", defaultHTTPTimeout),
		PageSize:    intEnv("PAGE_SIZE", defaultPageSize),
		STTLanguage: stringEnv("STT_LANGUAGE", defaultSTTLanguage),
		CacheSize:   intEnv("DETAIL_CACHE_SIZE", defaultCacheSize),
		CacheTTL:    durationEnv("DETAIL_CACHE_TTL", defaultCacheTTL),
	}

	if cfg.BackendURL == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
