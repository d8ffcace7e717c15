package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	APIBaseURL  string // job search backend this agent talks to
	FrontendURL string // UI origin allowed by CORS
	TokenFile   string // durable bearer credential location ("" = user config dir)
	// Catalog defaults
	CatalogPageSize   int
	CatalogMaxAgeDays int
	// Redis catalog cache (optional)
	RedisURL               string
	RedisPassword          string
	CatalogCacheTTLSeconds int
}

func LoadConfig() (*Config, error) {
	// .env only matters locally; ignored in production when the file is absent
	_ = godotenv.Load()

	cfg := &Config{
		Port:                   getEnv("PORT", "8080"),
		APIBaseURL:             strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8000"), "/"),
		FrontendURL:            strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		TokenFile:              getEnv("TOKEN_FILE", ""),
		CatalogPageSize:        getEnvInt("CATALOG_PAGE_SIZE", 25),
		CatalogMaxAgeDays:      getEnvInt("CATALOG_MAX_AGE_DAYS", 30),
		RedisURL:               getEnv("UPSTASH_REDIS_URL", ""),
		RedisPassword:          getEnv("UPSTASH_REDIS_PASSWORD", ""),
		CatalogCacheTTLSeconds: getEnvInt("CATALOG_CACHE_TTL_SECONDS", 60),
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Catalog caching disabled; every page fetch hits the backend.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
