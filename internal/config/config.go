package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port                  string
	AllowedOrigin         string
	DatabaseURL           string
	RedisAddr             string
	RedisPassword         string
	RedisDB               int
	TaxRate               float64
	ReportCacheTTLSeconds int
	AuthSecret            string
	AccessTokenTTLMinutes int
	ManagerPIN            string
}

func Load() Config {
	redisDB, _ := strconv.Atoi(getEnv("SALON_REDIS_DB", "0"))
	taxRate, err := strconv.ParseFloat(getEnv("SALON_TAX_RATE", "0.08"), 64)
	if err != nil || taxRate < 0 || taxRate > 1 {
		taxRate = 0.08
	}
	reportTTL, err := strconv.Atoi(getEnv("SALON_REPORT_CACHE_TTL_SECONDS", "30"))
	if err != nil || reportTTL < 1 {
		reportTTL = 30
	}
	tokenTTL, err := strconv.Atoi(getEnv("SALON_ACCESS_TOKEN_TTL_MINUTES", "480"))
	if err != nil || tokenTTL < 1 {
		tokenTTL = 480
	}

	cfg := Config{
		Port:                  getEnv("SALON_PORT", "8080"),
		AllowedOrigin:         getEnv("SALON_ALLOWED_ORIGIN", "http://127.0.0.1:3000"),
		DatabaseURL:           os.Getenv("SALON_DATABASE_URL"),
		RedisAddr:             os.Getenv("SALON_REDIS_ADDR"),
		RedisPassword:         os.Getenv("SALON_REDIS_PASSWORD"),
		RedisDB:               redisDB,
		TaxRate:               taxRate,
		ReportCacheTTLSeconds: reportTTL,
		AuthSecret:            strings.TrimSpace(os.Getenv("SALON_AUTH_SECRET")),
		AccessTokenTTLMinutes: tokenTTL,
		ManagerPIN:            strings.TrimSpace(os.Getenv("SALON_MANAGER_PIN")),
	}

	return cfg
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
