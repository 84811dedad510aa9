package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Addr              string
	JWTSecret         string
	Environment       string
	SeedAdminUsername string
	SeedAdminPassword string
	MaxBodyBytes      int64
}

func Load() Config {
	return Config{
		Addr:              getEnv("APP_ADDR", ":8080"),
		JWTSecret:         getEnv("JWT_SECRET", "simpeg-dev-secret"),
		Environment:       getEnv("APP_ENV", "development"),
		SeedAdminUsername: getEnv("SEED_ADMIN_USERNAME", "admin"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", "admin123"),
		MaxBodyBytes:      int64(getEnvInt("MAX_BODY_BYTES", 8<<20)),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.SeedAdminUsername) == "" {
		return fmt.Errorf("SEED_ADMIN_USERNAME must not be empty")
	}
	if c.Environment == "production" {
		if c.JWTSecret == "simpeg-dev-secret" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.SeedAdminPassword == "admin123" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be changed in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	return nil
}
