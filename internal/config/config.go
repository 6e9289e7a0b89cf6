// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	DevEnv        = "dev"
	ProductionEnv = "production"
)

type Config struct {
	Env           string
	Port          string
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
	BcryptCost    int
	CacheTTL      time.Duration
}

// Load reads configuration from the environment. A missing .env file is not an
// error; explicit environment variables always win because godotenv does not
// overwrite existing values.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Env:           getEnv("ENV", ProductionEnv),
		Port:          getEnv("PORT", "8080"),
		DatabaseDSN:   os.Getenv("DATABASE_URL"),
		RedisAddr:     redisAddr(),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		BcryptCost:    getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
		CacheTTL:      time.Duration(getEnvInt("CACHE_TTL_SECONDS", 60)) * time.Second,
	}
	if cfg.JWTSecret == "" && cfg.Env == DevEnv {
		cfg.JWTSecret = "unsecure"
	}
	return cfg
}

func redisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	if host := os.Getenv("REDIS_HOST"); host != "" {
		port := os.Getenv("REDIS_PORT")
		if port == "" {
			port = "6379"
		}
		return host + ":" + port
	}
	return ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
