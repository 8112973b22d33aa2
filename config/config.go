package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment. A .env file in the
// working directory is loaded first if present.
type Config struct {
	DatabaseURL       string
	RedisAddr         string
	Port              int
	AdminPasswordHash string
	JWTSecret         string
	BaseURL           string
	UploadDir         string
}

func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		Port:              8080,
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         getenv("JWT_SECRET", "spiral-race-dev-secret"),
		BaseURL:           getenv("BASE_URL", "http://localhost:8080"),
		UploadDir:         getenv("UPLOAD_DIR", "./uploads"),
	}

	if p := os.Getenv("PORT"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			cfg.Port = n
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
