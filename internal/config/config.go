package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
}

const defaultDSN = "host=localhost user=postgres password=postgres dbname=naturtim port=5432 sslmode=disable"

func Load() *Config {
	// .env jest opcjonalny, w kontenerze zmienne przychodzą ze środowiska.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", defaultDSN),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] Brak zmiennej środowiskowej JWT_SECRET, wymaganej do podpisywania tokenów.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET musi mieć co najmniej 32 znaki.")
	}
	if cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN ma wartość domyślną. Na produkcji ustaw własne połączenie z Postgresem.")
	}
	if cfg.CORSOrigins == "http://localhost:3000" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS ma wartość domyślną. Na produkcji ustaw własną domenę.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
