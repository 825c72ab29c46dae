package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config captures process-level configuration. Values come from environment
// variables so main stays lean; a local .env file is honored for development.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string
	// DatabaseURL selects the Postgres record store when set.
	DatabaseURL string
	// RedisURL selects the Redis record store when DatabaseURL is unset.
	RedisURL string
	// ClientOrigin is the sole origin allowed by CORS.
	ClientOrigin string
}

// FromEnv builds a Config from environment variables. A missing .env file is
// not an error; explicit environment always wins over file contents.
func FromEnv() Config {
	_ = godotenv.Load()

	addr := os.Getenv("REGDESK_ADDR")
	if addr == "" {
		addr = ":5000"
	}

	return Config{
		Addr:         addr,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		ClientOrigin: os.Getenv("CLIENT_URL"),
	}
}
