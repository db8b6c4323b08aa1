package config

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Server captures HTTP server level configuration. There is no other
// configuration surface: storage is in-memory and resets on restart.
type Server struct {
	Addr            string        `env:"BIBLIO_ADDR,default=:8080"`
	AllowedOrigins  []string      `env:"BIBLIO_ALLOWED_ORIGINS,default=http://localhost:3000;http://localhost:8080"`
	ShutdownTimeout time.Duration `env:"BIBLIO_SHUTDOWN_TIMEOUT,default=10s"`
}

// FromEnv builds a Server config from environment variables so main stays
// lean. A .env file is honored when present for local runs.
func FromEnv() (Server, error) {
	_ = godotenv.Load() // allow .env for local runs

	var cfg Server
	if err := envdecode.Decode(&cfg); err != nil {
		return Server{}, fmt.Errorf("decode server config: %w", err)
	}
	return cfg, nil
}
