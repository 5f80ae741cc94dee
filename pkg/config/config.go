package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	env "github.com/caarlos0/env/v7"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort         int    `env:"HTTP_PORT"           envDefault:"8080"`
	PostgresDSN      string `env:"POSTGRES_DSN"`
	PostgresMaxConns int32  `env:"POSTGRES_MAX_CONNS"  envDefault:"4"`
	LogLevel         string `env:"LOG_LEVEL"           envDefault:"info"`

	// Kafka is optional: no brokers means toggle audit events are dropped.
	KafkaBrokers []string `env:"KAFKA_BROKERS"     envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_AUDIT_TOPIC" envDefault:"portal-favorites-audit"`

	// JWTPublicKey is a path to a PEM-encoded RSA public key. When set,
	// identity is taken from the Bearer token's email claim; otherwise the
	// SSO proxy header is trusted.
	JWTPublicKey string `env:"JWT_PUBLIC_KEY"`

	// DevFallbackEmail substitutes for a missing identity in local
	// development, mirroring the old Apps Script fallback. Leave empty in
	// production so anonymous requests resolve to the guest profile.
	DevFallbackEmail string `env:"DEV_FALLBACK_EMAIL"`

	FavoritesCompactInterval time.Duration `env:"FAVORITES_COMPACT_INTERVAL" envDefault:"24h"`
}

func New(envPath string) (Config, error) {
	var c Config

	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	err = env.Parse(&c)
	if err != nil {
		return Config{}, err
	}

	if c.PostgresDSN == "" {
		return Config{}, errors.New("POSTGRES_DSN is required")
	}

	if c.JWTPublicKey != "" {
		if _, err := os.Stat(c.JWTPublicKey); os.IsNotExist(err) {
			return Config{}, fmt.Errorf("missing JWT public key file: %s", c.JWTPublicKey)
		}
	}

	return c, nil
}
