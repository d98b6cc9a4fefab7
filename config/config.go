package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort      string        `env:"SERVER_PORT" envDefault:"8080"`
	ServerHost      string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`

	// Database configuration
	DBDriver     string `env:"DB_DRIVER" envDefault:"postgres"`
	DBHost       string `env:"DB_HOST" envDefault:"localhost"`
	DBPort       string `env:"DB_PORT" envDefault:"5432"`
	DBUser       string `env:"DB_USER" envDefault:"postgres"`
	DBPassword   string `env:"DB_PASSWORD"`
	DBName       string `env:"DB_NAME" envDefault:"devfolio"`
	DBSSLMode    string `env:"DB_SSL_MODE" envDefault:"disable"`
	SQLitePath   string `env:"SQLITE_PATH" envDefault:"devfolio.db"`
	MigrationDir string `env:"MIGRATIONS_DIR" envDefault:"migrations"`

	// Redis configuration
	RedisHost     string `env:"REDIS_HOST"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisURL      string `env:"REDIS_URL"`

	// JWT configuration
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// Avatar storage
	AvatarStorage string `env:"AVATAR_STORAGE" envDefault:"local"`
	MediaRoot     string `env:"MEDIA_ROOT" envDefault:"media"`
	MediaURL      string `env:"MEDIA_URL" envDefault:"/media/"`
	S3Bucket      string `env:"S3_BUCKET_NAME" envDefault:"devfolio-avatars"`
	AWSRegion     string `env:"AWS_REGION"`

	// Outgoing mail
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	EmailFrom    string `env:"EMAIL_FROM" envDefault:"no-reply@devfolio.local"`
}

// secretFields maps Docker secret names onto the config fields they override.
func (c *Config) secretFields() map[string]*string {
	return map[string]*string{
		"db_password":    &c.DBPassword,
		"jwt_secret":     &c.JWTSecret,
		"redis_password": &c.RedisPassword,
		"smtp_password":  &c.SMTPPassword,
	}
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	// CI only ever reads plain environment variables
	if GetEnvironment() != CI {
		for name, field := range cfg.secretFields() {
			if value := readSecret(name); value != "" {
				*field = value
			}
		}
	}

	if cfg.JWTSecret == "" && (IsDevelopment() || IsTest()) {
		cfg.JWTSecret = "dev-secret-change-me"
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
