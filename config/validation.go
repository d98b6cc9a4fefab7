package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	validDrivers  = map[string]bool{"postgres": true, "sqlite": true}
	validStorages = map[string]bool{"local": true, "s3": true}
)

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errs []string
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg}.Error())
	}

	if !validDrivers[cfg.DBDriver] {
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}
	if !validStorages[cfg.AvatarStorage] {
		add("AVATAR_STORAGE", fmt.Sprintf("unsupported storage %q", cfg.AvatarStorage))
	}
	if cfg.ServerPort == "" {
		add("SERVER_PORT", "required")
	}
	if cfg.TokenTTL <= 0 {
		add("TOKEN_TTL", "must be positive")
	}

	switch env {
	case Production, CI:
		if cfg.JWTSecret == "" {
			add("JWT_SECRET", "required outside development")
		}
		if cfg.DBDriver == "postgres" && cfg.DBPassword == "" {
			add("DB_PASSWORD", "required for postgres outside development")
		}
	}
	if cfg.AvatarStorage == "s3" && cfg.S3Bucket == "" {
		add("S3_BUCKET_NAME", "required when AVATAR_STORAGE=s3")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
