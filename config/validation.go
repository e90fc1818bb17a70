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

// ConfigRequirements defines which sensitive settings each environment must provide
type ConfigRequirements struct {
	RequireJWTSecret bool
	RequireGeminiKey bool
}

var (
	// Environment-specific requirements
	requirements = map[Environment]ConfigRequirements{
		Development: {RequireJWTSecret: true, RequireGeminiKey: true},
		Test:        {},
		CI:          {RequireJWTSecret: true},
		Production:  {RequireJWTSecret: true, RequireGeminiKey: true},
	}
)

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	reqs := requirements[env]

	var errs []ValidationError

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: "is required"})
	}

	if reqs.RequireJWTSecret && cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: secretHint(env, "jwt_secret")})
	}
	if reqs.RequireGeminiKey && cfg.GeminiAPIKey == "" {
		errs = append(errs, ValidationError{Field: "GEMINI_API_KEY", Message: secretHint(env, "gemini_api_key")})
	}

	switch cfg.StorageBackend {
	case StorageMemory:
	case StorageSQLite:
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{Field: "SQLITE_PATH", Message: "is required for the sqlite backend"})
		}
	case StorageRedis:
		if cfg.RedisURL == "" && cfg.RedisHost == "" {
			errs = append(errs, ValidationError{Field: "REDIS_URL", Message: "REDIS_URL or REDIS_HOST is required for the redis backend"})
		}
	case StoragePostgres:
		if cfg.DBHost == "" || cfg.DBName == "" || cfg.DBUser == "" {
			errs = append(errs, ValidationError{Field: "DB_HOST", Message: "DB_HOST, DB_NAME and DB_USER are required for the postgres backend"})
		}
	default:
		errs = append(errs, ValidationError{Field: "STORAGE_BACKEND", Message: fmt.Sprintf("unknown backend %q", cfg.StorageBackend)})
	}

	if cfg.AIRequestsPerHour < 1 {
		errs = append(errs, ValidationError{Field: "AI_REQUESTS_PER_HOUR", Message: "must be at least 1"})
	}

	if len(errs) > 0 {
		lines := make([]string, len(errs))
		for i, e := range errs {
			lines[i] = e.Error()
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(lines, "\n"))
	}

	return nil
}

func secretHint(env Environment, secret string) string {
	switch env {
	case CI:
		return "environment variable is required in CI environment"
	case Production:
		return fmt.Sprintf("%s secret is required", secret)
	default:
		return fmt.Sprintf("environment variable or %s secret is required", secret)
	}
}
