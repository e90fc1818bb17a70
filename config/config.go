package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Storage backends understood by the persistence adapter.
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Persistence configuration
	StorageBackend string
	SQLitePath     string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Scope token configuration
	JWTSecret string
	TokenTTL  time.Duration

	// Idle workspaces are unloaded from memory after this long
	WorkspaceIdleTTL time.Duration

	// Gemini configuration
	GeminiAPIKey string
	GeminiModel  string

	// AI rate limiting, per scope and hour
	AIRequestsPerHour int

	// Logging
	LogLevel  string
	LogFormat string

	// Optional S3 delivery of exported documents
	S3BucketName string
	AWSRegion    string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}
	loadCommonConfig(cfg)

	// Sensitive values come from a different place in each environment
	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCommonConfig reads the non-sensitive settings shared by every environment
func loadCommonConfig(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:5173"))

	cfg.StorageBackend = strings.ToLower(getEnv("STORAGE_BACKEND", StorageMemory))
	cfg.SQLitePath = getEnv("SQLITE_PATH", "homsent-chef.db")

	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = getEnv("DB_USER", "postgres")
	cfg.DBName = getEnv("DB_NAME", "homsent_chef")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")

	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.RedisDB = getEnvInt("REDIS_DB", 0)

	cfg.TokenTTL = getEnvDuration("TOKEN_TTL", 30*24*time.Hour)
	cfg.WorkspaceIdleTTL = getEnvDuration("WORKSPACE_IDLE_TTL", 2*time.Hour)
	cfg.GeminiModel = getEnv("GEMINI_MODEL", "gemini-2.5-flash")
	cfg.AIRequestsPerHour = getEnvInt("AI_REQUESTS_PER_HOUR", 60)

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "json")

	cfg.S3BucketName = os.Getenv("S3_BUCKET_NAME")
	cfg.AWSRegion = os.Getenv("AWS_REGION")
}

// loadCIConfig loads sensitive values for CI from environment variables only
func loadCIConfig(cfg *Config) {
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
}

// loadDevConfig prefers environment variables and falls back to Docker secrets
func loadDevConfig(cfg *Config) {
	cfg.DBPassword = envOrSecret("DB_PASSWORD", "db_password")
	cfg.RedisPassword = envOrSecret("REDIS_PASSWORD", "redis_password")
	cfg.JWTSecret = envOrSecret("JWT_SECRET", "jwt_secret")
	cfg.GeminiAPIKey = envOrSecret("GEMINI_API_KEY", "gemini_api_key")
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = readSecretFile(os.Getenv("GEMINI_API_KEY_FILE"))
	}
	if cfg.JWTSecret == "" && GetEnvironment() == Test {
		cfg.JWTSecret = "test-secret"
	}
}

// loadProdConfig loads sensitive values for production using ONLY Docker secrets
func loadProdConfig(cfg *Config) {
	cfg.DBPassword = readSecret("db_password")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.GeminiAPIKey = readSecret("gemini_api_key")
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.ServerHost, c.ServerPort)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	return readSecretFile(filepath.Join(secretsDir, name))
}

func readSecretFile(path string) string {
	if path == "" {
		return ""
	}
	if data, err := os.ReadFile(path); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func envOrSecret(envName, secretName string) string {
	if v := os.Getenv(envName); v != "" {
		return v
	}
	return readSecret(secretName)
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

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
