package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "Redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("TOKEN_TTL", "2h")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, StorageRedis, cfg.StorageBackend)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
}

func TestLoadConfigWithDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "STORAGE_BACKEND", "JWT_SECRET", "GEMINI_MODEL", "AI_REQUESTS_PER_HOUR", "GEMINI_API_KEY"} {
		t.Setenv(key, "")
	}
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, 60, cfg.AIRequestsPerHour)
}

func TestLoadConfigFromSecrets(t *testing.T) {
	secretsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "jwt_secret"), []byte("from-file\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "gemini_api_key"), []byte("key-from-file"), 0644))

	t.Setenv("CI", "")
	t.Setenv("SECRETS_DIR", secretsDir)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("STORAGE_BACKEND", "")

	t.Run("should read secrets in development", func(t *testing.T) {
		t.Setenv("ENV", "development")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.JWTSecret)
		assert.Equal(t, "key-from-file", cfg.GeminiAPIKey)
	})

	t.Run("should ignore environment secrets in production", func(t *testing.T) {
		t.Setenv("ENV", "production")
		t.Setenv("JWT_SECRET", "from-env")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.JWTSecret)
	})
}

func TestValidateConfig(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "production")

	t.Run("should report missing secrets and unknown backend", func(t *testing.T) {
		err := ValidateConfig(&Config{ServerPort: "8080", StorageBackend: "mongo"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")
		assert.Contains(t, err.Error(), `unknown backend "mongo"`)
	})

	t.Run("should accept a complete configuration", func(t *testing.T) {
		err := ValidateConfig(&Config{
			ServerPort:        "8080",
			StorageBackend:    StorageSQLite,
			SQLitePath:        "chef.db",
			JWTSecret:         "secret",
			GeminiAPIKey:      "key",
			AIRequestsPerHour: 60,
		})
		assert.NoError(t, err)
	})

	t.Run("should reject a zero AI request budget", func(t *testing.T) {
		err := ValidateConfig(&Config{
			ServerPort:     "8080",
			StorageBackend: StorageSQLite,
			SQLitePath:     "chef.db",
			JWTSecret:      "secret",
			GeminiAPIKey:   "key",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AI_REQUESTS_PER_HOUR")
		assert.Contains(t, err.Error(), "must be at least 1")
	})
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())

	t.Setenv("CI", "")
	t.Setenv("ENV", "production")
	assert.True(t, IsProduction())

	t.Setenv("ENV", " PROD ")
	assert.Equal(t, Production, GetEnvironment())

	t.Setenv("ENV", "")
	assert.True(t, IsDevelopment())
}
