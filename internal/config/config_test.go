package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "hashtagpe-console", cfg.App.Name)
	require.Equal(t, "http://localhost:7500/api", cfg.API.BaseURL)
	require.Equal(t, 15*time.Second, cfg.API.Timeout())
	require.Equal(t, 5, cfg.Socket.MaxRetries)
	require.Equal(t, TokenStoreFile, cfg.Storage.Backend)
	require.NotEmpty(t, cfg.Storage.TokenFilePath)
	require.Equal(t, "127.0.0.1:8600", cfg.Status.Addr())
	require.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.hashtagpe.test/api")
	t.Setenv("SOCKET_URL", "wss://api.hashtagpe.test/socket")
	t.Setenv("SOCKET_MAX_RETRIES", "3")
	t.Setenv("SOCKET_RETRY_BACKOFF_MILLIS", "250")
	t.Setenv("TOKEN_STORE_BACKEND", "redis")
	t.Setenv("TOKEN_REDIS_KEY", "console:token")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "https://api.hashtagpe.test/api", cfg.API.BaseURL)
	require.Equal(t, "wss://api.hashtagpe.test/socket", cfg.Socket.URL)
	require.Equal(t, 3, cfg.Socket.MaxRetries)
	require.Equal(t, 250*time.Millisecond, cfg.Socket.RetryBackoff())
	require.Equal(t, TokenStoreRedis, cfg.Storage.Backend)
	require.Equal(t, "console:token", cfg.Storage.TokenRedisKey)
	require.Equal(t, 2, cfg.Redis.DB)
	require.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("TOKEN_STORE_BACKEND", "localstorage")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}

func TestInvalidIntFallsBack(t *testing.T) {
	t.Setenv("SOCKET_MAX_RETRIES", "several")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Socket.MaxRetries)
}
