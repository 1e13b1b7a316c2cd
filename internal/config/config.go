package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// TokenStoreBackend selects how the session token is persisted.
type TokenStoreBackend string

const (
	TokenStoreFile  TokenStoreBackend = "file"
	TokenStoreRedis TokenStoreBackend = "redis"
)

// Config aggregates runtime configuration for the console.
type Config struct {
	App     AppConfig
	API     APIConfig
	Socket  SocketConfig
	Storage StorageConfig
	Redis   RedisConfig
	Status  StatusConfig
	Logger  LoggerConfig
	Login   LoginConfig
}

// AppConfig controls process level behavior.
type AppConfig struct {
	Name    string
	Env     string
	Version string
}

// APIConfig points at the HASHTAGPe backend.
type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// SocketConfig controls the live notification channel.
type SocketConfig struct {
	URL                string
	MaxRetries         int
	DialTimeoutSeconds int
	RetryBackoffMillis int
}

// StorageConfig selects and configures token persistence.
type StorageConfig struct {
	Backend       TokenStoreBackend
	TokenFilePath string
	TokenRedisKey string
}

// RedisConfig holds Redis connection values for the redis token store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StatusConfig configures the local status server.
type StatusConfig struct {
	Host string
	Port string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level    string
	Encoding string
}

// LoginConfig optionally holds credentials for an automatic login at
// startup when no valid session is present.
type LoginConfig struct {
	Email    string
	Password string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	backend := TokenStoreBackend(getEnv("TOKEN_STORE_BACKEND", string(TokenStoreFile)))
	if backend != TokenStoreFile && backend != TokenStoreRedis {
		return nil, fmt.Errorf("invalid TOKEN_STORE_BACKEND: %q", backend)
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("CONSOLE_NAME", "hashtagpe-console"),
			Env:     getEnv("CONSOLE_ENV", "development"),
			Version: getEnv("CONSOLE_VERSION", "dev"),
		},
		API: APIConfig{
			BaseURL:        getEnv("API_BASE_URL", "http://localhost:7500/api"),
			TimeoutSeconds: getEnvAsInt("API_TIMEOUT_SECONDS", 15),
		},
		Socket: SocketConfig{
			URL:                getEnv("SOCKET_URL", "ws://localhost:7500/socket"),
			MaxRetries:         getEnvAsInt("SOCKET_MAX_RETRIES", 5),
			DialTimeoutSeconds: getEnvAsInt("SOCKET_DIAL_TIMEOUT_SECONDS", 10),
			RetryBackoffMillis: getEnvAsInt("SOCKET_RETRY_BACKOFF_MILLIS", 2000),
		},
		Storage: StorageConfig{
			Backend:       backend,
			TokenFilePath: getEnv("TOKEN_FILE_PATH", defaultTokenPath()),
			TokenRedisKey: getEnv("TOKEN_REDIS_KEY", "hashtagpe:console:token"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Status: StatusConfig{
			Host: getEnv("STATUS_HOST", "127.0.0.1"),
			Port: getEnv("STATUS_PORT", "8600"),
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", "json"),
		},
		Login: LoginConfig{
			Email:    os.Getenv("CONSOLE_LOGIN_EMAIL"),
			Password: os.Getenv("CONSOLE_LOGIN_PASSWORD"),
		},
	}

	return cfg, nil
}

// Addr returns the status server bind address.
func (s StatusConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// Timeout returns the configured API request timeout duration.
func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// DialTimeout returns the socket handshake timeout duration.
func (s SocketConfig) DialTimeout() time.Duration {
	if s.DialTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(s.DialTimeoutSeconds) * time.Second
}

// RetryBackoff returns the delay between reconnect attempts.
func (s SocketConfig) RetryBackoff() time.Duration {
	if s.RetryBackoffMillis <= 0 {
		return 2 * time.Second
	}
	return time.Duration(s.RetryBackoffMillis) * time.Millisecond
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".hashtagpe-console", "token")
	}
	return filepath.Join(home, ".hashtagpe-console", "token")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
