package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/hashtagpe-console/internal/config"
)

// RedisStore keeps the token under a single Redis key, for deployments
// that share session state across console instances.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to Redis using the provided configuration.
func NewRedisStore(cfg config.RedisConfig, key string, logger *zap.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &RedisStore{client: client, key: key}
}

// Save writes the token with no expiry; the claim carries its own.
func (s *RedisStore) Save(token string) error {
	ctx, cancel := s.opContext()
	defer cancel()
	return s.client.Set(ctx, s.key, token, 0).Err()
}

// Read returns the stored token, or empty when the key is absent.
func (s *RedisStore) Read() (string, error) {
	ctx, cancel := s.opContext()
	defer cancel()
	val, err := s.client.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Clear deletes the token key.
func (s *RedisStore) Clear() error {
	ctx, cancel := s.opContext()
	defer cancel()
	return s.client.Del(ctx, s.key).Err()
}

// Close closes the client.
func (s *RedisStore) Close() {
	if s != nil && s.client != nil {
		_ = s.client.Close()
	}
}

func (s *RedisStore) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 3*time.Second)
}
