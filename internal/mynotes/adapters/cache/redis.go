// Package cache содержит реализацию кэширования с использованием Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mynotes/internal/mynotes/config"
	"mynotes/internal/mynotes/ports/cache"
	"mynotes/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodGet       = "get"
	LogMethodSet       = "set"
	LogMethodDelete    = "delete"
	LogMethodIncrement = "increment"

	ErrorFailedToGet       = "failed to get value from redis"
	ErrorFailedToSet       = "failed to set value in redis"
	ErrorFailedToDelete    = "failed to delete value from redis"
	ErrorFailedToIncrement = "failed to increment value in redis"
	ErrorFailedToClose     = "failed to close redis connection"
)

// RedisCache реализует интерфейс Cache с использованием Redis.
type RedisCache struct {
	client     *redis.Client
	defaultTTL time.Duration
}

// NewRedisCache создает новый экземпляр RedisCache.
func NewRedisCache(ctx context.Context, cfg *config.RedisConfig) (cache.Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetAddressString(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.ConnectTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{
		client:     client,
		defaultTTL: cfg.DefaultTTL,
	}, nil
}

// Get получает значение по ключу. Отсутствующий ключ не является ошибкой.
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.String("key", key))

	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		log.Error(ctx, ErrorFailedToGet, zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	return value, nil
}

// Set устанавливает значение для ключа с временем жизни.
func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSet), zap.String("key", key))

	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Error(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	return nil
}

// Delete удаляет ключи.
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodDelete))

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Error(ctx, ErrorFailedToDelete, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}

	return nil
}

// Increment атомарно увеличивает счетчик и возвращает новое значение.
func (c *RedisCache) Increment(ctx context.Context, key string) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodIncrement), zap.String("key", key))

	value, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		log.Error(ctx, ErrorFailedToIncrement, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", ErrorFailedToIncrement, err)
	}

	return value, nil
}

// Close закрывает соединение с Redis.
func (c *RedisCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
