// Package cache defines the cache interface used by the HTTP layer.
package cache

import (
	"context"
	"time"
)

// Cache определяет интерфейс кэша для слоя представления.
type Cache interface {
	// Get возвращает значение по ключу или пустую строку, если ключа нет.
	Get(ctx context.Context, key string) (string, error)
	// Set устанавливает значение с временем жизни; ttl <= 0 использует TTL по умолчанию.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Delete удаляет ключи.
	Delete(ctx context.Context, keys ...string) error
	// Increment атомарно увеличивает счетчик и возвращает новое значение.
	Increment(ctx context.Context, key string) (int64, error)
	// Close закрывает соединение с кэшем.
	Close() error
}
