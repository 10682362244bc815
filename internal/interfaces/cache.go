// абстракция key-value хранилища с TTL
// используется и для кэширования результатов, и для счётчиков rate limiter
package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss возвращается реализациями кэша, когда значения по ключу нет
// (или его TTL истёк)
var ErrCacheMiss = errors.New("cache: key not found")

// Cache - абстракция key-value хранилища
type Cache interface {
	// Основные CRUD операции
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	GetBytes(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// TTL операции
	Expire(ctx context.Context, key string, expiration time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)

	// Управление соединением
	Close() error
}
