package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/vamischenko/vacansii-back/internal/interfaces"
)

// Проверка на этапе компиляции, что тип реализует интерфейс
var _ interfaces.Cache = (*RedisAdapter)(nil)

// адаптер кэша на базе Redis
type RedisAdapter struct {
	client *redis.Client
}

// конструктор для адаптера кэша на базе Redis
func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

// метод для завершения работы экземпляра redis
func (r *RedisAdapter) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// метод для добавления значения с TTL в redis
func (r *RedisAdapter) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// метод получения значения из redis по ключу
// отсутствие ключа транслируем в interfaces.ErrCacheMiss
func (r *RedisAdapter) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", interfaces.ErrCacheMiss
	}
	return val, err
}

// метод получения значения из redis по ключу (результат в виде байтового среза)
func (r *RedisAdapter) GetBytes(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, interfaces.ErrCacheMiss
	}
	return val, err
}

// метод удаления элемента по ключу из redis
func (r *RedisAdapter) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// метод проверки существования элемента в redis по ключу
func (r *RedisAdapter) Exists(ctx context.Context, key string) (bool, error) {
	result, err := r.client.Exists(ctx, key).Result()
	return result > 0, err
}

// метод устанавливает время жизни ключа в Redis.
func (r *RedisAdapter) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return r.client.Expire(ctx, key, expiration).Err()
}

// метод возвращает оставшееся время жизни ключа в Redis.
// Возвращает -1 если время жизни не установлено, -2 если ключ не существует.
func (r *RedisAdapter) TTL(ctx context.Context, key string) (time.Duration, error) {
	return r.client.TTL(ctx, key).Result()
}
