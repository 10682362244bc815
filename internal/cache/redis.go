package cache

import (
	"context"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"

	"github.com/vamischenko/vacansii-back/configs"
	"github.com/vamischenko/vacansii-back/internal/interfaces"
)

// NewRedisCache создаёт кэш на базе Redis
func NewRedisCache(cfg *configs.RedisConfig) (interfaces.Cache, error) {
	// проверяем, что конфиг редиса не nil
	if cfg == nil {
		return nil, fmt.Errorf("Error in redis config")
	}

	// создаёем экземпляр опций, на базе которых построим клиента
	redisOptions := cfg.ToRedisOptions()

	// создаём клиента redis на основе опций *redis.Options
	client := redis.NewClient(redisOptions)

	// Проверяем подключение
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	log.Printf("Connected to Redis at %s (DB: %d)", redisOptions.Addr, redisOptions.DB)

	// возвращаем результат работы конструктора адаптера
	return NewRedisAdapter(client), nil
}
