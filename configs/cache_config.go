package configs

import (
	"fmt"
	"time"
)

// допустимые бэкенды кэша
const (
	CacheBackendRedis  = "redis"  // общий кэш между процессами (основной вариант)
	CacheBackendMemory = "memory" // инмемори кэш внутри процесса (локальная разработка, тесты)
)

// структура конфига для кэша
type CacheConfig struct {
	Backend         string        // redis или memory
	NumOfShards     int           // количество шардов для инмемори кэша
	CleanUpInterval time.Duration // интервал самоочистки для инмемори кэша
}

// NewCacheConfigFromEnv создаёт конфиг кэша из переменных окружения
func NewCacheConfigFromEnv() (*CacheConfig, error) {
	backend := getEnvWithDefault("CACHE_BACKEND", CacheBackendRedis)
	if backend != CacheBackendRedis && backend != CacheBackendMemory {
		return nil, fmt.Errorf("CACHE_BACKEND must be redis or memory, got %q", backend)
	}

	numOfShards, err := getEnvAsInt32WithValidation("CACHE_NUM_SHARDS", 7, 1, 128)
	if err != nil {
		return nil, err
	}

	cleanUpInterval, err := getEnvAsDurationWithValidation("CACHE_CLEANUP_INTERVAL", 30*time.Second, 1*time.Second, 1*time.Hour)
	if err != nil {
		return nil, err
	}

	return &CacheConfig{
		Backend:         backend,
		NumOfShards:     int(numOfShards),
		CleanUpInterval: cleanUpInterval,
	}, nil
}
