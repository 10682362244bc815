// агрегированный конфиг сервиса вакансий
package configs

import (
	"fmt"
	"os"
)

// структура общего конфига сервиса вакансий
type VacancyServiceConfig struct {
	ServerConf    *ServerConfig
	PostgresConf  *PostgresDBConfig
	RedisConf     *RedisConfig
	CacheConf     *CacheConfig
	RateLimitConf *RateLimitConfig
	CORSConf      *CORSConfig
	AuthConf      *AuthConfig
}

// LoadConfig загружает конфигурацию всего сервиса
// конфиг сервера - из yml файла (путь в VACANCY_SERVER_CONFIG), остальное - из переменных окружения
func LoadConfig() (*VacancyServiceConfig, error) {
	serverConf, err := LoadYAMLConfig(os.Getenv("VACANCY_SERVER_CONFIG"), UseDefaultServerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	postgresConf, err := NewPostgresDBConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load postgres config: %w", err)
	}

	cacheConf, err := NewCacheConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load cache config: %w", err)
	}

	// конфиг redis нужен только если кэш работает через redis
	var redisConf *RedisConfig
	if cacheConf.Backend == CacheBackendRedis {
		redisConf, err = NewRedisConfigFromEnv()
		if err != nil {
			return nil, fmt.Errorf("failed to load redis config: %w", err)
		}
	}

	rateLimitConf, err := NewRateLimitConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load rate limit config: %w", err)
	}

	authConf, err := NewAuthConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load auth config: %w", err)
	}

	return &VacancyServiceConfig{
		ServerConf:    serverConf,
		PostgresConf:  postgresConf,
		RedisConf:     redisConf,
		CacheConf:     cacheConf,
		RateLimitConf: rateLimitConf,
		CORSConf:      NewCORSConfigFromEnv(),
		AuthConf:      authConf,
	}, nil
}
