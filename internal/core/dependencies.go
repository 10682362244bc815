package core

import (
	"context"
	"fmt"
	"runtime"

	"github.com/vamischenko/vacansii-back/configs"
	"github.com/vamischenko/vacansii-back/internal/cache"
	"github.com/vamischenko/vacansii-back/internal/interfaces"
	postgresdb "github.com/vamischenko/vacansii-back/internal/postgres_db"
	"github.com/vamischenko/vacansii-back/internal/ratelimiter"
	"github.com/vamischenko/vacansii-back/internal/vacancy_server/handlers"
	"github.com/vamischenko/vacansii-back/internal/vacancy_server/repository"
	"github.com/vamischenko/vacansii-back/internal/vacancy_server/service"
)

// Dependencies содержит все общие зависимости
type VacancyServiceDependencies struct {
	Config         *configs.VacancyServiceConfig
	VacancyHandler handlers.VacancyHandlerInterface
	RateLimiter    interfaces.RateLimiter

	cache  interfaces.Cache
	pgRepo *postgresdb.PgRepo
}

// InitDependencies инициализирует общие зависимости для сервера вакансий
func InitDependencies(ctx context.Context) (*VacancyServiceDependencies, error) {
	// Получаем количество CPU
	currentMaxProcs := runtime.GOMAXPROCS(-1)
	fmt.Printf("Текущее значение GOMAXPROCS: %d\n", currentMaxProcs)

	// Получаем конфигурацию
	conf, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// создаём кэш в зависимости от выбранного бэкенда
	appCache, err := buildCache(conf.CacheConf, conf.RedisConf)
	if err != nil {
		return nil, fmt.Errorf("failed to init cache: %w", err)
	}

	// создаём экземпляр пула соединений для postgresQL
	pgRepo, err := postgresdb.NewPgRepo(ctx, conf.PostgresConf)
	if err != nil {
		appCache.Close()
		return nil, fmt.Errorf("failed to init postgres pool: %w", err)
	}

	// создаём слой репозитория поверх адаптера пула
	repo := repository.NewVacancyRepository(postgresdb.NewPoolAdapter(pgRepo.GetPool()), conf.PostgresConf.Dialect)

	// создаём сервис вакансий
	vacancyService := service.NewVacancyService(repo, appCache)

	// создаём хэндлер вакансий
	vacancyHandler := handlers.NewVacancyHandler(vacancyService)

	// создаём лимитер запросов поверх того же кэша
	limiter, err := ratelimiter.NewCacheRateLimiter(appCache, conf.RateLimitConf)
	if err != nil {
		appCache.Close()
		pgRepo.Close()
		return nil, fmt.Errorf("failed to init rate limiter: %w", err)
	}

	return &VacancyServiceDependencies{
		Config:         conf,
		VacancyHandler: vacancyHandler,
		RateLimiter:    limiter,
		cache:          appCache,
		pgRepo:         pgRepo,
	}, nil
}

// выбираем бэкенд кэша: redis (общий между процессами) или инмемори
func buildCache(cacheConf *configs.CacheConfig, redisConf *configs.RedisConfig) (interfaces.Cache, error) {
	if cacheConf.Backend == configs.CacheBackendMemory {
		return cache.NewInmemoryShardedCache(cacheConf.NumOfShards, cacheConf.CleanUpInterval)
	}
	return cache.NewRedisCache(redisConf)
}

// Close освобождает все ресурсы контейнера зависимостей
func (d *VacancyServiceDependencies) Close() {
	if d.cache != nil {
		if err := d.cache.Close(); err != nil {
			fmt.Printf("ошибка при закрытии кэша: %v\n", err)
		}
	}
	if d.pgRepo != nil {
		d.pgRepo.Close()
	}
}
