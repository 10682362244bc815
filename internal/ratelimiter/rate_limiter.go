// rate limiter по схеме "дырявое ведро" с ленивым пополнением
// состояние ведра хранится в общем кэше, поэтому лимит действует
// и между процессами, если кэш - redis
package ratelimiter

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/vamischenko/vacansii-back/configs"
	"github.com/vamischenko/vacansii-back/internal/interfaces"
)

// Проверка на этапе компиляции, что тип реализует интерфейс
var _ interfaces.RateLimiter = (*CacheRateLimiter)(nil)

// состояние ведра для одного клиента, сериализуется в кэш как JSON
type bucketState struct {
	Allowance    float64   `json:"allowance"`      // остаток бюджета запросов
	LastRefillAt time.Time `json:"last_refill_at"` // время последнего пересчёта
}

// структура rate limiter, работающего поверх кэша
// чтение-изменение-запись ведра НЕ атомарны: при конкурентных запросах от одного
// клиента побеждает последняя запись, и за окно может пройти чуть больше limit
// запросов. Это осознанное допущение, а не баг
type CacheRateLimiter struct {
	cache      interfaces.Cache
	limit      int
	window     time.Duration
	failClosed bool
	now        func() time.Time // выделено в поле для детерминированных тестов
}

// конструктор для rate limiter на базе кэша
func NewCacheRateLimiter(cache interfaces.Cache, conf *configs.RateLimitConfig) (*CacheRateLimiter, error) {
	if cache == nil {
		return nil, fmt.Errorf("cache is required")
	}
	if conf == nil {
		return nil, fmt.Errorf("rate limit config is required")
	}
	if conf.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", conf.Limit)
	}
	if conf.Window <= 0 {
		return nil, fmt.Errorf("window must be positive, got %v", conf.Window)
	}

	return &CacheRateLimiter{
		cache:      cache,
		limit:      conf.Limit,
		window:     conf.Window,
		failClosed: conf.FailClosed,
		now:        time.Now,
	}, nil
}

// формируем ключ ведра: (scope эндпоинта, IP клиента)
func bucketKey(scope, clientID string) string {
	return "ratelimit:" + scope + ":" + clientID
}

// Allow решает, пропускать ли текущий запрос клиента
// каждое обращение обновляет состояние ведра в кэше, независимо от решения
func (rl *CacheRateLimiter) Allow(ctx context.Context, scope, clientID string) (bool, error) {
	key := bucketKey(scope, clientID)
	now := rl.now()

	raw, err := rl.cache.GetBytes(ctx, key)
	if err != nil && err != interfaces.ErrCacheMiss {
		// кэш недоступен: решаем согласно настройке (по умолчанию fail-open,
		// чтобы отказ кэша не превращался в отказ всего API)
		log.Printf("rate limiter: cache unavailable: %v", err)
		return !rl.failClosed, nil
	}

	// первый запрос клиента в свежем окне: заводим ведро с полным бюджетом минус этот запрос
	if err == interfaces.ErrCacheMiss {
		state := bucketState{
			Allowance:    float64(rl.limit) - 1,
			LastRefillAt: now,
		}
		rl.saveState(ctx, key, state)
		return true, nil
	}

	var state bucketState
	if err := json.Unmarshal(raw, &state); err != nil {
		// битая запись в кэше: заводим ведро заново
		log.Printf("rate limiter: corrupted bucket state for %s: %v", key, err)
		state = bucketState{
			Allowance:    float64(rl.limit) - 1,
			LastRefillAt: now,
		}
		rl.saveState(ctx, key, state)
		return true, nil
	}

	// ленивое пополнение: бюджет растёт пропорционально прошедшему времени,
	// но не выше limit
	elapsed := now.Sub(state.LastRefillAt).Seconds()
	state.Allowance += elapsed * float64(rl.limit) / rl.window.Seconds()
	if state.Allowance > float64(rl.limit) {
		state.Allowance = float64(rl.limit)
	}
	state.LastRefillAt = now

	// бюджета не хватает даже на один запрос - отклоняем,
	// но пересчитанное состояние всё равно сохраняем
	if state.Allowance < 1 {
		rl.saveState(ctx, key, state)
		return false, nil
	}

	// списываем один запрос из бюджета и пропускаем
	state.Allowance--
	rl.saveState(ctx, key, state)
	return true, nil
}

// сохраняем состояние ведра с TTL равным окну
// ведро никогда не удаляется явно - чистится самим кэшем по TTL
func (rl *CacheRateLimiter) saveState(ctx context.Context, key string, state bucketState) {
	encoded, err := json.Marshal(state)
	if err != nil {
		log.Printf("rate limiter: failed to marshal bucket state: %v", err)
		return
	}

	if err := rl.cache.Set(ctx, key, encoded, rl.window); err != nil {
		log.Printf("rate limiter: failed to save bucket state: %v", err)
	}
}
