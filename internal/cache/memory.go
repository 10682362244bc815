// инмемори реализация кэша (шардированная, с TTL)
// используется при CACHE_BACKEND=memory: локальная разработка и тесты без redis
package cache

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/vamischenko/vacansii-back/internal/interfaces"
)

// Проверка на этапе компиляции, что тип реализует интерфейс
var _ interfaces.Cache = (*InmemoryShardedCache)(nil)

// основная структура inmemory cache. Кэш - шардирован
type InmemoryShardedCache struct {
	shards    []*shard
	numShards int
	stopChan  chan struct{}
	stopOnce  sync.Once
}

// структура отдельного шарда
// у него есть мапа с элементами и мьютекс для доступа к мапе
type shard struct {
	items map[string]cacheItem
	mu    sync.RWMutex
}

// структура отдельного элемента inmemory cache
type cacheItem struct {
	value   []byte
	expTime time.Time
}

// конструктор для создания кэша с указаным количеством шардов и интервалом очистки кэша
func NewInmemoryShardedCache(numShards int, cleanUpInterval time.Duration) (*InmemoryShardedCache, error) {
	// Валидация входных параметров
	if numShards <= 0 {
		return nil, fmt.Errorf("numShards must be positive, got %d", numShards)
	}

	if cleanUpInterval < 0 {
		return nil, fmt.Errorf("cleanUpInterval must be non-negative, got %v", cleanUpInterval)
	}

	// инициализируем базовую структуру кэша
	c := &InmemoryShardedCache{
		shards:    make([]*shard, numShards),
		numShards: numShards,
		stopChan:  make(chan struct{}),
	}

	// для каждого шарда инициализируем внутреннюю мапу
	for i := 0; i < numShards; i++ {
		c.shards[i] = &shard{
			items: map[string]cacheItem{},
		}
	}

	// асинхронно запускаем очистку кэша, только если интервал > 0
	if cleanUpInterval > 0 {
		go c.cleanUp(cleanUpInterval)
	}

	return c, nil
}

// метод, чтобы находить нужный шард по заданному ключу
func (c *InmemoryShardedCache) getShard(key string) *shard {
	// хэш по ключу % количество шардов = индекс шарда в диапазоне от 0 до numShards-1
	hashf := fnv.New32a()
	hashf.Write([]byte(key))
	shardIndex := int(hashf.Sum32()) % c.numShards

	return c.shards[shardIndex]
}

// метод для добавления значения с TTL в кэш
func (c *InmemoryShardedCache) Set(_ context.Context, key string, value []byte, expiration time.Duration) error {
	s := c.getShard(key)

	// берём лок на запись, так как обращаемся к мапе
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = cacheItem{
		value:   value,
		expTime: time.Now().Add(expiration),
	}
	return nil
}

// метод получения значения из кэша по ключу
func (c *InmemoryShardedCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.GetBytes(ctx, key)
	if err != nil {
		return "", err
	}
	return string(val), nil
}

// метод получения значения из кэша по ключу (результат в виде байтового среза)
// отсутствие ключа или истёкший TTL - interfaces.ErrCacheMiss
func (c *InmemoryShardedCache) GetBytes(_ context.Context, key string) ([]byte, error) {
	s := c.getShard(key)
	now := time.Now()

	// лочимся на чтение, так как читаем из мапы
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[key]
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}

	// проверяем, не истёк ли TTL у значения
	if now.After(item.expTime) {
		return nil, interfaces.ErrCacheMiss
	}

	return item.value, nil
}

// метод удаления элемента из кэша по ключу
func (c *InmemoryShardedCache) Delete(_ context.Context, key string) error {
	s := c.getShard(key)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

// метод проверки существования элемента в кэше по ключу
func (c *InmemoryShardedCache) Exists(ctx context.Context, key string) (bool, error) {
	_, err := c.GetBytes(ctx, key)
	if err != nil {
		if err == interfaces.ErrCacheMiss {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// метод устанавливает новое время жизни ключа
func (c *InmemoryShardedCache) Expire(_ context.Context, key string, expiration time.Duration) error {
	s := c.getShard(key)

	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[key]
	if !ok {
		return interfaces.ErrCacheMiss
	}
	item.expTime = time.Now().Add(expiration)
	s.items[key] = item
	return nil
}

// метод возвращает оставшееся время жизни ключа
// Возвращает -2 если ключ не существует (как redis)
func (c *InmemoryShardedCache) TTL(_ context.Context, key string) (time.Duration, error) {
	s := c.getShard(key)

	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[key]
	if !ok || time.Now().After(item.expTime) {
		return -2, nil
	}
	return time.Until(item.expTime), nil
}

// метод остановки кэша (останавливает горутину очистки)
func (c *InmemoryShardedCache) Close() error {
	c.stopOnce.Do(func() {
		close(c.stopChan)
	})
	return nil
}

// метод для интервальной очистки кэша или его остановки
func (c *InmemoryShardedCache) cleanUp(interval time.Duration) {
	// создаём тикер, который будет через заданный интервал запускать очистку устаревших записей
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanUpExpired()
		// читаем из stopChan - значит кэш остановлен, останавливаем и логику очистки
		case <-c.stopChan:
			return
		}
	}
}

// метод для очистки кэша от устаревших данных
func (c *InmemoryShardedCache) cleanUpExpired() {
	start := time.Now()
	// пробегаемся циклом по всем шардам
	for _, s := range c.shards {
		s.mu.Lock()
		for key, item := range s.items {
			// если текущее время - после времени жизни элемента кэша, то удаляем его
			if start.After(item.expTime) {
				delete(s.items, key)
			}
		}
		s.mu.Unlock()
	}
}
