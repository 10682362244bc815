package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vamischenko/vacansii-back/internal/interfaces"
)

// проверяем создание кэша и валидацию входных параметров
func TestNewInmemoryShardedCache(t *testing.T) {
	// корректные параметры
	t.Run("creates with valid params", func(t *testing.T) {
		c, err := NewInmemoryShardedCache(7, 0)
		require.NoError(t, err)
		defer c.Close()

		assert.NotNil(t, c)
		assert.Len(t, c.shards, 7)
	})

	// нулевое количество шардов - ошибка
	t.Run("zero shards returns error", func(t *testing.T) {
		c, err := NewInmemoryShardedCache(0, 0)
		assert.Error(t, err)
		assert.Nil(t, c)
	})

	// отрицательный интервал очистки - ошибка
	t.Run("negative cleanup interval returns error", func(t *testing.T) {
		c, err := NewInmemoryShardedCache(7, -time.Second)
		assert.Error(t, err)
		assert.Nil(t, c)
	})
}

// проверяем базовые операции кэша: запись, чтение, удаление
func TestInmemoryShardedCache_CRUD(t *testing.T) {
	ctx := context.Background()

	c, err := NewInmemoryShardedCache(7, 0)
	require.NoError(t, err)
	defer c.Close()

	// записанное значение читается обратно байт в байт
	t.Run("set then get returns value", func(t *testing.T) {
		err := c.Set(ctx, "key1", []byte("value1"), time.Minute)
		require.NoError(t, err)

		val, err := c.GetBytes(ctx, "key1")
		require.NoError(t, err)
		assert.Equal(t, []byte("value1"), val)

		str, err := c.Get(ctx, "key1")
		require.NoError(t, err)
		assert.Equal(t, "value1", str)
	})

	// отсутствующий ключ - ErrCacheMiss
	t.Run("missing key returns cache miss", func(t *testing.T) {
		_, err := c.GetBytes(ctx, "no-such-key")
		assert.ErrorIs(t, err, interfaces.ErrCacheMiss)
	})

	// после удаления ключа значение недоступно
	t.Run("delete removes key", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "key2", []byte("value2"), time.Minute))
		require.NoError(t, c.Delete(ctx, "key2"))

		_, err := c.GetBytes(ctx, "key2")
		assert.ErrorIs(t, err, interfaces.ErrCacheMiss)
	})

	// Exists отличает существующий ключ от отсутствующего
	t.Run("exists reports presence", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "key3", []byte("value3"), time.Minute))

		ok, err := c.Exists(ctx, "key3")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = c.Exists(ctx, "no-such-key")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

// проверяем работу TTL
func TestInmemoryShardedCache_TTL(t *testing.T) {
	ctx := context.Background()

	c, err := NewInmemoryShardedCache(7, 0)
	require.NoError(t, err)
	defer c.Close()

	// значение с истёкшим TTL считается отсутствующим
	t.Run("expired value is treated as absent", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "short", []byte("v"), 20*time.Millisecond))

		time.Sleep(40 * time.Millisecond)

		_, err := c.GetBytes(ctx, "short")
		assert.ErrorIs(t, err, interfaces.ErrCacheMiss)
	})

	// TTL существующего ключа - положительный и не больше заданного
	t.Run("ttl of live key is positive", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "live", []byte("v"), time.Minute))

		ttl, err := c.TTL(ctx, "live")
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})

	// TTL отсутствующего ключа возвращает -2 (как redis)
	t.Run("ttl of missing key is -2", func(t *testing.T) {
		ttl, err := c.TTL(ctx, "no-such-key")
		require.NoError(t, err)
		assert.Equal(t, time.Duration(-2), ttl)
	})

	// Expire продлевает время жизни ключа
	t.Run("expire extends key lifetime", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "extend", []byte("v"), 20*time.Millisecond))
		require.NoError(t, c.Expire(ctx, "extend", time.Minute))

		time.Sleep(40 * time.Millisecond)

		_, err := c.GetBytes(ctx, "extend")
		assert.NoError(t, err)
	})
}

// проверяем фоновую очистку устаревших записей
func TestInmemoryShardedCache_CleanUp(t *testing.T) {
	ctx := context.Background()

	c, err := NewInmemoryShardedCache(3, 20*time.Millisecond)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set(ctx, "stale", []byte("v"), 10*time.Millisecond))

	// ждём пару циклов очистки
	time.Sleep(60 * time.Millisecond)

	// запись должна быть физически удалена из шарда
	s := c.getShard("stale")
	s.mu.RLock()
	_, ok := s.items["stale"]
	s.mu.RUnlock()
	assert.False(t, ok)
}

// повторный Close не должен паниковать
func TestInmemoryShardedCache_CloseIdempotent(t *testing.T) {
	c, err := NewInmemoryShardedCache(3, 10*time.Millisecond)
	require.NoError(t, err)

	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}
