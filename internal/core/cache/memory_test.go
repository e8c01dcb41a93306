package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"grocery-planner/internal/infrastructure/config"
	"grocery-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMemory(t *testing.T, maxSize int) (*Memory, *time.Time) {
	t.Helper()
	m := NewMemory(&config.CacheConfig{Enabled: true, MaxSize: maxSize, TTL: time.Minute})
	t.Cleanup(func() { _ = m.Close() })

	clock := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }
	return m, &clock
}

func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemory(t, 10)

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrCacheMiss)

	require.NoError(t, m.Set(ctx, "k", []byte("v")))
	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	stats := m.GetStats()
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestMemory(t, 10)

	require.NoError(t, m.Set(ctx, "k", []byte("v")))
	*clock = clock.Add(2 * time.Minute)

	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
	assert.Equal(t, 0, m.Len())
}

func TestMemory_EvictsLeastUsed(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemory(t, 2)

	require.NoError(t, m.Set(ctx, "a", []byte("1")))
	require.NoError(t, m.Set(ctx, "b", []byte("2")))
	_, err := m.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "c", []byte("3")))
	assert.Equal(t, 2, m.Len())

	_, err = m.Get(ctx, "b")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
	_, err = m.Get(ctx, "a")
	assert.NoError(t, err)
}

func TestMemory_OverwriteAtCapacity(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemory(t, 1)

	require.NoError(t, m.Set(ctx, "a", []byte("1")))
	require.NoError(t, m.Set(ctx, "a", []byte("2")))

	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
}

func TestMemory_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemory(t, 10)

	require.NoError(t, m.Set(ctx, GroceryKey("u1", 0, "2024-06-10"), []byte("x")))
	require.NoError(t, m.Set(ctx, GroceryKey("u1", 1, "2024-06-17"), []byte("y")))
	require.NoError(t, m.Set(ctx, GroceryKey("u2", 0, "2024-06-10"), []byte("z")))

	n, err := m.DeletePrefix(ctx, UserPrefix("u1"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, m.Len())
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	s, err := New(ctx, &config.CacheConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = New(ctx, &config.CacheConfig{Enabled: true, Backend: "memory", MaxSize: 5, TTL: time.Minute})
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.IsType(t, &Memory{}, s)
	assert.NoError(t, s.Close())

	_, err = New(ctx, &config.CacheConfig{Enabled: true, Backend: "memcached"})
	assert.Error(t, err)
}

func TestMemory_Generation(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestMemory(t, 1)

	gen, err := m.Generation(ctx, GenerationKey("u1"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	n, err := m.Incr(ctx, GenerationKey("u1"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// 計數器不佔容量，也不隨 TTL 或前綴刪除消失
	require.NoError(t, m.Set(ctx, GroceryKey("u1", 1, "2024-06-10"), []byte("x")))
	*clock = clock.Add(time.Hour)
	_, err = m.DeletePrefix(ctx, UserPrefix("u1"))
	require.NoError(t, err)

	gen, err = m.Generation(ctx, GenerationKey("u1"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)

	gen, err = m.Generation(ctx, GenerationKey("u2"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)
}

func TestGroceryKey(t *testing.T) {
	assert.Equal(t, "grocery:u1:g0:2024-06-10", GroceryKey("u1", 0, "2024-06-10"))
	assert.Equal(t, "grocery:u1:g3:2024-06-10", GroceryKey("u1", 3, "2024-06-10"))
	assert.False(t, strings.HasPrefix(GenerationKey("u1"), UserPrefix("u1")))
}
