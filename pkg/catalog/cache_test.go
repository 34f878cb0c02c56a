package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCacheSetGet(t *testing.T) {
	cache := NewMemoryCache(time.Minute, time.Minute)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "missing")
	assert.False(t, ok)

	cache.Set(ctx, "key", []byte("value"))
	got, ok := cache.Get(ctx, "key")
	assert.True(t, ok)
	assert.Equal(t, []byte("value"), got)
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache(10*time.Millisecond, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, "key", []byte("value"))
	time.Sleep(20 * time.Millisecond)

	_, ok := cache.Get(ctx, "key")
	assert.False(t, ok)
}
