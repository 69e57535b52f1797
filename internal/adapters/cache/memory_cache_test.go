package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	now := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	value := []byte("v1")
	require.NoError(t, c.Set(ctx, "k", value, time.Hour))
	value[0] = 'x'

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v1", string(got), "stored value is a copy")

	require.NoError(t, c.Set(ctx, "k", []byte("v2"), time.Hour))
	got, _, _ = c.Get(ctx, "k")
	assert.Equal(t, "v2", string(got), "last write wins")

	now = now.Add(time.Hour)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "expired at ttl")
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_NoTTL(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	c.now = func() time.Time { return time.Now().Add(24 * 365 * time.Hour) }

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}
