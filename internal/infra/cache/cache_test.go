package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchEntry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestCache(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := NewClient(s.Addr(), 0)
	defer client.Close()

	c := New(client, time.Minute)
	ctx := context.Background()

	t.Run("SetAndGet", func(t *testing.T) {
		want := []searchEntry{{ID: 1, Name: "vivaan"}, {ID: 2, Name: "bodrum"}}
		require.NoError(t, c.Set(ctx, SearchKey("ottawa", "", ""), want))

		var got []searchEntry
		err := c.Get(ctx, SearchKey("ottawa", "", ""), &got)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("MissOnUnknownKey", func(t *testing.T) {
		var got []searchEntry
		err := c.Get(ctx, SearchKey("toronto", "italian", "CHEAP"), &got)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("MissAfterTTL", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, KeyLocations, []searchEntry{{ID: 1, Name: "ottawa"}}))

		s.FastForward(2 * time.Minute)

		var got []searchEntry
		err := c.Get(ctx, KeyLocations, &got)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("NilCacheIsAlwaysMiss", func(t *testing.T) {
		var nilCache *Cache
		assert.NoError(t, nilCache.Set(ctx, KeyCuisines, "x"))

		var got string
		assert.ErrorIs(t, nilCache.Get(ctx, KeyCuisines, &got), ErrCacheMiss)
	})
}

func TestSearchKey(t *testing.T) {
	assert.Equal(t, "search:-:-:-", SearchKey("", "", ""))
	assert.Equal(t, "search:ottawa:indian:EXPENSIVE", SearchKey("ottawa", "indian", "EXPENSIVE"))
}
