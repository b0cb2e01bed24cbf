package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyCache_SetGet(t *testing.T) {
	cache := newIdempotencyCache(time.Minute)

	cache.Set(100, &cachedResponse{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       []byte(`{"data":{"added":true}}`),
	})

	resp, found := cache.Get(100)
	require.True(t, found)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.JSONEq(t, `{"data":{"added":true}}`, string(resp.Body))
}

func TestIdempotencyCache_MissOnUnknownKey(t *testing.T) {
	cache := newIdempotencyCache(time.Minute)

	resp, found := cache.Get(999)
	assert.False(t, found)
	assert.Nil(t, resp)
}

func TestIdempotencyCache_MissAfterTTL(t *testing.T) {
	cache := newIdempotencyCache(50 * time.Millisecond)

	cache.mu.Lock()
	cache.items[456] = &cachedResponse{
		StatusCode: 200,
		Headers:    map[string]string{},
		Body:       []byte(`{}`),
		Timestamp:  time.Now().Add(-2 * time.Minute),
	}
	cache.mu.Unlock()

	_, found := cache.Get(456)
	assert.False(t, found)
}

func TestIdempotencyCache_SetRefreshesTimestamp(t *testing.T) {
	cache := newIdempotencyCache(time.Minute)

	stale := &cachedResponse{
		StatusCode: 200,
		Headers:    map[string]string{},
		Body:       []byte(`{}`),
		Timestamp:  time.Now().Add(-time.Hour),
	}
	cache.Set(7, stale)

	// Set stamps the entry, so a pre-aged Timestamp does not expire it.
	_, found := cache.Get(7)
	assert.True(t, found)
}
