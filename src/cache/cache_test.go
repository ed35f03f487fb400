package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "film_by_name:test movie", Key("film_by_name", "Test Movie"))
	assert.Equal(t, Key("film_by_name", "Test Movie"), Key("film_by_name", "TEST MOVIE"))
	assert.Equal(t, "films_for_day:2024-10-22:14-00", Key("films_for_day", "2024-10-22", "14:00"))
	assert.Equal(t, "films_for_day:2024-10-22", Key("films_for_day", "2024-10-22", ""))
}

func TestKeyKeepsDistinctNamesDistinct(t *testing.T) {
	// Lookups are exact-match, so names differing only in punctuation or
	// spacing must land on different entries.
	assert.NotEqual(t, Key("film_by_name", "Test Movie"), Key("film_by_name", "Test-Movie"))
	assert.NotEqual(t, Key("film_by_name", "Test Movie"), Key("film_by_name", "TestMovie"))
	assert.NotEqual(t, Key("event_by_name", "Gala!"), Key("event_by_name", "Gala"))
}

func TestRedisStoreMiss(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewRedisStore(rdb)

	mock.ExpectGet("film_by_name:unknown").RedisNil()

	_, err := store.Get(context.Background(), "film_by_name:unknown")
	assert.ErrorIs(t, err, ErrMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreRoundTrip(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewRedisStore(rdb)

	key := Key("film_by_name", "Test Movie")
	mock.ExpectSet(key, "payload", 900*time.Second).SetVal("OK")
	mock.ExpectGet(key).SetVal("payload")

	err := store.Set(context.Background(), key, "payload", 900*time.Second)
	assert.NoError(t, err)

	val, err := store.Get(context.Background(), key)
	assert.NoError(t, err)
	assert.Equal(t, "payload", val)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	err := store.Set(ctx, "k", "v", 10*time.Millisecond)
	assert.NoError(t, err)

	val, err := store.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, "v", val)

	time.Sleep(20 * time.Millisecond)

	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryStoreSweepsExpiredOnWrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "stale", "v", 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	assert.NoError(t, store.Set(ctx, "fresh", "v", time.Minute))

	store.mu.RLock()
	_, staleKept := store.entries["stale"]
	store.mu.RUnlock()
	assert.False(t, staleKept)
}
