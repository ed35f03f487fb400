package cache

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"tix/src/lib"

	"github.com/redis/go-redis/v9"
)

var ErrMiss = errors.New("cache: miss")

// Store is the contract the catalog query service reads through: get or
// absent, set with a TTL. Nothing else.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

var store Store

func GetStore() Store {
	if store != nil {
		return store
	}
	if rdb := lib.GetRedisClient(); rdb != nil {
		store = NewRedisStore(rdb)
		return store
	}
	log.Println("[cache] REDIS_HOST not configured, using in-process store")
	store = NewMemoryStore()
	return store
}

// NewStore replaces the process-wide store with a custom implementation.
func NewStore(s Store) Store {
	store = s
	return store
}

// Key builds a deterministic cache key from a lookup kind and its arguments.
// Arguments are lowercased so case variants of a name land on the same entry,
// but are otherwise kept verbatim: lookups are exact-match, so distinct names
// must never collapse onto one key. The separator is the only escaped rune.
func Key(kind string, parts ...string) string {
	segments := make([]string, 0, len(parts)+1)
	segments = append(segments, kind)
	for _, part := range parts {
		if part == "" {
			continue
		}
		part = strings.ToLower(part)
		segments = append(segments, strings.ReplaceAll(part, ":", "-"))
	}
	return strings.Join(segments, ":")
}

type redisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	if err != nil {
		log.Printf("[cache] Error retrieving value for %s: %s\n", key, err.Error())
		return "", err
	}
	return val, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("[cache] Failed to set value for key %s: %s\n", key, err.Error())
		return err
	}
	return nil
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is a process-local Store used when no Redis host is configured
// and by tests. Expired entries are dropped on read of their own key and
// swept wholesale on every write.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return "", ErrMiss
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return "", ErrMiss
	}
	return entry.value, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	now := time.Now()
	s.mu.Lock()
	// Writes double as the sweep so entries that are never read again do not
	// pile up for the lifetime of the process.
	for k, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, k)
		}
	}
	s.entries[key] = memoryEntry{value: value, expiresAt: now.Add(ttl)}
	s.mu.Unlock()
	return nil
}
