package analysis

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"

	"github.com/ozcitizen/backend/internal/store"
)

// DefaultTTL is how long a cached analysis stays valid.
const DefaultTTL = 30 * 24 * time.Hour

// Cache stores analysis results by key. A miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]Term, bool, error)
	Set(ctx context.Context, key string, terms []Term) error
}

// CacheKey hashes the inputs that determine an analysis.
func CacheKey(text string, options []string, language string) string {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(text))
	for _, o := range options {
		h.Write([]byte{0})
		h.Write([]byte(o))
	}
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(language)))
	return hex.EncodeToString(h.Sum(nil))
}

type cachedEntry struct {
	Timestamp int64  `json:"timestamp"` // unix milliseconds
	Terms     []Term `json:"terms"`
}

// KVCache keeps results in the global namespace of the KV store. Expiry is
// checked on read; Sweep deletes expired entries.
type KVCache struct {
	kv  store.KV
	ttl time.Duration
	now func() time.Time
}

var _ Cache = (*KVCache)(nil)

func NewKVCache(kv store.KV, ttl time.Duration, now func() time.Time) *KVCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &KVCache{kv: kv, ttl: ttl, now: now}
}

func (c *KVCache) Get(ctx context.Context, key string) ([]Term, bool, error) {
	entry, err := c.read(ctx, store.AnalysisKey(key))
	if errors.Is(err, store.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if c.expired(entry) {
		return nil, false, nil
	}
	return entry.Terms, true, nil
}

func (c *KVCache) Set(ctx context.Context, key string, terms []Term) error {
	return store.SetJSON(ctx, c.kv, store.Global, store.AnalysisKey(key), cachedEntry{
		Timestamp: c.now().UnixMilli(),
		Terms:     terms,
	})
}

// Sweep removes expired and unreadable entries and returns how many it removed.
func (c *KVCache) Sweep(ctx context.Context) (int, error) {
	keys, err := c.kv.Keys(ctx, store.Global, store.AnalysisPrefix)
	if err != nil {
		return 0, err
	}

	var stale []string
	for _, key := range keys {
		entry, err := c.read(ctx, key)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil || c.expired(entry) {
			stale = append(stale, key)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}
	if err := c.kv.Remove(ctx, store.Global, stale...); err != nil {
		return 0, err
	}
	return len(stale), nil
}

func (c *KVCache) read(ctx context.Context, slot string) (cachedEntry, error) {
	var entry cachedEntry
	err := store.GetJSON(ctx, c.kv, store.Global, slot, &entry)
	return entry, err
}

func (c *KVCache) expired(e cachedEntry) bool {
	return c.now().Sub(time.UnixMilli(e.Timestamp)) > c.ttl
}

// RedisCache keeps results in Redis and lets Redis expire them.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Cache = (*RedisCache)(nil)

// NewRedisCache connects to the Redis server at url (redis://host:port/db).
func NewRedisCache(ctx context.Context, url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]Term, bool, error) {
	data, err := c.client.Get(ctx, store.AnalysisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var terms []Term
	if err := json.Unmarshal(data, &terms); err != nil {
		return nil, false, fmt.Errorf("decode cached analysis: %w", err)
	}
	return terms, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, terms []Term) error {
	data, err := json.Marshal(terms)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, store.AnalysisKey(key), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
