package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const keyPrefix = "netdiag"

// ErrNotFound is returned by a Store when a key is absent.
var ErrNotFound = errors.New("cache: key not found")

// Store is the minimal key-value contract the cache needs from its
// backend. Values are serialized strings with a per-key TTL.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	SetEx(ctx context.Context, key, value string, ttl time.Duration) error
}

// Cache is a fail-open result cache: backend trouble is never visible
// to callers, it only costs a fresh computation.
type Cache struct {
	store Store
	log   *zap.Logger
}

func New(store Store, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{store: store, log: log}
}

// Disabled returns a cache without a backend; every lookup computes
// fresh.
func Disabled() *Cache {
	return &Cache{log: zap.NewNop()}
}

// Key derives the backend key for a namespace and target. The target
// fingerprint is a sha256 hash truncated to 16 hex characters; the
// namespace prefix keeps probe kinds structurally collision-free.
func Key(namespace, target string) string {
	sum := sha256.Sum256([]byte(target))
	return fmt.Sprintf("%s:%s:%s", keyPrefix, namespace, hex.EncodeToString(sum[:])[:16])
}

// GetOrCompute returns the stored result for namespace/target when the
// backend holds a decodable entry, marking it as served from cache.
// A miss, an unreachable backend or a corrupted payload all fall back
// to computing fresh; the write-back is best effort and write errors
// are swallowed. Duplicate in-flight computes for the same key are
// tolerated rather than coalesced.
func GetOrCompute[T any, P interface {
	*T
	MarkCached()
}](ctx context.Context, c *Cache, namespace, target string, ttl time.Duration, compute func() *T) *T {
	if c == nil || c.store == nil {
		return compute()
	}

	key := Key(namespace, target)
	raw, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var hit T
		if decodeErr := json.Unmarshal([]byte(raw), &hit); decodeErr == nil {
			P(&hit).MarkCached()
			return &hit
		}
		c.log.Debug("discarding corrupted cache entry", zap.String("key", key))
	case !errors.Is(err, ErrNotFound):
		c.log.Debug("cache read failed", zap.String("key", key), zap.Error(err))
	}

	result := compute()

	data, err := json.Marshal(result)
	if err != nil {
		c.log.Debug("cache encode failed", zap.String("key", key), zap.Error(err))
		return result
	}
	if err := c.store.SetEx(ctx, key, string(data), ttl); err != nil {
		c.log.Debug("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return result
}
