package redis

import (
	"errors"
	"time"

	"github.com/x-xyz/p2pmarket/base/ctx"
)

// Forever is the expire value for keys without a TTL
const Forever = time.Duration(-1)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis: key not found")
	// ErrNoTTL is returned by TTL for keys without an expiration
	ErrNoTTL = errors.New("redis: key has no ttl")
)

// Service is the subset of redis commands used by the cache providers and health checks
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(context ctx.Ctx, keys ...string) (int, error)
	Exists(context ctx.Ctx, key string) (bool, error)
	// TTL returns the remaining seconds of key
	TTL(context ctx.Ctx, key string) (int, error)
	Ping(context ctx.Ctx) error
}
