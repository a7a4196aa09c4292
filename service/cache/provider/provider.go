package provider

import (
	"errors"
	"time"

	"github.com/x-xyz/p2pmarket/base/ctx"
)

var ErrNotFound = errors.New("key not cached")

// Provider stores raw bytes with a ttl, implemented in process by primitive and
// shared across instances by redis
type Provider interface {
	// Get returns the value and its remaining ttl
	Get(c ctx.Ctx, key string) ([]byte, time.Duration, error)
	Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error
	Del(c ctx.Ctx, key string) error
}
