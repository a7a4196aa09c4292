package cache

import (
	"errors"
	"time"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/service/cache/provider"
)

var ErrNotFound = errors.New("cache miss")

// OneTimeGetter loads the value on a cache miss. It may return a pointer or a
// plain value of the container's element type.
type OneTimeGetter func() (interface{}, error)

type (
	Serializer   func(interface{}) ([]byte, error)
	Deserializer func([]byte, interface{}) error
)

// Service is a typed cache on top of a raw byte provider. Keys are namespaced
// with the configured prefix before they reach the provider.
type Service interface {
	// GetByFunc reads key into container, calling getter and storing its result on a miss
	GetByFunc(c ctx.Ctx, key string, container interface{}, getter OneTimeGetter) error
	Get(c ctx.Ctx, key string, container interface{}) error
	Set(c ctx.Ctx, key string, value interface{}) error
	Del(c ctx.Ctx, key string) error
}

type ServiceConfig struct {
	TTL    time.Duration
	Prefix string
	Cache  provider.Provider
	// json is used when these are nil
	Serialize   Serializer
	Deserialize Deserializer
}
