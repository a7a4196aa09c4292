package ens

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	goens "github.com/wealdtech/go-ens/v3"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/log"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/keys"
	"github.com/x-xyz/p2pmarket/service/cache"
	"github.com/x-xyz/p2pmarket/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/p2pmarket/service/cache/provider/redis"
	"github.com/x-xyz/p2pmarket/service/redis"
)

type reverseResolver func(address common.Address) (string, error)

type impl struct {
	reverse reverseResolver
	cache   cache.Service
}

func New(rpc string, redis redis.Service) (ENS, error) {
	client, err := ethclient.Dial(rpc)
	if err != nil {
		return nil, err
	}
	reverse := func(address common.Address) (string, error) {
		return goens.ReverseResolve(client, address)
	}
	return &impl{
		reverse: reverse,
		cache: cache.NewLayered(
			cache.New(cache.ServiceConfig{
				TTL:    30 * time.Second,
				Prefix: keys.PfxEns,
				Cache:  primitive.NewPrimitive("ens", 32),
			}),
			cache.New(cache.ServiceConfig{
				TTL:    24 * time.Hour,
				Prefix: keys.PfxEns,
				Cache:  redisCache.NewRedis(redis),
			}),
		),
	}, nil
}

func (im *impl) ReverseResolve(ctx ctx.Ctx, address domain.Address) (string, error) {
	res := ""
	key := keys.RedisKey("reverse-resolve", address.ToLowerStr())
	err := im.cache.GetByFunc(ctx, key, &res, func() (interface{}, error) {
		name, err := im.reverse(common.HexToAddress(string(address)))
		if isUnresolved(err) {
			return "", nil
		}
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"address": address,
			}).Error("failed to goens.ReverseResolve")
			return nil, err
		}
		return name, nil
	})

	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to cache.GetByFunc")
		return "", err
	}

	return res, nil
}

func isUnresolved(err error) bool {
	switch fmt.Sprint(err) {
	case "not a resolver", "no resolution", "no resolver":
		return true
	}
	return false
}
