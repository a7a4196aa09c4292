package ens

import (
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/service/cache"
	"github.com/x-xyz/p2pmarket/service/cache/provider/primitive"
)

type ensSuite struct {
	suite.Suite

	im    *impl
	calls int
	name  string
	err   error
}

func TestEnsSuite(t *testing.T) {
	suite.Run(t, new(ensSuite))
}

func (s *ensSuite) SetupTest() {
	s.calls = 0
	s.name = ""
	s.err = nil
	s.im = &impl{
		reverse: func(address common.Address) (string, error) {
			s.calls++
			return s.name, s.err
		},
		cache: cache.New(cache.ServiceConfig{
			TTL:    time.Minute,
			Prefix: "ens-test",
			Cache:  primitive.NewPrimitive("ens-test", 1),
		}),
	}
}

func (s *ensSuite) TestReverseResolveCached() {
	address := domain.Address("0x020cA66C30beC2c4Fe3861a94E4DB4A498A35872")
	s.name = "seller.eth"

	res, err := s.im.ReverseResolve(ctx.Background(), address)
	s.NoError(err)
	s.Equal("seller.eth", res)

	res, err = s.im.ReverseResolve(ctx.Background(), address.ToLower())
	s.NoError(err)
	s.Equal("seller.eth", res)
	s.Equal(1, s.calls)
}

func (s *ensSuite) TestReverseResolveUnregistered() {
	s.err = errors.New("not a resolver")

	res, err := s.im.ReverseResolve(ctx.Background(), domain.Address("0x"+"1234567890123456789012345678901234567890"))
	s.NoError(err)
	s.Equal("", res)
}

func (s *ensSuite) TestReverseResolveError() {
	s.err = errors.New("rpc down")

	_, err := s.im.ReverseResolve(ctx.Background(), domain.Address("0x"+"abcdefabcdefabcdefabcdefabcdefabcdefabcd"))
	s.Error(err)
}
