package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/p2pmarket/service/cache/provider/primitive"
)

type layeredSuite struct {
	suite.Suite
	im     *layered
	local  Service
	remote Service
}

func (ts *layeredSuite) SetupTest() {
	ts.local = New(ServiceConfig{TTL: time.Minute, Prefix: "test", Cache: primitive.NewPrimitive("local", 1)})
	ts.remote = New(ServiceConfig{TTL: time.Hour, Prefix: "test", Cache: primitive.NewPrimitive("remote", 1)})
	ts.im = NewLayered(ts.local, ts.remote).(*layered)
}

func TestLayered(t *testing.T) {
	suite.Run(t, new(layeredSuite))
}

func (ts *layeredSuite) TestGetBackfills() {
	var (
		k = "key"
		v = value{"value"}
		c = &value{}
	)

	ts.Equal(ErrNotFound, ts.im.Get(mockCtx, k, c))

	ts.NoError(ts.remote.Set(mockCtx, k, v))
	ts.Equal(ErrNotFound, ts.local.Get(mockCtx, k, c))

	ts.NoError(ts.im.Get(mockCtx, k, c))
	ts.Equal(v, *c)

	c = &value{}
	ts.NoError(ts.local.Get(mockCtx, k, c))
	ts.Equal(v, *c)
}

func (ts *layeredSuite) TestSetAndDelAllLayers() {
	k := "key"
	ts.NoError(ts.im.Set(mockCtx, k, value{"v"}))

	c := &value{}
	ts.NoError(ts.local.Get(mockCtx, k, c))
	ts.NoError(ts.remote.Get(mockCtx, k, c))

	ts.NoError(ts.im.Del(mockCtx, k))
	ts.Equal(ErrNotFound, ts.local.Get(mockCtx, k, c))
	ts.Equal(ErrNotFound, ts.remote.Get(mockCtx, k, c))
}

func (ts *layeredSuite) TestGetByFunc() {
	c := &value{}
	ts.NoError(ts.im.GetByFunc(mockCtx, "k", c, func() (interface{}, error) {
		return &value{"loaded"}, nil
	}))
	ts.Equal("loaded", c.Value)

	c = &value{}
	ts.NoError(ts.remote.Get(mockCtx, "k", c))
	ts.Equal("loaded", c.Value)
}
