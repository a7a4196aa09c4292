package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/service/cache/provider"
	"github.com/x-xyz/p2pmarket/service/cache/provider/primitive"
)

type cacheMiddlewareSuite struct {
	suite.Suite

	e      *echo.Echo
	remote provider.Provider
	cache  *HttpCache
	calls  int
}

func TestCacheMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(cacheMiddlewareSuite))
}

func (s *cacheMiddlewareSuite) SetupTest() {
	s.e = echo.New()
	s.remote = primitive.NewPrimitive("remote", 1)
	s.cache = newHttpCache(primitive.NewPrimitive("local", 1), s.remote)
	s.calls = 0
}

func (s *cacheMiddlewareSuite) serve(method, target string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.Set("ctx", ctx.Background())
	s.Require().NoError(s.cache.CacheHttp(30 * time.Second)(h)(c))
	return rec
}

func (s *cacheMiddlewareSuite) handler(status int, body string) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.calls++
		return c.String(status, body)
	}
}

func (s *cacheMiddlewareSuite) TestCacheHit() {
	rec := s.serve(http.MethodGet, "/listings/category/Home?b=2&a=1", s.handler(http.StatusOK, "Hello, World"))
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Hello, World", rec.Body.String())

	rec = s.serve(http.MethodGet, "/listings/category/Home?a=1&b=2", s.handler(http.StatusOK, "Hello, again"))
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Hello, World", rec.Body.String())
	s.Equal(echo.MIMETextPlainCharsetUTF8, rec.Header().Get(echo.HeaderContentType))
	s.Equal(1, s.calls)
}

func (s *cacheMiddlewareSuite) TestStoredRemotely() {
	s.serve(http.MethodGet, "/listings/category/Art", s.handler(http.StatusOK, "art"))

	key := "httpCache:" + generateKey("/listings/category/Art")
	_, _, err := s.remote.Get(ctx.Background(), key)
	s.NoError(err)
}

func (s *cacheMiddlewareSuite) TestErrorsNotCached() {
	s.serve(http.MethodGet, "/listings/category/Nope", s.handler(http.StatusBadRequest, "bad"))
	rec := s.serve(http.MethodGet, "/listings/category/Nope", s.handler(http.StatusOK, "ok"))
	s.Equal("ok", rec.Body.String())
	s.Equal(2, s.calls)
}

func (s *cacheMiddlewareSuite) TestOnlyGet() {
	s.serve(http.MethodPost, "/listings", s.handler(http.StatusCreated, "a"))
	rec := s.serve(http.MethodPost, "/listings", s.handler(http.StatusCreated, "b"))
	s.Equal("b", rec.Body.String())
	s.Equal(2, s.calls)
}
