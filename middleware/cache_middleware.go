package middleware

import (
	"bufio"
	"bytes"
	"hash/fnv"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/log"
	"github.com/x-xyz/p2pmarket/domain/keys"
	"github.com/x-xyz/p2pmarket/service/cache"
	"github.com/x-xyz/p2pmarket/service/cache/provider"
	"github.com/x-xyz/p2pmarket/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/p2pmarket/service/cache/provider/redis"
	"github.com/x-xyz/p2pmarket/service/redis"
)

const (
	localCacheTTL = 10 * time.Second
	// responses larger than this skip the local layer
	localCacheMaxBody = 32 << 10
)

// HttpCache caches successful GET responses locally and in redis
type HttpCache struct {
	local  provider.Provider
	remote provider.Provider
}

func NewHttpCache(redis redis.Service) *HttpCache {
	return newHttpCache(primitive.NewPrimitive("httpCacheMiddleware", 64), redisCache.NewRedis(redis))
}

func newHttpCache(local, remote provider.Provider) *HttpCache {
	return &HttpCache{local: local, remote: remote}
}

// Response is the cached response data structure.
type Response struct {
	// Value is the cached response value.
	Value []byte

	// Header is the cached response header.
	Header http.Header
}

type bodyDumpResponseWriter struct {
	statusCode int
	io.Writer
	http.ResponseWriter
}

func (w *bodyDumpResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyDumpResponseWriter) Write(b []byte) (int, error) {
	if w.statusCode == 0 {
		w.statusCode = http.StatusOK
	}
	return w.Writer.Write(b)
}

func (w *bodyDumpResponseWriter) Flush() {
	w.ResponseWriter.(http.Flusher).Flush()
}

func (w *bodyDumpResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return w.ResponseWriter.(http.Hijacker).Hijack()
}

func sortURLParams(URL *url.URL) {
	params := URL.Query()
	for _, param := range params {
		sort.Slice(param, func(i, j int) bool {
			return param[i] < param[j]
		})
	}
	URL.RawQuery = params.Encode()
}

func generateKey(URL string) string {
	hash := fnv.New64a()
	hash.Write([]byte(URL))

	return strconv.FormatUint(hash.Sum64(), 36)
}

// CacheHttp serves repeated GET requests with the same url from cache for ttl
func (h *HttpCache) CacheHttp(ttl time.Duration) echo.MiddlewareFunc {
	localTTL := localCacheTTL
	if ttl < localTTL {
		localTTL = ttl
	}

	local := cache.New(cache.ServiceConfig{
		TTL:    localTTL,
		Prefix: keys.PfxHttpCache,
		Cache:  h.local,
	})
	remote := cache.New(cache.ServiceConfig{
		TTL:    ttl,
		Prefix: keys.PfxHttpCache,
		Cache:  h.remote,
	})
	cacheService := cache.NewLayered(local, remote)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			ctx := c.Get("ctx").(ctx.Ctx)

			sortURLParams(c.Request().URL)
			key := generateKey(c.Request().URL.String())

			response := Response{}
			err := cacheService.Get(ctx, key, &response)
			if err == nil {
				// cache hit
				for k, v := range response.Header {
					c.Response().Header().Set(k, strings.Join(v, ","))
				}
				c.Response().WriteHeader(http.StatusOK)
				_, err := c.Response().Write(response.Value)
				return err
			} else if err != cache.ErrNotFound {
				ctx.WithFields(log.Fields{
					"err": err,
				}).Error("failed to cacheService.Get")
			}

			// cache miss
			resBody := new(bytes.Buffer)
			mw := io.MultiWriter(c.Response().Writer, resBody)
			writer := &bodyDumpResponseWriter{Writer: mw, ResponseWriter: c.Response().Writer}
			c.Response().Writer = writer
			if err := next(c); err != nil {
				c.Error(err)
			}

			if writer.statusCode != http.StatusOK {
				return nil
			}

			response = Response{
				Value:  resBody.Bytes(),
				Header: writer.Header(),
			}
			target := cacheService
			if len(response.Value) > localCacheMaxBody {
				target = remote
			}
			if err := target.Set(ctx, key, response); err != nil {
				ctx.WithFields(log.Fields{
					"err": err,
				}).Error("failed to cacheService.Set")
			}

			return nil
		}
	}
}
