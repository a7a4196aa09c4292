package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/delivery"
	"github.com/x-xyz/p2pmarket/base/log"
	"github.com/x-xyz/p2pmarket/base/metrics"
	"github.com/x-xyz/p2pmarket/domain"
)

const requestIdKey = "requestID"

// GoMiddleware holds the request scoped middlewares shared by every route
type GoMiddleware struct{}

func InitMiddleware() *GoMiddleware {
	return &GoMiddleware{}
}

// AddContext stores a ctx.Ctx under "ctx" carrying the request id as value and log field,
// it must run after echo's RequestID middleware
func (m *GoMiddleware) AddContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			cont := ctx.WithValue(ctx.Background(), requestIdKey, rid)
			c.Set("ctx", cont)
			return next(c)
		}
	}
}

// ResponseLogger logs one line per request and times it by route
func (m *GoMiddleware) ResponseLogger() echo.MiddlewareFunc {
	met := metrics.New("http")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer met.BumpTime("request.time", "method", c.Request().Method, "path", c.Path()).End()

			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			fields := log.Fields{
				"ms":         time.Since(start).Seconds() * 1000,
				"httpStatus": res.Status,
				"host":       req.Host,
				"remoteIP":   c.RealIP(),
				"uri":        req.URL.Path,
				"httpMethod": req.Method,
				"size":       res.Size,
				"userAgent":  req.UserAgent(),
				"referer":    req.Header.Get("Referer"),
			}

			if res.Status >= 400 {
				fields["nextErr"] = err
			}
			if userId, ok := c.Get("userId").(primitive.ObjectID); ok {
				fields["userId"] = userId.Hex()
			}

			logger := log.Log()
			if cont, ok := c.Get("ctx").(ctx.Ctx); ok {
				logger = cont.Logger
			}
			logger.WithFields(fields).Info("response")
			return nil
		}
	}
}

// IsValidObjectId rejects requests whose path param is not a database id
func IsValidObjectId(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			if _, err := primitive.ObjectIDFromHex(c.Param(param)); err != nil {
				verr := domain.NewValidationError().Add(param, "must be a 24 character hex id")
				return delivery.MakeJsonResp(c, http.StatusBadRequest, verr)
			}
			return next(c)
		}
	}
}
