package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/delivery"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/user"
)

const userIdKey = "userId"

type AuthMiddleware struct {
	auth domain.AuthUsecase
	user user.Usecase
}

func New(auth domain.AuthUsecase, user user.Usecase) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
		user: user,
	}
}

func (m *AuthMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator:    m.validateAuthToken,
		ErrorHandler: unauthorized,
	})
}

// OptionalAuth sets the user when a token is sent and lets anonymous requests through
func (m *AuthMiddleware) OptionalAuth() echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Skipper: func(c echo.Context) bool {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			return len(auth) == 0
		},
		Validator:    m.validateAuthToken,
		ErrorHandler: unauthorized,
	})
}

// IsAdmin must run after Auth
func (m *AuthMiddleware) IsAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Get("ctx").(ctx.Ctx)

			userId, ok := UserId(c)
			if !ok {
				return delivery.MakeJsonResp(c, http.StatusUnauthorized, domain.ErrUnauthorized)
			}

			if res, err := m.user.IsAdmin(ctx, userId); err != nil {
				ctx.WithField("err", err).Error("user.IsAdmin failed")
				return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
			} else if !res {
				return delivery.MakeJsonResp(c, http.StatusForbidden, "require admin privilege")
			}
			return next(c)
		}
	}
}

// UserId returns the user set by Auth or OptionalAuth
func UserId(c echo.Context) (primitive.ObjectID, bool) {
	id, ok := c.Get(userIdKey).(primitive.ObjectID)
	return id, ok
}

func (m *AuthMiddleware) validateAuthToken(key string, c echo.Context) (bool, error) {
	cont := c.Get("ctx").(ctx.Ctx)
	if id, err := m.auth.ParseToken(cont, key); err != nil {
		cont.WithField("err", err).Info("auth.ParseToken failed")
		return false, err
	} else {
		c.Set(userIdKey, id)
		c.Set("ctx", ctx.WithValue(cont, userIdKey, id.Hex()))
		return true, nil
	}
}

func unauthorized(err error, c echo.Context) error {
	return delivery.MakeJsonResp(c, http.StatusUnauthorized, domain.ErrUnauthorized)
}
