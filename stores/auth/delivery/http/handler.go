package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/delivery"
	"github.com/x-xyz/p2pmarket/domain/user"
	"github.com/x-xyz/p2pmarket/stores/auth/delivery/http/middleware"
)

type authHandler struct {
	user user.Usecase
}

func New(e *echo.Echo, user user.Usecase, authMiddleware *middleware.AuthMiddleware) {
	handler := &authHandler{
		user: user,
	}
	g := e.Group("/auth")
	g.POST("/register", handler.register)
	g.POST("/login", handler.login)
	g.GET("/profile", handler.getProfile, authMiddleware.Auth())
	g.PUT("/profile", handler.updateProfile, authMiddleware.Auth())
}

// register
//
//	@Summary		Register
//	@Description	Create an account and return its access token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			params	body		user.RegisterPayload	true	"params"
//	@Success		201		{object}	object{data=user.AuthResult}
//	@Failure		400
//	@Failure		409
//	@Failure		500
//	@Router			/auth/register [post]
func (h *authHandler) register(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := user.RegisterPayload{}
	if err := c.Bind(&p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.user.Register(ctx, p); err != nil {
		ctx.WithField("err", err).Error("user.Register failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, res)
	}
}

// login
//
//	@Summary		Login
//	@Description	Exchange email and password for an access token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			params	body		user.LoginPayload	true	"params"
//	@Success		200		{object}	object{data=user.AuthResult}
//	@Failure		400
//	@Failure		401
//	@Failure		500
//	@Router			/auth/login [post]
func (h *authHandler) login(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := user.LoginPayload{}
	if err := c.Bind(&p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.user.Login(ctx, p); err != nil {
		ctx.WithField("err", err).Warn("user.Login failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// getProfile
//
//	@Summary		Get my profile
//	@Tags			auth
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Success		200	{object}	object{data=user.Profile}
//	@Failure		401
//	@Failure		404
//	@Router			/auth/profile [get]
func (h *authHandler) getProfile(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId, _ := middleware.UserId(c)

	if res, err := h.user.GetProfile(ctx, userId); err != nil {
		ctx.WithField("err", err).Error("user.GetProfile failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// updateProfile
//
//	@Summary		Update my profile
//	@Description	Only the sent fields change
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body		user.UpdatePayload	true	"params"
//	@Success		200		{object}	object{data=user.Profile}
//	@Failure		400
//	@Failure		401
//	@Failure		409
//	@Router			/auth/profile [put]
func (h *authHandler) updateProfile(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId, _ := middleware.UserId(c)

	p := user.UpdatePayload{}
	if err := c.Bind(&p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.user.UpdateProfile(ctx, userId, p); err != nil {
		ctx.WithField("err", err).Error("user.UpdateProfile failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
