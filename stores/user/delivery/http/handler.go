package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/delivery"
	"github.com/x-xyz/p2pmarket/domain/user"
	"github.com/x-xyz/p2pmarket/middleware"
)

type userHandler struct {
	user user.Usecase
}

func New(e *echo.Echo, user user.Usecase) {
	h := &userHandler{user: user}
	e.GET("/users/:id", h.getPublicProfile, middleware.IsValidObjectId("id"))
}

// getPublicProfile
//
//	@Summary		Get a user
//	@Description	Public profile of a seller, without email
//	@Tags			users
//	@Produce		json
//	@Param			id	path		string	true	"user id"
//	@Success		200	{object}	object{data=user.User}
//	@Failure		400
//	@Failure		404
//	@Router			/users/{id} [get]
func (h *userHandler) getPublicProfile(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id, _ := primitive.ObjectIDFromHex(c.Param("id"))

	if res, err := h.user.GetPublicProfile(ctx, id); err != nil {
		ctx.WithField("err", err).Error("user.GetPublicProfile failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
