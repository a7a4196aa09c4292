package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/delivery"
	"github.com/x-xyz/p2pmarket/domain/order"
	"github.com/x-xyz/p2pmarket/middleware"
	authMiddleware "github.com/x-xyz/p2pmarket/stores/auth/delivery/http/middleware"
)

type orderHandler struct {
	order order.Usecase
}

func New(e *echo.Echo, uc order.Usecase, am *authMiddleware.AuthMiddleware) {
	h := &orderHandler{order: uc}

	validId := middleware.IsValidObjectId("id")

	g := e.Group("/orders", am.Auth())
	g.POST("", h.create)
	g.GET("", h.listMine)
	g.GET("/:id", h.getOne, validId)
	g.POST("/:id/payment/refresh", h.refreshPayment, validId)
	g.POST("/:id/complete", h.complete, validId)
	g.POST("/:id/cancel", h.cancel, validId)
	g.POST("/:id/dispute", h.openDispute, validId)
	g.POST("/:id/dispute/resolve", h.resolveDispute, validId, am.IsAdmin())
	g.POST("/:id/rating", h.rate, validId)
}

// create
//
//	@Summary		Place an order
//	@Description	The listing is marked sold, payment is checked against the settlement transaction
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body		order.CreatePayload	true	"params"
//	@Success		201		{object}	object{data=order.Order}
//	@Failure		400
//	@Failure		403
//	@Failure		404
//	@Failure		409
//	@Router			/orders [post]
func (h *orderHandler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId, _ := authMiddleware.UserId(c)

	p := order.CreatePayload{}
	if err := c.Bind(&p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.order.Create(ctx, userId, p); err != nil {
		ctx.WithField("err", err).Error("order.Create failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, res)
	}
}

// listMine
//
//	@Summary	List orders where the caller is buyer or seller
//	@Tags		orders
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		status	query		string	false	"status"	Enums(pending, completed, cancelled, disputed)
//	@Success	200		{object}	object{data=[]order.Order}
//	@Failure	400
//	@Router		/orders [get]
func (h *orderHandler) listMine(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId, _ := authMiddleware.UserId(c)

	p := order.ListParams{}
	if err := c.Bind(&p); err != nil {
		ctx.WithField("err", err).Warn("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.order.ListMine(ctx, userId, p); err != nil {
		ctx.WithField("err", err).Error("order.ListMine failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// getOne
//
//	@Summary	Get an order
//	@Tags		orders
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		id	path		string	true	"order id"
//	@Success	200	{object}	object{data=order.Order}
//	@Failure	403
//	@Failure	404
//	@Router		/orders/{id} [get]
func (h *orderHandler) getOne(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId, _ := authMiddleware.UserId(c)
	id, _ := primitive.ObjectIDFromHex(c.Param("id"))

	if res, err := h.order.GetOne(ctx, userId, id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// refreshPayment
//
//	@Summary	Check the settlement transaction again
//	@Tags		orders
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		id	path		string	true	"order id"
//	@Success	200	{object}	object{data=order.Order}
//	@Router		/orders/{id}/payment/refresh [post]
func (h *orderHandler) refreshPayment(c echo.Context) error {
	return h.transition(c, "order.RefreshPayment", h.order.RefreshPayment)
}

// complete
//
//	@Summary	Confirm delivery
//	@Tags		orders
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		id	path		string	true	"order id"
//	@Success	200	{object}	object{data=order.Order}
//	@Failure	403
//	@Failure	409
//	@Router		/orders/{id}/complete [post]
func (h *orderHandler) complete(c echo.Context) error {
	return h.transition(c, "order.Complete", h.order.Complete)
}

// cancel
//
//	@Summary	Cancel a pending order
//	@Tags		orders
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		id	path		string	true	"order id"
//	@Success	200	{object}	object{data=order.Order}
//	@Failure	403
//	@Failure	409
//	@Router		/orders/{id}/cancel [post]
func (h *orderHandler) cancel(c echo.Context) error {
	return h.transition(c, "order.Cancel", h.order.Cancel)
}

func (h *orderHandler) transition(c echo.Context, name string, fn func(ctx.Ctx, primitive.ObjectID, primitive.ObjectID) (*order.Order, error)) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId, _ := authMiddleware.UserId(c)
	id, _ := primitive.ObjectIDFromHex(c.Param("id"))

	if res, err := fn(ctx, userId, id); err != nil {
		ctx.WithField("err", err).Error(name + " failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// openDispute
//
//	@Summary	Open a dispute
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		id		path		string					true	"order id"
//	@Param		params	body		order.DisputePayload	true	"params"
//	@Success	200		{object}	object{data=order.Order}
//	@Failure	400
//	@Failure	409
//	@Router		/orders/{id}/dispute [post]
func (h *orderHandler) openDispute(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId, _ := authMiddleware.UserId(c)
	id, _ := primitive.ObjectIDFromHex(c.Param("id"))

	p := order.DisputePayload{}
	if err := c.Bind(&p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.order.OpenDispute(ctx, userId, id, p); err != nil {
		ctx.WithField("err", err).Error("order.OpenDispute failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// resolveDispute
//
//	@Summary		Resolve a dispute
//	@Description	resolved completes the order, closed cancels it and puts the listing back on sale
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id		path		string					true	"order id"
//	@Param			params	body		order.ResolvePayload	true	"params"
//	@Success		200		{object}	object{data=order.Order}
//	@Failure		400
//	@Failure		403
//	@Failure		409
//	@Router			/orders/{id}/dispute/resolve [post]
func (h *orderHandler) resolveDispute(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId, _ := authMiddleware.UserId(c)
	id, _ := primitive.ObjectIDFromHex(c.Param("id"))

	p := order.ResolvePayload{}
	if err := c.Bind(&p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.order.ResolveDispute(ctx, userId, id, p); err != nil {
		ctx.WithField("err", err).Error("order.ResolveDispute failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// rate
//
//	@Summary	Rate a completed order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		id		path		string				true	"order id"
//	@Param		params	body		order.RatingPayload	true	"params"
//	@Success	200		{object}	object{data=order.Order}
//	@Failure	400
//	@Failure	403
//	@Failure	409
//	@Router		/orders/{id}/rating [post]
func (h *orderHandler) rate(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId, _ := authMiddleware.UserId(c)
	id, _ := primitive.ObjectIDFromHex(c.Param("id"))

	p := order.RatingPayload{}
	if err := c.Bind(&p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.order.Rate(ctx, userId, id, p); err != nil {
		ctx.WithField("err", err).Error("order.Rate failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
