package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/delivery"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/listing"
	"github.com/x-xyz/p2pmarket/middleware"
	authMiddleware "github.com/x-xyz/p2pmarket/stores/auth/delivery/http/middleware"
)

type listingHandler struct {
	listing listing.Usecase
}

// New registers the listing routes. httpCache may be nil, category pages are
// then served uncached.
func New(e *echo.Echo, uc listing.Usecase, am *authMiddleware.AuthMiddleware, httpCache *middleware.HttpCache, cacheTTL time.Duration) {
	h := &listingHandler{listing: uc}

	byCategory := []echo.MiddlewareFunc{}
	if httpCache != nil {
		byCategory = append(byCategory, httpCache.CacheHttp(cacheTTL))
	}

	g := e.Group("/listings")
	g.GET("", h.list)
	g.GET("/search", h.search)
	g.GET("/category/:category", h.getByCategory, byCategory...)
	g.GET("/:id", h.getOne, middleware.IsValidObjectId("id"))
	g.POST("", h.create, am.Auth())
	g.PUT("/:id", h.update, am.Auth(), middleware.IsValidObjectId("id"))
	g.DELETE("/:id", h.delete, am.Auth(), middleware.IsValidObjectId("id"))
	g.POST("/:id/like", h.toggleLike, am.Auth(), middleware.IsValidObjectId("id"))
}

// list
//
//	@Summary		List listings
//	@Description	Newest first unless sort says otherwise. Pages past the end are empty.
//	@Tags			listings
//	@Produce		json
//	@Param			keyword		query		string	false	"substring of title or description"
//	@Param			page		query		int		false	"page, starts at 1"
//	@Param			pageSize	query		int		false	"page size, 1 to 100"
//	@Param			sort		query		string	false	"sort key"	Enums(price-asc, price-desc, views-desc, likes-desc, date-asc, date-desc)
//	@Success		200			{object}	object{data=listing.Page}
//	@Failure		400
//	@Router			/listings [get]
func (h *listingHandler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := listing.ListParams{}
	if err := c.Bind(&p); err != nil {
		ctx.WithField("err", err).Warn("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.listing.List(ctx, p); err != nil {
		ctx.WithField("err", err).Error("listing.List failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// search
//
//	@Summary		Search listings
//	@Description	Full text search with exact category and condition filters and an inclusive price range
//	@Tags			listings
//	@Produce		json
//	@Param			q			query		string	false	"text query"
//	@Param			category	query		string	false	"category"
//	@Param			minPrice	query		string	false	"inclusive lower price bound"
//	@Param			maxPrice	query		string	false	"inclusive upper price bound"
//	@Param			condition	query		string	false	"condition"
//	@Param			sort		query		string	false	"sort key"
//	@Success		200			{object}	object{data=[]listing.Listing}
//	@Failure		400
//	@Router			/listings/search [get]
func (h *listingHandler) search(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := listing.SearchParams{}
	if err := c.Bind(&p); err != nil {
		ctx.WithField("err", err).Warn("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.listing.Search(ctx, p); err != nil {
		ctx.WithField("err", err).Error("listing.Search failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// getByCategory
//
//	@Summary		Listings of a category
//	@Tags			listings
//	@Produce		json
//	@Param			category	path		string	true	"category"	Enums(Electronics, Fashion, Home, Sports, Art, Books, Other)
//	@Success		200			{object}	object{data=[]listing.Listing}
//	@Failure		400
//	@Router			/listings/category/{category} [get]
func (h *listingHandler) getByCategory(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	category := listing.Category(c.Param("category"))
	if !category.IsValid() {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.NewValidationError().Add("category", "is not a known category"))
	}

	if res, err := h.listing.GetByCategory(ctx, category); err != nil {
		ctx.WithField("err", err).Error("listing.GetByCategory failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// getOne
//
//	@Summary		Get a listing
//	@Description	Counts one view
//	@Tags			listings
//	@Produce		json
//	@Param			id	path		string	true	"listing id"
//	@Success		200	{object}	object{data=listing.Listing}
//	@Failure		400
//	@Failure		404
//	@Router			/listings/{id} [get]
func (h *listingHandler) getOne(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id, _ := primitive.ObjectIDFromHex(c.Param("id"))

	if res, err := h.listing.GetOne(ctx, id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// create
//
//	@Summary		Create a listing
//	@Tags			listings
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body		listing.CreatePayload	true	"params"
//	@Success		201		{object}	object{data=listing.Listing}
//	@Failure		400
//	@Failure		401
//	@Router			/listings [post]
func (h *listingHandler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId, _ := authMiddleware.UserId(c)

	p := listing.CreatePayload{}
	if err := c.Bind(&p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.listing.Create(ctx, userId, p); err != nil {
		ctx.WithField("err", err).Error("listing.Create failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, res)
	}
}

// update
//
//	@Summary		Update a listing
//	@Description	Only the seller may update, only the sent fields change
//	@Tags			listings
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id		path		string					true	"listing id"
//	@Param			params	body		listing.UpdatePayload	true	"params"
//	@Success		200		{object}	object{data=listing.Listing}
//	@Failure		400
//	@Failure		401
//	@Failure		403
//	@Failure		404
//	@Router			/listings/{id} [put]
func (h *listingHandler) update(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId, _ := authMiddleware.UserId(c)
	id, _ := primitive.ObjectIDFromHex(c.Param("id"))

	p := listing.UpdatePayload{}
	if err := c.Bind(&p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.listing.Update(ctx, userId, id, p); err != nil {
		ctx.WithField("err", err).Error("listing.Update failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// delete
//
//	@Summary		Delete a listing
//	@Tags			listings
//	@Security		ApiKeyAuth
//	@Param			id	path	string	true	"listing id"
//	@Success		200
//	@Failure		401
//	@Failure		403
//	@Failure		404
//	@Router			/listings/{id} [delete]
func (h *listingHandler) delete(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId, _ := authMiddleware.UserId(c)
	id, _ := primitive.ObjectIDFromHex(c.Param("id"))

	if err := h.listing.Delete(ctx, userId, id); err != nil {
		ctx.WithField("err", err).Error("listing.Delete failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "listing removed")
}

// toggleLike
//
//	@Summary		Like or unlike a listing
//	@Tags			listings
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id	path		string	true	"listing id"
//	@Success		200	{object}	object{data=listing.LikeResult}
//	@Failure		401
//	@Failure		404
//	@Router			/listings/{id}/like [post]
func (h *listingHandler) toggleLike(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId, _ := authMiddleware.UserId(c)
	id, _ := primitive.ObjectIDFromHex(c.Param("id"))

	if res, err := h.listing.ToggleLike(ctx, userId, id); err != nil {
		ctx.WithField("err", err).Error("listing.ToggleLike failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
