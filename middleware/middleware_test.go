package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/p2pmarket/base/ctx"
)

func TestAddContext(t *testing.T) {
	req := require.New(t)
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Response().Header().Set(echo.HeaderXRequestID, "rid")

	var got ctx.Ctx
	err := InitMiddleware().AddContext()(func(c echo.Context) error {
		got = c.Get("ctx").(ctx.Ctx)
		return nil
	})(c)
	req.NoError(err)
	req.Equal("rid", got.Value("requestID"))
}

func TestIsValidObjectId(t *testing.T) {
	req := require.New(t)
	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("nope")
	req.NoError(IsValidObjectId("id")(ok)(c))
	req.Equal(http.StatusBadRequest, rec.Code)
	req.Contains(rec.Body.String(), `"field":"id"`)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues(primitive.NewObjectID().Hex())
	req.NoError(IsValidObjectId("id")(ok)(c))
	req.Equal(http.StatusNoContent, rec.Code)
}

func TestResponseLogger(t *testing.T) {
	req := require.New(t)
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Set("ctx", ctx.Background())

	err := InitMiddleware().ResponseLogger()(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "teapot")
	})(c)
	req.NoError(err)
	req.Equal(http.StatusTeapot, rec.Code)
}
