package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/user"
	"github.com/x-xyz/p2pmarket/domain/user/mocks"
)

func TestGetPublicProfile(t *testing.T) {
	uc := &mocks.Usecase{}
	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(e, uc)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	id := primitive.NewObjectID()
	uc.On("GetPublicProfile", mock.Anything, id).Return(&user.User{Id: id, Username: "alice"}, nil).Once()
	rec := get("/users/" + id.Hex())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
	assert.NotContains(t, rec.Body.String(), `"email"`)

	missing := primitive.NewObjectID()
	uc.On("GetPublicProfile", mock.Anything, missing).Return(nil, domain.ErrNotFound).Once()
	assert.Equal(t, http.StatusNotFound, get("/users/"+missing.Hex()).Code)

	assert.Equal(t, http.StatusBadRequest, get("/users/nope").Code)
	uc.AssertExpectations(t)
}
