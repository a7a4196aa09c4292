package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/listing"
	listingMocks "github.com/x-xyz/p2pmarket/domain/listing/mocks"
	"github.com/x-xyz/p2pmarket/domain/mocks"
	userMocks "github.com/x-xyz/p2pmarket/domain/user/mocks"
	authMiddleware "github.com/x-xyz/p2pmarket/stores/auth/delivery/http/middleware"
)

type listingHandlerSuite struct {
	suite.Suite

	e      *echo.Echo
	uc     *listingMocks.Usecase
	auth   *mocks.AuthUsecase
	userId primitive.ObjectID
}

func TestListingHandlerSuite(t *testing.T) {
	suite.Run(t, new(listingHandlerSuite))
}

func (s *listingHandlerSuite) SetupTest() {
	s.uc = &listingMocks.Usecase{}
	s.auth = &mocks.AuthUsecase{}
	s.userId = primitive.NewObjectID()
	s.auth.On("ParseToken", mock.Anything, "tkn").Return(s.userId, nil).Maybe()

	s.e = echo.New()
	s.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(s.e, s.uc, authMiddleware.New(s.auth, &userMocks.Usecase{}), nil, 0)
}

func (s *listingHandlerSuite) TearDownTest() {
	s.uc.AssertExpectations(s.T())
}

func (s *listingHandlerSuite) do(method, path string, authed bool, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authed {
		req.Header.Set(echo.HeaderAuthorization, "Bearer tkn")
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *listingHandlerSuite) TestList() {
	s.uc.On("List", mock.Anything, listing.ListParams{Keyword: "lamp", Page: 2, PageSize: 5, Sort: "price-asc"}).
		Return(&listing.Page{Items: []*listing.Listing{}, Page: 2, TotalPages: 1}, nil).Once()

	rec := s.do(http.MethodGet, "/listings?keyword=lamp&page=2&pageSize=5&sort=price-asc", false, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"pages":1`)

	rec = s.do(http.MethodGet, "/listings?page=abc", false, "")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *listingHandlerSuite) TestSearch() {
	s.uc.On("Search", mock.Anything, listing.SearchParams{Q: "lamp", MinPrice: "x"}).
		Return(nil, domain.NewValidationError().Add("minPrice", "must be a non-negative decimal number")).Once()

	rec := s.do(http.MethodGet, "/listings/search?q=lamp&minPrice=x", false, "")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), `"field":"minPrice"`)
}

func (s *listingHandlerSuite) TestGetByCategory() {
	s.uc.On("GetByCategory", mock.Anything, listing.CategoryHome).Return([]*listing.Listing{{Title: "Desk Lamp"}}, nil).Once()

	rec := s.do(http.MethodGet, "/listings/category/Home", false, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Desk Lamp")

	rec = s.do(http.MethodGet, "/listings/category/Toys", false, "")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *listingHandlerSuite) TestGetOne() {
	id := primitive.NewObjectID()
	s.uc.On("GetOne", mock.Anything, id).Return(&listing.Listing{Id: id, Views: 1}, nil).Once()
	rec := s.do(http.MethodGet, "/listings/"+id.Hex(), false, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"views":1`)

	missing := primitive.NewObjectID()
	s.uc.On("GetOne", mock.Anything, missing).Return(nil, domain.ErrNotFound).Once()
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/listings/"+missing.Hex(), false, "").Code)

	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/listings/xyz", false, "").Code)
}

func (s *listingHandlerSuite) TestCreate() {
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/listings", false, `{"title":"x"}`).Code)

	s.uc.On("Create", mock.Anything, s.userId, mock.MatchedBy(func(p listing.CreatePayload) bool {
		return p.Title == "Desk Lamp" && p.Price == "5.5"
	})).Return(&listing.Listing{Title: "Desk Lamp"}, nil).Once()
	rec := s.do(http.MethodPost, "/listings", true, `{"title":"Desk Lamp","price":"5.5"}`)
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *listingHandlerSuite) TestMalformedBody() {
	rec := s.do(http.MethodPost, "/listings", true, `{"title":`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), `"status":"fail"`)

	rec = s.do(http.MethodPut, "/listings/"+primitive.NewObjectID().Hex(), true, `{"tags":"not a list"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), `"status":"fail"`)
	s.uc.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
	s.uc.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *listingHandlerSuite) TestUpdateForbidden() {
	id := primitive.NewObjectID()
	s.uc.On("Update", mock.Anything, s.userId, id, mock.Anything).Return(nil, domain.ErrForbidden).Once()

	rec := s.do(http.MethodPut, "/listings/"+id.Hex(), true, `{"title":"mine"}`)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *listingHandlerSuite) TestDeleteAndLike() {
	id := primitive.NewObjectID()
	s.uc.On("Delete", mock.Anything, s.userId, id).Return(nil).Once()
	s.Equal(http.StatusOK, s.do(http.MethodDelete, "/listings/"+id.Hex(), true, "").Code)

	s.uc.On("ToggleLike", mock.Anything, s.userId, id).Return(&listing.LikeResult{Likes: 3, IsLiked: true}, nil).Once()
	rec := s.do(http.MethodPost, "/listings/"+id.Hex()+"/like", true, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"isLiked":true`)
}
