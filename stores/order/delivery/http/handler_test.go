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
	"github.com/x-xyz/p2pmarket/domain/mocks"
	"github.com/x-xyz/p2pmarket/domain/order"
	orderMocks "github.com/x-xyz/p2pmarket/domain/order/mocks"
	userMocks "github.com/x-xyz/p2pmarket/domain/user/mocks"
	authMiddleware "github.com/x-xyz/p2pmarket/stores/auth/delivery/http/middleware"
)

type orderHandlerSuite struct {
	suite.Suite

	e      *echo.Echo
	uc     *orderMocks.Usecase
	user   *userMocks.Usecase
	userId primitive.ObjectID
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(orderHandlerSuite))
}

func (s *orderHandlerSuite) SetupTest() {
	s.uc = &orderMocks.Usecase{}
	s.user = &userMocks.Usecase{}
	s.userId = primitive.NewObjectID()
	auth := &mocks.AuthUsecase{}
	auth.On("ParseToken", mock.Anything, "tkn").Return(s.userId, nil).Maybe()

	s.e = echo.New()
	s.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(s.e, s.uc, authMiddleware.New(auth, s.user))
}

func (s *orderHandlerSuite) TearDownTest() {
	s.uc.AssertExpectations(s.T())
	s.user.AssertExpectations(s.T())
}

func (s *orderHandlerSuite) do(method, path string, authed bool, body string) *httptest.ResponseRecorder {
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

func (s *orderHandlerSuite) TestRequiresToken() {
	rec := s.do(http.MethodGet, "/orders", false, "")
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *orderHandlerSuite) TestCreate() {
	lid := primitive.NewObjectID()
	s.uc.On("Create", mock.Anything, s.userId, mock.MatchedBy(func(p order.CreatePayload) bool {
		return p.ListingId == lid.Hex() && p.ShippingAddress.City == "NYC"
	})).Return(&order.Order{Listing: lid, Status: order.StatusPending}, nil).Once()

	body := `{"listing":"` + lid.Hex() + `","transactionHash":"0x1","shippingAddress":{"city":"NYC"}}`
	rec := s.do(http.MethodPost, "/orders", true, body)
	s.Equal(http.StatusCreated, rec.Code)
	s.Contains(rec.Body.String(), `"status":"pending"`)

	s.uc.On("Create", mock.Anything, s.userId, mock.Anything).Return(nil, domain.ErrConflict).Once()
	rec = s.do(http.MethodPost, "/orders", true, body)
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *orderHandlerSuite) TestListMine() {
	s.uc.On("ListMine", mock.Anything, s.userId, order.ListParams{Status: "pending"}).
		Return([]*order.Order{{Status: order.StatusPending}}, nil).Once()

	rec := s.do(http.MethodGet, "/orders?status=pending", true, "")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *orderHandlerSuite) TestGetOne() {
	id := primitive.NewObjectID()
	s.uc.On("GetOne", mock.Anything, s.userId, id).Return(nil, domain.ErrForbidden).Once()

	rec := s.do(http.MethodGet, "/orders/"+id.Hex(), true, "")
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodGet, "/orders/nope", true, "")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *orderHandlerSuite) TestTransitions() {
	id := primitive.NewObjectID()
	s.uc.On("Complete", mock.Anything, s.userId, id).Return(nil, order.ErrInvalidTransition).Once()
	s.uc.On("Cancel", mock.Anything, s.userId, id).Return(&order.Order{Status: order.StatusCancelled}, nil).Once()
	s.uc.On("RefreshPayment", mock.Anything, s.userId, id).Return(&order.Order{PaymentStatus: order.PaymentCompleted}, nil).Once()

	rec := s.do(http.MethodPost, "/orders/"+id.Hex()+"/complete", true, "")
	s.Equal(http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/orders/"+id.Hex()+"/cancel", true, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"status":"cancelled"`)

	rec = s.do(http.MethodPost, "/orders/"+id.Hex()+"/payment/refresh", true, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"paymentStatus":"completed"`)
}

func (s *orderHandlerSuite) TestDispute() {
	id := primitive.NewObjectID()
	s.uc.On("OpenDispute", mock.Anything, s.userId, id, order.DisputePayload{Reason: "broken"}).
		Return(&order.Order{Status: order.StatusDisputed, DisputeStatus: order.DisputeOpen}, nil).Once()

	rec := s.do(http.MethodPost, "/orders/"+id.Hex()+"/dispute", true, `{"reason":"broken"}`)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"disputeStatus":"open"`)
}

func (s *orderHandlerSuite) TestResolveDisputeRequiresAdmin() {
	id := primitive.NewObjectID()
	s.user.On("IsAdmin", mock.Anything, s.userId).Return(false, nil).Once()

	rec := s.do(http.MethodPost, "/orders/"+id.Hex()+"/dispute/resolve", true, `{"resolution":"refund","status":"closed"}`)
	s.Equal(http.StatusForbidden, rec.Code)

	s.user.On("IsAdmin", mock.Anything, s.userId).Return(true, nil).Once()
	s.uc.On("ResolveDispute", mock.Anything, s.userId, id, order.ResolvePayload{Resolution: "refund", Status: order.DisputeClosed}).
		Return(&order.Order{Status: order.StatusCancelled}, nil).Once()

	rec = s.do(http.MethodPost, "/orders/"+id.Hex()+"/dispute/resolve", true, `{"resolution":"refund","status":"closed"}`)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *orderHandlerSuite) TestRate() {
	id := primitive.NewObjectID()
	s.uc.On("Rate", mock.Anything, s.userId, id, order.RatingPayload{Rating: 5, Review: "great"}).
		Return(&order.Order{Rating: 5}, nil).Once()

	rec := s.do(http.MethodPost, "/orders/"+id.Hex()+"/rating", true, `{"rating":5,"review":"great"}`)
	s.Equal(http.StatusOK, rec.Code)
}
