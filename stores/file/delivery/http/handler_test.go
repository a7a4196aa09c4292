package http

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/file"
	fileMocks "github.com/x-xyz/p2pmarket/domain/file/mocks"
	"github.com/x-xyz/p2pmarket/domain/mocks"
	userMocks "github.com/x-xyz/p2pmarket/domain/user/mocks"
	authMiddleware "github.com/x-xyz/p2pmarket/stores/auth/delivery/http/middleware"
)

type fileHandlerSuite struct {
	suite.Suite

	e  *echo.Echo
	uc *fileMocks.Usecase
}

func TestFileHandlerSuite(t *testing.T) {
	suite.Run(t, new(fileHandlerSuite))
}

func (s *fileHandlerSuite) SetupTest() {
	s.uc = &fileMocks.Usecase{}
	auth := &mocks.AuthUsecase{}
	auth.On("ParseToken", mock.Anything, "tkn").Return(primitive.NewObjectID(), nil).Maybe()

	s.e = echo.New()
	s.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(s.e, s.uc, authMiddleware.New(auth, &userMocks.Usecase{}))
}

func (s *fileHandlerSuite) TearDownTest() {
	s.uc.AssertExpectations(s.T())
}

func (s *fileHandlerSuite) upload(authed bool, files map[string]string, order ...string) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, name := range order {
		part, err := w.CreateFormFile("images", name)
		s.Require().NoError(err)
		_, err = part.Write([]byte(files[name]))
		s.Require().NoError(err)
	}
	s.Require().NoError(w.Close())

	req := httptest.NewRequest(http.MethodPost, "/files/images", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	if authed {
		req.Header.Set(echo.HeaderAuthorization, "Bearer tkn")
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *fileHandlerSuite) TestUpload() {
	s.uc.On("UploadImages", mock.Anything, []file.Upload{
		{Name: "a.png", Data: []byte("aaa")},
		{Name: "b.gif", Data: []byte("bbb")},
	}).Return([]string{"ipfs://a", "ipfs://b"}, nil).Once()

	rec := s.upload(true, map[string]string{"a.png": "aaa", "b.gif": "bbb"}, "a.png", "b.gif")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"data":["ipfs://a","ipfs://b"]`)
}

func (s *fileHandlerSuite) TestUploadRejected() {
	s.uc.On("UploadImages", mock.Anything, mock.Anything).
		Return(nil, domain.NewValidationError().Add("images[0]", "only jpeg, png and gif are accepted")).Once()

	rec := s.upload(true, map[string]string{"a.txt": "x"}, "a.txt")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), `"field":"images[0]"`)
}

func (s *fileHandlerSuite) TestUploadRequiresToken() {
	rec := s.upload(false, map[string]string{"a.png": "aaa"}, "a.png")
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *fileHandlerSuite) TestNotMultipart() {
	req := httptest.NewRequest(http.MethodPost, "/files/images", bytes.NewBufferString("{}"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer tkn")
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	s.Equal(http.StatusBadRequest, rec.Code)
}
