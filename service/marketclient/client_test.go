package marketclient

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/file"
	"github.com/x-xyz/p2pmarket/domain/listing"
	"github.com/x-xyz/p2pmarket/domain/order"
	"github.com/x-xyz/p2pmarket/domain/user"
)

type clientSuite struct {
	suite.Suite
	ctx     ctx.Ctx
	mux     *http.ServeMux
	server  *httptest.Server
	im      API
	lastReq *http.Request
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(clientSuite))
}

func (s *clientSuite) SetupTest() {
	s.ctx = ctx.Background()
	s.mux = http.NewServeMux()
	s.server = httptest.NewServer(s.mux)
	s.im = New(s.server.URL+"/", "tkn", 0)
}

func (s *clientSuite) TearDownTest() {
	s.server.Close()
}

func (s *clientSuite) reply(path string, status int, body string) {
	s.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		s.lastReq = r
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (s *clientSuite) TestLogin() {
	var got user.LoginPayload
	s.mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal("application/json", r.Header.Get("Content-Type"))
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"status":"success","data":{"token":"jwt","user":{"username":"alice"}}}`)
	})

	res, err := s.im.Login(s.ctx, user.LoginPayload{Email: "a@b.co", Password: "secret"})
	s.Require().NoError(err)
	s.Equal("jwt", res.Token)
	s.Equal("alice", res.User.Username)
	s.Equal(user.LoginPayload{Email: "a@b.co", Password: "secret"}, got)
}

func (s *clientSuite) TestListListings() {
	s.reply("/listings", http.StatusOK, `{"status":"success","data":{"listings":[{"title":"Lamp","price":"1.5"}],"page":2,"pages":3,"total":21}}`)

	res, err := s.im.ListListings(s.ctx, listing.ListParams{Keyword: "lamp", Page: 2, Sort: "price-asc"})
	s.Require().NoError(err)
	s.Equal(2, res.Page)
	s.Equal(21, res.Total)
	s.Require().Len(res.Items, 1)
	s.Equal("Lamp", res.Items[0].Title)

	q := s.lastReq.URL.Query()
	s.Equal("lamp", q.Get("keyword"))
	s.Equal("2", q.Get("page"))
	s.Equal("price-asc", q.Get("sort"))
	s.False(q.Has("pageSize"))
	s.Equal("Bearer tkn", s.lastReq.Header.Get("Authorization"))
	s.NotEmpty(s.lastReq.Header.Get("X-Request-Id"))
}

func (s *clientSuite) TestSearchListings() {
	s.reply("/listings/search", http.StatusOK, `{"status":"success","data":[{"title":"a"},{"title":"b"}]}`)

	res, err := s.im.SearchListings(s.ctx, listing.SearchParams{Q: "desk", MinPrice: "1", Category: "Home"})
	s.Require().NoError(err)
	s.Len(res, 2)
	q := s.lastReq.URL.Query()
	s.Equal("desk", q.Get("q"))
	s.Equal("1", q.Get("minPrice"))
	s.Equal("Home", q.Get("category"))
	s.False(q.Has("maxPrice"))
}

func (s *clientSuite) TestGetListingNotFound() {
	s.reply("/listings/abc", http.StatusNotFound, `{"status":"fail","data":"your requested item is not found"}`)

	_, err := s.im.GetListing(s.ctx, "abc")
	s.ErrorIs(err, domain.ErrNotFound)
	s.Contains(err.Error(), "your requested item is not found")
}

func (s *clientSuite) TestCreateListingValidation() {
	s.reply("/listings", http.StatusBadRequest, `{"status":"fail","data":{"fields":[{"field":"title","reason":"is required"}]}}`)

	_, err := s.im.CreateListing(s.ctx, listing.CreatePayload{})
	s.ErrorIs(err, domain.ErrBadParamInput)
	verr := &domain.ValidationError{}
	s.Require().ErrorAs(err, &verr)
	s.Equal([]domain.FieldError{{Field: "title", Reason: "is required"}}, verr.Fields)
}

func (s *clientSuite) TestCreateOrderConflict() {
	s.reply("/orders", http.StatusConflict, `{"status":"fail","data":"listing is sold: your item already exists"}`)

	_, err := s.im.CreateOrder(s.ctx, order.CreatePayload{ListingId: "x"})
	s.ErrorIs(err, domain.ErrConflict)
}

func (s *clientSuite) TestUnprocessable() {
	s.reply("/orders", http.StatusUnprocessableEntity, `{"message":"Syntax error"}`)

	_, err := s.im.CreateOrder(s.ctx, order.CreatePayload{})
	s.ErrorIs(err, domain.ErrBadParamInput)
}

func (s *clientSuite) TestUploadImages() {
	s.mux.HandleFunc("/files/images", func(w http.ResponseWriter, r *http.Request) {
		s.Require().NoError(r.ParseMultipartForm(1 << 20))
		fhs := r.MultipartForm.File["images"]
		s.Require().Len(fhs, 2)
		s.Equal("a.png", fhs[0].Filename)
		s.Equal("b.gif", fhs[1].Filename)
		_, _ = io.WriteString(w, `{"status":"success","data":["ipfs://a","ipfs://b"]}`)
	})

	res, err := s.im.UploadImages(s.ctx, []file.Upload{{Name: "a.png", Data: []byte("a")}, {Name: "b.gif", Data: []byte("b")}})
	s.Require().NoError(err)
	s.Equal([]string{"ipfs://a", "ipfs://b"}, res)
}

func (s *clientSuite) TestServerUnreachable() {
	s.server.Close()

	_, err := s.im.GetListing(s.ctx, "abc")
	s.ErrorIs(err, domain.ErrUpstream)
}
