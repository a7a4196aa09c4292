package marketclient

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/log"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/file"
	"github.com/x-xyz/p2pmarket/domain/listing"
	"github.com/x-xyz/p2pmarket/domain/order"
	"github.com/x-xyz/p2pmarket/domain/user"
)

const (
	defaultTimeout  = 30 * time.Second
	headerRequestId = "X-Request-Id"
)

type client struct {
	endpoint string
	token    string
	http     *http.Client
}

// New creates an api client. token may be empty for the public routes.
func New(endpoint, token string, timeout time.Duration) API {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &client{
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		http:     &http.Client{Timeout: timeout},
	}
}

// envelope mirrors the server's json response
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func (cl *client) Login(c ctx.Ctx, p user.LoginPayload) (*user.AuthResult, error) {
	res := &user.AuthResult{}
	if err := cl.doJson(c, http.MethodPost, "/auth/login", p, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (cl *client) ListListings(c ctx.Ctx, p listing.ListParams) (*listing.Page, error) {
	q := url.Values{}
	setIf(q, "keyword", p.Keyword)
	setIf(q, "sort", p.Sort)
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	res := &listing.Page{}
	if err := cl.doJson(c, http.MethodGet, withQuery("/listings", q), nil, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (cl *client) SearchListings(c ctx.Ctx, p listing.SearchParams) ([]*listing.Listing, error) {
	q := url.Values{}
	setIf(q, "q", p.Q)
	setIf(q, "category", p.Category)
	setIf(q, "minPrice", p.MinPrice)
	setIf(q, "maxPrice", p.MaxPrice)
	setIf(q, "condition", p.Condition)
	setIf(q, "sort", p.Sort)
	res := []*listing.Listing{}
	if err := cl.doJson(c, http.MethodGet, withQuery("/listings/search", q), nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (cl *client) GetListing(c ctx.Ctx, id string) (*listing.Listing, error) {
	res := &listing.Listing{}
	if err := cl.doJson(c, http.MethodGet, "/listings/"+url.PathEscape(id), nil, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (cl *client) UploadImages(c ctx.Ctx, uploads []file.Upload) ([]string, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	for _, u := range uploads {
		fw, err := w.CreateFormFile("images", u.Name)
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write(u.Data); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	res := []string{}
	if err := cl.do(c, http.MethodPost, "/files/images", &b, w.FormDataContentType(), &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (cl *client) CreateListing(c ctx.Ctx, p listing.CreatePayload) (*listing.Listing, error) {
	res := &listing.Listing{}
	if err := cl.doJson(c, http.MethodPost, "/listings", p, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (cl *client) CreateOrder(c ctx.Ctx, p order.CreatePayload) (*order.Order, error) {
	res := &order.Order{}
	if err := cl.doJson(c, http.MethodPost, "/orders", p, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (cl *client) doJson(c ctx.Ctx, method, path string, body, result interface{}) error {
	if body == nil {
		return cl.do(c, method, path, nil, "", result)
	}
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return cl.do(c, method, path, bytes.NewReader(data), "application/json", result)
}

func (cl *client) do(c ctx.Ctx, method, path string, body io.Reader, contentType string, result interface{}) error {
	req, err := http.NewRequestWithContext(c, method, cl.endpoint+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}
	requestId := uuid.NewString()
	req.Header.Set(headerRequestId, requestId)

	c = ctx.WithFields(c, log.Fields{"method": method, "path": path, "requestId": requestId})

	resp, err := cl.http.Do(req)
	if err != nil {
		c.WithField("err", err).Error("http.Do failed")
		return xerrors.Errorf("%s %s: %w", method, path, domain.ErrUpstream)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	env := envelope{}
	if err := json.Unmarshal(raw, &env); err != nil {
		c.WithFields(log.Fields{"status": resp.StatusCode, "body": string(raw)}).Warn("unexpected response body")
		if resp.StatusCode >= http.StatusBadRequest {
			return statusError(resp.StatusCode, string(raw))
		}
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeFailure(resp.StatusCode, env.Data)
	}
	if result == nil {
		return nil
	}
	return json.Unmarshal(env.Data, result)
}

// decodeFailure turns a fail response back into the domain error the server mapped it from
func decodeFailure(status int, data json.RawMessage) error {
	verr := &domain.ValidationError{}
	if err := json.Unmarshal(data, verr); err == nil && len(verr.Fields) > 0 {
		return verr
	}
	msg := ""
	if err := json.Unmarshal(data, &msg); err != nil {
		msg = string(data)
	}
	return statusError(status, msg)
}

func statusError(status int, msg string) error {
	var base error
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		base = domain.ErrBadParamInput
	case http.StatusUnauthorized:
		base = domain.ErrUnauthorized
	case http.StatusForbidden:
		base = domain.ErrForbidden
	case http.StatusNotFound:
		base = domain.ErrNotFound
	case http.StatusConflict:
		base = domain.ErrConflict
	case http.StatusBadGateway:
		base = domain.ErrUpstream
	default:
		base = domain.ErrInternalServerError
	}
	return xerrors.Errorf("%d %s: %w", status, msg, base)
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
