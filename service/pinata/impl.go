package pinata

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/log"
)

const (
	pinPath        = "/pinning/pinFileToIPFS"
	requestTimeout = 60 * time.Second
)

type pinataImpl struct {
	apiKey    string
	apiSecret string
	endpoint  string
	client    *http.Client
}

// New creates a pinata client. An empty endpoint uses DefaultEndpoint.
func New(apiKey, apiSecret, endpoint string) Service {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &pinataImpl{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		endpoint:  strings.TrimRight(endpoint, "/"),
		client:    &http.Client{Timeout: requestTimeout},
	}
}

func (im *pinataImpl) Store(c ctx.Ctx, name string, body []byte, contentType string) (string, error) {
	hash, err := im.Pin(c, bytes.NewReader(body), name,
		WithMetadata(Metadata{
			Name:      name,
			KeyValues: map[string]interface{}{"contentType": contentType},
		}),
		WithCidVersion(CidV1),
	)
	if err != nil {
		return "", err
	}
	return "ipfs://" + hash, nil
}

func (im *pinataImpl) Pin(c ctx.Ctx, file io.Reader, filename string, opts ...PinOption) (string, error) {
	pr := &pinRequest{}
	for _, opt := range opts {
		opt(pr)
	}

	var b bytes.Buffer

	w := multipart.NewWriter(&b)
	if fw, err := w.CreateFormFile("file", filename); err != nil {
		c.WithField("err", err).Error("w.CreateFormFile failed")
		return "", err
	} else if _, err := io.Copy(fw, file); err != nil {
		c.WithField("err", err).Error("io.Copy failed")
		return "", err
	}

	if pr.metadata != nil {
		if err := writeJsonField(w, "pinataMetadata", pr.metadata); err != nil {
			c.WithField("err", err).Error("writeJsonField failed")
			return "", err
		}
	}

	if pr.options != nil {
		if err := writeJsonField(w, "pinataOptions", pr.options); err != nil {
			c.WithField("err", err).Error("writeJsonField failed")
			return "", err
		}
	}

	if err := w.Close(); err != nil {
		c.WithField("err", err).Error("w.Close failed")
		return "", err
	}

	req, err := http.NewRequestWithContext(c, http.MethodPost, im.endpoint+pinPath, &b)
	if err != nil {
		c.WithField("err", err).Error("http.NewRequest failed")
		return "", err
	}

	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("pinata_api_key", im.apiKey)
	req.Header.Set("pinata_secret_api_key", im.apiSecret)

	resp, err := im.client.Do(req)
	if err != nil {
		c.WithField("err", err).Error("client.Do failed")
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(resp.Body)
		c.WithFields(log.Fields{
			"status":    resp.StatusCode,
			"errorBody": string(errorBody),
		}).Error("Request failed")
		return "", ErrRequestFailed
	}

	type payload struct {
		IpfsHash string `json:"IpfsHash"`
	}

	p := &payload{}

	if err := json.NewDecoder(resp.Body).Decode(p); err != nil {
		c.WithField("err", err).Error("json.NewDecoder.Decode failed")
		return "", err
	}

	return p.IpfsHash, nil
}

func writeJsonField(w *multipart.Writer, field string, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"`)
	fw, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = fw.Write(b)
	return err
}
