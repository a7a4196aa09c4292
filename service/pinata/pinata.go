package pinata

import (
	"errors"
	"io"

	"github.com/x-xyz/p2pmarket/base/ctx"
)

var ErrRequestFailed = errors.New("pinata request failed")

const DefaultEndpoint = "https://api.pinata.cloud"

// Metadata is attached to the pin, KeyValues only take string, bool and number values
type Metadata struct {
	Name      string                 `json:"name,omitempty"`
	KeyValues map[string]interface{} `json:"keyvalues,omitempty"`
}

type CidVersion uint8

const (
	CidV0 CidVersion = 0
	CidV1 CidVersion = 1
)

type pinOptions struct {
	CidVersion CidVersion `json:"cidVersion"`
}

type pinRequest struct {
	metadata *Metadata
	options  *pinOptions
}

type PinOption func(*pinRequest)

func WithMetadata(m Metadata) PinOption {
	return func(r *pinRequest) {
		r.metadata = &m
	}
}

func WithCidVersion(v CidVersion) PinOption {
	return func(r *pinRequest) {
		r.options = &pinOptions{CidVersion: v}
	}
}

// Service pins files to IPFS through pinata. It also satisfies file.Storage.
type Service interface {
	// Pin returns the ipfs hash of the pinned file
	Pin(c ctx.Ctx, file io.Reader, filename string, opts ...PinOption) (string, error)
	Store(c ctx.Ctx, name string, body []byte, contentType string) (string, error)
}
