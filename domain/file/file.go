package file

import (
	"github.com/x-xyz/p2pmarket/base/ctx"
)

const (
	DefaultMaxSize = 5 << 20
	MaxUploads     = 10
)

// AllowedTypes maps accepted image mime types to the extension used in stored names
var AllowedTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
}

type Upload struct {
	Name string
	Data []byte
}

// Storage persists one object and returns the uri it can be fetched from
type Storage interface {
	Store(c ctx.Ctx, name string, body []byte, contentType string) (uri string, err error)
}

type Usecase interface {
	// UploadImages validates every upload before storing any, uris are returned in input order
	UploadImages(c ctx.Ctx, uploads []Upload) ([]string, error)
}
