package usecase

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/file"
)

const uploadWorkers = 4

type impl struct {
	storage file.Storage
	maxSize int
}

// New returns the image upload usecase. maxSize <= 0 falls back to file.DefaultMaxSize.
func New(storage file.Storage, maxSize int) file.Usecase {
	if maxSize <= 0 {
		maxSize = file.DefaultMaxSize
	}
	return &impl{
		storage: storage,
		maxSize: maxSize,
	}
}

type prepared struct {
	name        string
	contentType string
	data        []byte
}

type stored struct {
	idx int
	uri string
}

func (im *impl) UploadImages(c ctx.Ctx, uploads []file.Upload) ([]string, error) {
	files, err := im.prepare(uploads)
	if err != nil {
		return nil, err
	}

	b := goroutines.NewBatch(uploadWorkers, goroutines.WithBatchSize(len(files)))
	defer b.Close()
	for i := range files {
		idx := i
		b.Queue(func() (interface{}, error) {
			f := files[idx]
			uri, err := im.storage.Store(c, f.name, f.data, f.contentType)
			if err != nil {
				return nil, err
			}
			return stored{idx: idx, uri: uri}, nil
		})
	}
	b.QueueComplete()

	uris := make([]string, len(files))
	var firstErr error
	for ret := range b.Results() {
		if ret.Error() != nil {
			c.WithField("err", ret.Error()).Error("storage.Store failed")
			if firstErr == nil {
				firstErr = ret.Error()
			}
			continue
		}
		s := ret.Value().(stored)
		uris[s.idx] = s.uri
	}
	if firstErr != nil {
		return nil, fmt.Errorf("%v: %w", firstErr, domain.ErrUpstream)
	}

	c.WithField("count", len(uris)).Info("images uploaded")
	return uris, nil
}

// prepare checks every upload and names it, nothing is stored when one is rejected
func (im *impl) prepare(uploads []file.Upload) ([]prepared, error) {
	verr := domain.NewValidationError()
	if len(uploads) == 0 {
		verr.Add("images", "at least one image is required")
	}
	if len(uploads) > file.MaxUploads {
		verr.Add("images", fmt.Sprintf("at most %d images per request", file.MaxUploads))
	}

	res := make([]prepared, 0, len(uploads))
	for i, u := range uploads {
		field := fmt.Sprintf("images[%d]", i)
		if len(u.Data) == 0 {
			verr.Add(field, "empty file")
			continue
		}
		if len(u.Data) > im.maxSize {
			verr.Add(field, fmt.Sprintf("%s exceeds %d bytes", u.Name, im.maxSize))
			continue
		}
		mtype := mimetype.Detect(u.Data)
		ext, ok := file.AllowedTypes[mtype.String()]
		if !ok {
			verr.Add(field, fmt.Sprintf("%s is %s, only jpeg, png and gif are accepted", u.Name, mtype.String()))
			continue
		}
		res = append(res, prepared{
			name:        uuid.NewString() + "." + ext,
			contentType: mtype.String(),
			data:        u.Data,
		})
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return res, nil
}
