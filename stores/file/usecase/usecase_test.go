package usecase

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/file"
	"github.com/x-xyz/p2pmarket/domain/file/mocks"
)

var (
	pngData  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")
	gifData  = []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")
	jpegData = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01")
)

type fileUsecaseSuite struct {
	suite.Suite

	ctx     ctx.Ctx
	storage *mocks.Storage
	im      file.Usecase
}

func TestFileUsecaseSuite(t *testing.T) {
	suite.Run(t, new(fileUsecaseSuite))
}

func (s *fileUsecaseSuite) SetupTest() {
	s.ctx = ctx.Background()
	s.storage = &mocks.Storage{}
	s.im = New(s.storage, 64)
}

func (s *fileUsecaseSuite) TearDownTest() {
	s.storage.AssertExpectations(s.T())
}

func named(ext string) interface{} {
	return mock.MatchedBy(func(name string) bool {
		return strings.HasSuffix(name, "."+ext) && len(name) == 36+1+len(ext)
	})
}

func (s *fileUsecaseSuite) TestUploadKeepsInputOrder() {
	s.storage.On("Store", mock.Anything, named("png"), pngData, "image/png").Return("ipfs://png", nil).Once()
	s.storage.On("Store", mock.Anything, named("gif"), gifData, "image/gif").Return("ipfs://gif", nil).Once()
	s.storage.On("Store", mock.Anything, named("jpg"), jpegData, "image/jpeg").Return("ipfs://jpg", nil).Once()

	uris, err := s.im.UploadImages(s.ctx, []file.Upload{
		{Name: "a.png", Data: pngData},
		{Name: "b.gif", Data: gifData},
		{Name: "c.jpg", Data: jpegData},
	})
	s.Require().NoError(err)
	s.Equal([]string{"ipfs://png", "ipfs://gif", "ipfs://jpg"}, uris)
}

func (s *fileUsecaseSuite) TestRejectsBeforeAnyUpload() {
	_, err := s.im.UploadImages(s.ctx, []file.Upload{
		{Name: "a.png", Data: pngData},
		{Name: "notes.txt", Data: []byte("just some text")},
		{Name: "big.png", Data: append(append([]byte{}, pngData...), make([]byte, 64)...)},
	})
	s.True(errors.Is(err, domain.ErrBadParamInput))

	var verr *domain.ValidationError
	s.Require().True(errors.As(err, &verr))
	s.Len(verr.Fields, 2)
	s.Equal("images[1]", verr.Fields[0].Field)
	s.Equal("images[2]", verr.Fields[1].Field)

	_, err = s.im.UploadImages(s.ctx, nil)
	s.True(errors.Is(err, domain.ErrBadParamInput))
}

func (s *fileUsecaseSuite) TestUploadFailure() {
	var calls int32
	s.storage.On("Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(func(ctx.Ctx, string, []byte, string) string {
		atomic.AddInt32(&calls, 1)
		return "ipfs://x"
	}, func(c ctx.Ctx, name string, body []byte, contentType string) error {
		if contentType == "image/gif" {
			return errors.New("pinata down")
		}
		return nil
	}).Twice()

	_, err := s.im.UploadImages(s.ctx, []file.Upload{
		{Name: "a.png", Data: pngData},
		{Name: "b.gif", Data: gifData},
	})
	s.True(errors.Is(err, domain.ErrUpstream))
	s.Equal(int32(2), atomic.LoadInt32(&calls))
}

func (s *fileUsecaseSuite) TestDefaultMaxSize() {
	im := New(s.storage, 0).(*impl)
	s.Equal(file.DefaultMaxSize, im.maxSize)
}
