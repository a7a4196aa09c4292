package http

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/delivery"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/file"
	authMiddleware "github.com/x-xyz/p2pmarket/stores/auth/delivery/http/middleware"
)

const formField = "images"

type fileHandler struct {
	file file.Usecase
}

func New(e *echo.Echo, uc file.Usecase, am *authMiddleware.AuthMiddleware) {
	h := &fileHandler{file: uc}

	e.POST("/files/images", h.uploadImages, am.Auth())
}

// uploadImages
//
//	@Summary		Upload listing images
//	@Description	jpeg, png or gif only. Returned uris follow the upload order.
//	@Tags			files
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			images	formData	file	true	"images"
//	@Success		200		{object}	object{data=[]string}
//	@Failure		400
//	@Failure		401
//	@Failure		502
//	@Router			/files/images [post]
func (h *fileHandler) uploadImages(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	form, err := c.MultipartForm()
	if err != nil {
		ctx.WithField("err", err).Warn("c.MultipartForm failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.NewValidationError().Add(formField, "multipart form required"))
	}

	uploads := []file.Upload{}
	for _, fh := range form.File[formField] {
		f, err := fh.Open()
		if err != nil {
			ctx.WithField("err", err).Error("fh.Open failed")
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			ctx.WithField("err", err).Error("io.ReadAll failed")
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
		}
		uploads = append(uploads, file.Upload{Name: fh.Filename, Data: data})
	}

	if res, err := h.file.UploadImages(ctx, uploads); err != nil {
		ctx.WithField("err", err).Error("file.UploadImages failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
