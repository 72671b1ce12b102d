package handler

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sachcu/marketplace-client/internal/core/domain"
	"github.com/sachcu/marketplace-client/internal/devapi/store"
)

// MaxImageSize bounds a single upload.
const MaxImageSize = 5 << 20

// ImageHandler stores uploaded listing images under generated names.
type ImageHandler struct {
	store    *store.Store
	basePath string
}

// NewImageHandler returns a handler whose file URLs are rooted at basePath.
func NewImageHandler(st *store.Store, basePath string) *ImageHandler {
	return &ImageHandler{store: st, basePath: strings.TrimRight(basePath, "/")}
}

// @Summary      Upload a listing image
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Image, at most 5MB"
// @Success      201   {object}  domain.ImageUpload
// @Failure      400   {object}  MessageBody
// @Router       /images/upload [post]
func (h *ImageHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}
	if fh.Size > MaxImageSize {
		return fmt.Errorf("%w: file exceeds %d bytes", store.ErrInvalidInput, MaxImageSize)
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize+1))
	if err != nil {
		return err
	}
	if len(data) > MaxImageSize {
		return fmt.Errorf("%w: file exceeds %d bytes", store.ErrInvalidInput, MaxImageSize)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("%w: %s is not an image", store.ErrInvalidInput, contentType)
	}

	name := uuid.NewString() + strings.ToLower(path.Ext(fh.Filename))
	h.store.SaveImage(name, store.Image{ContentType: contentType, Data: data})

	return c.JSON(http.StatusCreated, domain.ImageUpload{
		Success:  true,
		FileName: name,
		FileURL:  h.basePath + "/images/" + name,
		FileSize: int64(len(data)),
		FileType: contentType,
		Message:  "uploaded",
	})
}

func (h *ImageHandler) Get(c echo.Context) error {
	img, err := h.store.Image(pathParam(c, "name"))
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, img.ContentType, img.Data)
}

func (h *ImageHandler) Delete(c echo.Context) error {
	if err := h.store.DeleteImage(pathParam(c, "name")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, domain.Message{Message: "image deleted", Success: true})
}
