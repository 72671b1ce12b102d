package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/sachcu/marketplace-client/internal/core/domain"
)

const uploadField = "file"

// ImagesAPI uploads and removes listing images.
type ImagesAPI struct{ c *Client }

// Upload sends r as a multipart form under the "file" field. The multipart
// writer owns the Content-Type, so the JSON content type is never set.
func (i ImagesAPI) Upload(ctx context.Context, filename string, r io.Reader) (*domain.ImageUpload, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(uploadField, filename)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("upload %s: read: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}

	var out domain.ImageUpload
	if err := i.c.DispatchInto(ctx, Request{
		Method:         http.MethodPost,
		Path:           "/images/upload",
		Role:           domain.RoleUser,
		Raw:            &buf,
		RawContentType: mw.FormDataContentType(),
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a previously uploaded image by its stored file name.
func (i ImagesAPI) Delete(ctx context.Context, fileName string) error {
	return i.c.DispatchInto(ctx, Request{
		Method: http.MethodDelete,
		Path:   "/images/" + url.PathEscape(fileName),
		Role:   domain.RoleUser,
	}, nil)
}
