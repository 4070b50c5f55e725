package photoprism

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"path/filepath"

	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/gallery"
)

// Upload sends one image with the given metadata. The server refuses
// uploads without at least one tag, so that is checked first.
func (c *Client) Upload(ctx context.Context, fields gallery.UploadFields, filename string, r io.Reader) (*gallery.UploadResult, error) {
	if len(fields.Tags) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "upload needs at least one tag")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, vals := range fields.Form() {
		for _, v := range vals {
			if err := mw.WriteField(key, v); err != nil {
				return nil, err
			}
		}
	}
	fw, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", filename)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var res gallery.UploadResult
	if err := c.api.PostBody(ctx, c.url(pathUpload, nil), mw.FormDataContentType(), &buf, &res); err != nil {
		return nil, err
	}
	c.logger.Debug("uploaded", "file", filepath.Base(filename), "ids", res.IDs)
	return &res, nil
}
