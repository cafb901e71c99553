package upstream

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/url"

	"github.com/gachisikyeo/gongu-gateway/internal/core/ports"
)

// UploadFiles forwards files to upstream storage and returns their public
// URLs in upload order.
func (c *Client) UploadFiles(ctx context.Context, sessionID string, files []ports.FileInput) ([]string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		if err := writeFilePart(w, "files", f); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	var urls []string
	if err := c.postMultipart(ctx, sessionID, "/files", "/files", w.FormDataContentType(), buf.Bytes(), &urls); err != nil {
		return nil, err
	}
	return urls, nil
}

// DeleteFile removes one uploaded file. The upstream addresses files by the
// fileName query parameter, not by path segment.
func (c *Client) DeleteFile(ctx context.Context, sessionID, fileName string) error {
	q := url.Values{"fileName": {fileName}}
	return c.deleteJSON(ctx, sessionID, "/files?"+q.Encode(), "/files")
}

var _ ports.FileAPI = (*Client)(nil)
