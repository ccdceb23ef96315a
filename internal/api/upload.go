package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/goccy/go-json"
)

// Upload sends a file to the upload endpoint as multipart/form-data with a
// single "file" field and returns the stored file's metadata. Callers then
// reference the returned URL in the entity payload (upload-then-reference).
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", path.Base(filename))
	if err != nil {
		return nil, newParseError("impossibile preparare il file", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, newParseError("impossibile leggere il file", err)
	}
	if err := writer.Close(); err != nil {
		return nil, newParseError("impossibile preparare il file", err)
	}

	body, err := c.do(ctx, http.MethodPost, c.scopedPath("uploads"), &buf, writer.FormDataContentType())
	if err != nil {
		return nil, err
	}

	var result UploadResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, newParseError("risposta di upload non valida", err)
	}
	return &result, nil
}

// ResolveFileURL resolves a backend-relative file URL against the client's
// base origin. Absolute URLs pass through unchanged.
func (c *Client) ResolveFileURL(raw string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return c.BaseURL + "/" + strings.TrimLeft(raw, "/")
}
