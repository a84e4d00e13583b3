package services

import (
	"context"
	"io"
)

// Upload is a file received from a multipart request, ready to be stored.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ImageStore persists uploaded images and returns a public URL for each.
// pkg/storage provides the S3-backed implementation.
type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}
