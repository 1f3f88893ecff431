package storage

import (
	"context"
	"errors"
	"io"
)

// ErrUploadRejected marks media host responses that refused the file.
var ErrUploadRejected = errors.New("media host rejected the upload")

// UploadInput describes one file to store on the media host.
type UploadInput struct {
	// PublicID is the remote identifier, "<folder>/<name>", chosen before upload.
	PublicID    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadResult is what handlers need from a stored file.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// MediaStore defines the operations against the external media host.
type MediaStore interface {
	Upload(ctx context.Context, in UploadInput) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}
