package media

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrUploadFailed wraps transport or storage errors from the media host.
	ErrUploadFailed = errors.New("failed to upload media")
	// ErrInvalidImageType is returned when the uploaded bytes are not an
	// accepted image format.
	ErrInvalidImageType = errors.New("invalid image type, only JPEG, PNG and WebP are allowed")
	// ErrFileTooBig is returned when the upload exceeds the size limit.
	ErrFileTooBig = errors.New("image exceeds the size limit")
)

// Uploader accepts an image blob and returns a durable hosted URL.
// Implementations must not leave partial state behind on failure.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, size int64, contentType string) (string, error)
}
