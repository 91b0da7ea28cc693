package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	maxImageSize      = 10 * 1024 * 1024 // 10 MB
	productPathPrefix = "products"
)

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Config holds connection details for the MinIO-backed uploader.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// BaseURL is the public prefix for uploaded objects, e.g. a CDN origin.
	// When empty, a URL is derived from the endpoint and bucket.
	BaseURL string
}

// MinIOUploader implements Uploader against MinIO or any S3-compatible host.
type MinIOUploader struct {
	client   *minio.Client
	bucket   string
	baseURL  string
	initOnce sync.Once
	initErr  error
}

// NewMinIOUploader creates a MinIO-backed uploader. Bucket creation is
// deferred until the first upload so a missing media host does not block
// startup.
func NewMinIOUploader(cfg Config) (*MinIOUploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &MinIOUploader{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

// lazyInit ensures the bucket exists on first use.
func (u *MinIOUploader) lazyInit(ctx context.Context) error {
	u.initOnce.Do(func() {
		exists, err := u.client.BucketExists(ctx, u.bucket)
		if err != nil {
			u.initErr = fmt.Errorf("%w: check bucket: %v", ErrUploadFailed, err)
			return
		}
		if !exists {
			if err := u.client.MakeBucket(ctx, u.bucket, minio.MakeBucketOptions{}); err != nil {
				u.initErr = fmt.Errorf("%w: create bucket: %v", ErrUploadFailed, err)
			}
		}
	})
	return u.initErr
}

// Upload stores an image and returns its public URL. The content type is
// detected from the leading bytes rather than trusted from the caller.
func (u *MinIOUploader) Upload(ctx context.Context, file io.Reader, size int64, contentType string) (string, error) {
	if size > maxImageSize {
		return "", ErrFileTooBig
	}

	// Sniff the real content type before touching the media host.
	buf := make([]byte, 512)
	n, err := io.ReadFull(file, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("%w: read image: %v", ErrUploadFailed, err)
	}
	buf = buf[:n]

	detected := strings.ToLower(strings.TrimSpace(http.DetectContentType(buf)))
	ext, allowed := allowedContentTypes[detected]
	if !allowed {
		return "", ErrInvalidImageType
	}

	if err := u.lazyInit(ctx); err != nil {
		return "", err
	}

	objectKey := path.Join(productPathPrefix, uuid.New().String()+ext)
	fullFile := io.MultiReader(bytes.NewReader(buf), file)

	_, err = u.client.PutObject(ctx, u.bucket, objectKey, fullFile, size, minio.PutObjectOptions{
		ContentType: detected,
	})
	if err != nil {
		return "", fmt.Errorf("%w: put object: %v", ErrUploadFailed, err)
	}

	return u.baseURL + "/" + objectKey, nil
}
