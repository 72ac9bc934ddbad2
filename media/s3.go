package media

import (
	"context"
	"fmt"
	"io"
	"time"
)

// ObjectStore is satisfied by the shared S3 store.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	GeneratePresignedPutURL(ctx context.Context, key string, expiry time.Duration) (string, map[string]string, error)
}

type S3Uploader struct {
	store ObjectStore
}

func NewS3Uploader(store ObjectStore) *S3Uploader {
	return &S3Uploader{store: store}
}

func (u *S3Uploader) Upload(ctx context.Context, file io.Reader, filename, folder string) (string, string, error) {
	contentType, body, err := sniff(file)
	if err != nil {
		return "", "", err
	}

	key := objectKey(folder, filename)
	location, err := u.store.Upload(ctx, key, contentType, body)
	if err != nil {
		return "", "", err
	}
	return location, key, nil
}

func (u *S3Uploader) Presign(ctx context.Context, filename, folder, contentType string, expiry time.Duration) (*PresignedUpload, error) {
	if !IsAllowedImageType(contentType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	key := objectKey(folder, filename)
	url, headers, err := u.store.GeneratePresignedPutURL(ctx, key, expiry)
	if err != nil {
		return nil, err
	}
	return &PresignedUpload{
		UploadURL: url,
		Method:    "PUT",
		Key:       key,
		Headers:   headers,
		ExpiresIn: int64(expiry.Seconds()),
	}, nil
}
