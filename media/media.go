package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const DefaultFolder = "products"

var (
	ErrUnsupportedType    = errors.New("unsupported media type")
	ErrPresignUnavailable = errors.New("presigned uploads need the s3 backend")
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// Uploader stores a file and returns its public URL and provider id.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, filename, folder string) (url, publicID string, err error)
}

// Presigner hands out direct-to-bucket upload URLs.
type Presigner interface {
	Presign(ctx context.Context, filename, folder, contentType string, expiry time.Duration) (*PresignedUpload, error)
}

type PresignedUpload struct {
	UploadURL string            `json:"upload_url"`
	Method    string            `json:"method"`
	Key       string            `json:"key"`
	Headers   map[string]string `json:"headers,omitempty"`
	ExpiresIn int64             `json:"expires_in"`
}

// sniff reads the head of file to detect its type and returns a reader that
// still yields the whole content.
func sniff(file io.Reader) (string, io.Reader, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	mtype := mimetype.Detect(head)
	if !IsAllowedImageType(mtype.String()) {
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mtype.String())
	}
	return mtype.String(), io.MultiReader(bytes.NewReader(head), file), nil
}

func IsAllowedImageType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if ct == "image/jpg" {
		ct = "image/jpeg"
	}
	for _, t := range allowedImageTypes {
		if ct == t {
			return true
		}
	}
	return false
}

func AllowedImageTypes() []string {
	return append([]string(nil), allowedImageTypes...)
}

// objectKey builds "<folder>/<uuid>-<base name>".
func objectKey(folder, filename string) string {
	folder = strings.Trim(path.Clean("/"+folder), "/")
	if folder == "" || folder == "." {
		folder = DefaultFolder
	}
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." || base == "/" {
		base = "upload"
	}
	return fmt.Sprintf("%s/%s-%s", folder, uuid.NewString(), base)
}
