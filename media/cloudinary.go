package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go"
	"github.com/cloudinary/cloudinary-go/api/uploader"
)

type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
}

type CloudinaryUploader struct {
	api cloudinaryAPI
}

// NewCloudinaryUploader builds an uploader from a cloudinary:// URL. An empty
// URL falls back to the CLOUDINARY_URL environment variable.
func NewCloudinaryUploader(cloudinaryURL string) (*CloudinaryUploader, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cloudinaryURL == "" {
		cld, err = cloudinary.New()
	} else {
		cld, err = cloudinary.NewFromURL(cloudinaryURL)
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary init error: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryUploader{api: &cld.Upload}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, filename, folder string) (string, string, error) {
	_, body, err := sniff(file)
	if err != nil {
		return "", "", err
	}

	key := objectKey(folder, filename)
	params := uploader.UploadParams{
		Folder:   path.Dir(key),
		PublicID: strings.TrimSuffix(path.Base(key), path.Ext(key)),
	}

	resp, err := u.api.Upload(ctx, body, params)
	if err != nil {
		return "", "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp == nil || resp.SecureURL == "" {
		return "", "", fmt.Errorf("cloudinary upload returned no url")
	}
	return resp.SecureURL, resp.PublicID, nil
}
