package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/Vinayyy19/Furnista/common/errors"
	"github.com/Vinayyy19/Furnista/media"
	"github.com/gin-gonic/gin"
)

const (
	defaultPresignExpiry = 900
	maxPresignExpiry     = 3600
)

type PresignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Folder      string `json:"folder"`
	Expires     int64  `json:"expires"`
}

// MediaController uploads catalog images. presigner is nil unless the s3
// backend is configured.
type MediaController struct {
	uploader  media.Uploader
	presigner media.Presigner
}

func NewMediaController(uploader media.Uploader, presigner media.Presigner) *MediaController {
	return &MediaController{uploader: uploader, presigner: presigner}
}

func (mc *MediaController) Upload(c *gin.Context) {
	if mc.uploader == nil {
		_ = c.Error(apperrors.New(apperrors.KindUnavailable, http.StatusServiceUnavailable, "Media uploads are not configured", nil))
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize+1<<20)

	header, err := c.FormFile("file")
	if err != nil {
		_ = c.Error(apperrors.Validation("file is required"))
		return
	}
	if header.Size > MaxUploadSize {
		_ = c.Error(apperrors.Validation(fmt.Sprintf("file exceeds %d MB", MaxUploadSize>>20)))
		return
	}

	file, err := header.Open()
	if err != nil {
		_ = c.Error(apperrors.Internal(err))
		return
	}
	defer file.Close()

	folder := strings.TrimSpace(c.DefaultPostForm("folder", media.DefaultFolder))
	url, publicID, err := mc.uploader.Upload(c.Request.Context(), file, header.Filename, folder)
	if err != nil {
		_ = c.Error(mediaError(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url":       url,
		"public_id": publicID,
	})
}

func (mc *MediaController) Presign(c *gin.Context) {
	if mc.presigner == nil {
		_ = c.Error(apperrors.Validation(media.ErrPresignUnavailable.Error()))
		return
	}

	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindingError(err))
		return
	}
	if req.Expires <= 0 {
		req.Expires = defaultPresignExpiry
	}
	if req.Expires > maxPresignExpiry {
		req.Expires = maxPresignExpiry
	}

	upload, err := mc.presigner.Presign(c.Request.Context(), req.Filename, req.Folder, req.ContentType,
		time.Duration(req.Expires)*time.Second)
	if err != nil {
		_ = c.Error(mediaError(err))
		return
	}
	c.JSON(http.StatusOK, upload)
}

func mediaError(err error) error {
	if errors.Is(err, media.ErrUnsupportedType) {
		return apperrors.Validation(fmt.Sprintf("Invalid content type. Allowed: %s", strings.Join(media.AllowedImageTypes(), ", ")))
	}
	return apperrors.Internal(err)
}
