package handlers

import (
	"context"
	"errors"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// ImageUploader stores one lead photo and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, name string, file io.Reader) (string, error)
}

type cloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryUploader configures the uploader from the CLOUDINARY_URL
// environment variable. A misconfigured uploader is still returned so the
// lead route can report per-image failures instead of panicking.
func NewCloudinaryUploader() ImageUploader {
	cld, err := cloudinary.New()
	if err != nil {
		zap.S().With(err).Error("failed to configure cloudinary, lead image uploads will fail")
		return &cloudinaryUploader{}
	}
	return &cloudinaryUploader{cld: cld}
}

func (u *cloudinaryUploader) Upload(ctx context.Context, name string, file io.Reader) (string, error) {
	if u.cld == nil {
		return "", errors.New("cloudinary is not configured")
	}
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   "leads",
		PublicID: name,
	})
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", errors.New(resp.Error.Message)
	}
	return resp.SecureURL, nil
}
