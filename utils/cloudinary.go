package utils

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/meinhoongagan/tutor-booking/config"
)

var ErrUploadsDisabled = errors.New("image uploads are not configured")

// ImageUploader stores an image and returns its public URL. file is anything
// the Cloudinary SDK accepts: a path, a URL or an io.Reader.
type ImageUploader interface {
	Upload(ctx context.Context, file interface{}, publicID string) (string, error)
}

type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
	preset string
}

func NewCloudinaryUploader(cfg config.CloudinaryConfig) (*CloudinaryUploader, error) {
	if !cfg.Enabled() {
		return nil, ErrUploadsDisabled
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &CloudinaryUploader{cld: cld, folder: cfg.Folder, preset: cfg.UploadPreset}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file interface{}, publicID string) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         u.folder,
		UploadPreset:   u.preset,
		Transformation: "c_limit,w_800,h_800",
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("upload image: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}
