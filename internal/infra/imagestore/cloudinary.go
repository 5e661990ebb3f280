package imagestore

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: failed to initialize: %w", err)
	}

	return &CloudinaryStore{cld: cld, folder: folder}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, r io.Reader, filename string) (*UploadResult, error) {
	result, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder: s.folder,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary: upload failed: %w", err)
	}
	if result.PublicID == "" {
		return nil, fmt.Errorf("cloudinary: no public ID returned")
	}

	return &UploadResult{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
	}, nil
}

var _ Store = (*CloudinaryStore)(nil)
