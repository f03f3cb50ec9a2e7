package documents

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store keeps rendered artifacts retrievable and hands back a link
type Store interface {
	Upload(ctx context.Context, name string, content []byte) (string, error)
}

// CloudinaryStore uploads rendered documents to cloudinary
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore builds a store from a CLOUDINARY_URL style connection string
func NewCloudinaryStore(cloudinaryURL string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &CloudinaryStore{cld: cld}, nil
}

// Upload stores the rendered bytes under a unique public id and returns the
// secure URL used as the document link on the multiple.
func (c *CloudinaryStore) Upload(ctx context.Context, name string, content []byte) (string, error) {
	publicID := fmt.Sprintf("multiples/%s-%s", name, uuid.New().String())

	resp, err := c.cld.Upload.Upload(ctx, bytes.NewReader(content), uploader.UploadParams{
		PublicID:     publicID,
		ResourceType: "raw",
	})
	if err != nil {
		return "", err
	}

	zap.S().Debugw("uploaded rendered document",
		"publicId", publicID,
		"bytes", len(content),
	)
	return resp.SecureURL, nil
}
