package services

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"jungleetoys_back_end/internal/database"

	"github.com/google/uuid"
)

const (
	uploadURLExpiry = 15 * time.Minute
	viewURLExpiry   = 24 * time.Hour
)

// NewProductImageKey produces the object key an admin uploads a product
// image under.
func NewProductImageKey(productID string) string {
	return fmt.Sprintf("products/%s/%s.jpg", productID, uuid.NewString())
}

// PresignedUploadURL hands the admin UI a short-lived PUT URL. The upload
// itself happens browser → MinIO, the backend never touches the bytes.
func PresignedUploadURL(ctx context.Context, objectKey string) (string, error) {
	u, err := database.MinIO.PresignedPutObject(ctx, bucket(), objectKey, uploadURLExpiry)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// PresignedImageURL returns a GET URL for a stored product image.
func PresignedImageURL(ctx context.Context, objectKey string) (string, error) {
	u, err := database.MinIO.PresignedGetObject(ctx, bucket(), objectKey, viewURLExpiry, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func bucket() string {
	return os.Getenv("MINIO_BUCKET")
}
