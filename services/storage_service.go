package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"grant-management-api/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// UploadFile forwards one multipart file to the object store under the
// given folder tag and returns the public URL of the stored object.
// Multiple files are uploaded sequentially by the callers.
func UploadFile(ctx context.Context, header *multipart.FileHeader, folder string) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	key := fmt.Sprintf("%s/%s/%s%s",
		folder,
		time.Now().Format("2006/01"),
		uuid.New().String(),
		filepath.Ext(header.Filename),
	)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = config.Storage.PutObject(ctx, config.StorageBucket, key, file, header.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to store %s: %w", header.Filename, err)
	}

	return config.PublicURL(key), nil
}
