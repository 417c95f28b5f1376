package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// DocumentService attachment storage in MinIO. Certificates, invoice scans
// and payment receipts all land in the same bucket under a per-kind prefix.
type DocumentService struct {
	client *minio.Client
	bucket string
}

func NewDocumentService(client *minio.Client, bucket string) *DocumentService {
	return &DocumentService{client: client, bucket: bucket}
}

// UploadResult stored object handle
type UploadResult struct {
	ObjectName string `json:"object_name"`
	Size       int64  `json:"size"`
	URL        string `json:"url"`
}

// Upload stores the file under kind/{uuid}{ext} and returns a presigned URL
// valid for 24 hours.
func (s *DocumentService) Upload(ctx context.Context, kind, filename string, reader io.Reader, size int64, contentType string) (*UploadResult, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: object storage is not configured", ErrValidation)
	}

	objectName := fmt.Sprintf("%s/%s%s", kind, uuid.New().String(), path.Ext(filename))
	info, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	presigned, err := s.PresignedURL(ctx, objectName)
	if err != nil {
		return nil, err
	}

	return &UploadResult{
		ObjectName: objectName,
		Size:       info.Size,
		URL:        presigned,
	}, nil
}

// PresignedURL issues a fresh 24h download link for a stored object.
func (s *DocumentService) PresignedURL(ctx context.Context, objectName string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("%w: object storage is not configured", ErrValidation)
	}

	reqParams := make(url.Values)
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, 24*time.Hour, reqParams)
	if err != nil {
		return "", fmt.Errorf("presign failed: %w", err)
	}
	return u.String(), nil
}
