package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/ykovtun/avtosos/internal/pkg/logger"
	"github.com/ykovtun/avtosos/internal/pkg/models"
)

// MinioClient stores uploaded attachments in an S3-compatible bucket
type MinioClient struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioClient creates the storage client and ensures the bucket exists
func NewMinioClient(cfg models.StorageConfig) (*MinioClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("Created storage bucket", logger.String("bucket", cfg.Bucket))
	}

	return &MinioClient{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// UploadFile stores a multipart upload under the given prefix and returns
// the public URL of the stored object
func (m *MinioClient) UploadFile(ctx context.Context, prefix string, fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	objectName := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), ext)

	_, err = m.client.PutObject(ctx, m.bucket, objectName, src, fileHeader.Size, minio.PutObjectOptions{
		ContentType: contentTypeByExt(ext),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return m.ObjectURL(objectName), nil
}

// UploadStream stores raw content without a multipart header
func (m *MinioClient) UploadStream(ctx context.Context, prefix string, ext string, size int64, r io.Reader) (string, error) {
	ext = strings.ToLower(ext)
	objectName := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), ext)

	_, err := m.client.PutObject(ctx, m.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentTypeByExt(ext),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return m.ObjectURL(objectName), nil
}

// ObjectURL builds the public URL for a stored object
func (m *MinioClient) ObjectURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", m.publicURL, m.bucket, objectName)
}

// KindByExt classifies an upload as image or video by its extension
func KindByExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp4", ".mov", ".avi", ".webm", ".mkv":
		return models.AttachmentKindVideo
	default:
		return models.AttachmentKindImage
	}
}

func contentTypeByExt(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".webm":
		return "video/webm"
	default:
		return "application/octet-stream"
	}
}
