package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStorage holds uploaded CV files.
type ObjectStorage interface {
	UploadCVFile(ctx context.Context, submissionUUID, fileExt string, reader io.Reader, fileSize int64) (string, error)
	GetCVFile(ctx context.Context, objectKey string) ([]byte, error)
	DeleteCVFile(ctx context.Context, objectKey string) error
	GetPresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error)
}

var _ ObjectStorage = (*MinIO)(nil)

// MinIO provides object storage for CV files.
type MinIO struct {
	client   *minio.Client
	cvBucket string
	cfg      *config.MinIOConfig
}

// NewMinIO creates the client and ensures the CV bucket exists.
func NewMinIO(cfg *config.MinIOConfig) (*MinIO, error) {
	if cfg == nil {
		return nil, fmt.Errorf("minio config cannot be nil")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client: %w", err)
	}

	bucket := cfg.CVBucket
	if bucket == "" {
		bucket = "student-cvs"
	}

	m := &MinIO{client: client, cvBucket: bucket, cfg: cfg}
	if err := m.ensureBucketExists(context.Background(), bucket, cfg.Location); err != nil {
		return nil, fmt.Errorf("ensuring bucket %s exists: %w", bucket, err)
	}
	return m, nil
}

func (m *MinIO) ensureBucketExists(ctx context.Context, bucketName, location string) error {
	exists, err := m.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("checking bucket %s: %w", bucketName, err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location}); err != nil {
		return fmt.Errorf("creating bucket %s: %w", bucketName, err)
	}
	return nil
}

// UploadCVFile stores a CV under a key derived from the submission UUID
// and returns the object key.
func (m *MinIO) UploadCVFile(ctx context.Context, submissionUUID, fileExt string, reader io.Reader, fileSize int64) (string, error) {
	objectKey := fmt.Sprintf("cv/%s%s", submissionUUID, fileExt)
	_, err := m.client.PutObject(ctx, m.cvBucket, objectKey, reader, fileSize, minio.PutObjectOptions{
		ContentType: contentTypeForExt(fileExt),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", objectKey, err)
	}
	return objectKey, nil
}

// GetCVFile downloads a stored CV file.
func (m *MinIO) GetCVFile(ctx context.Context, objectKey string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.cvBucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", objectKey, err)
	}
	defer obj.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, obj); err != nil {
		return nil, fmt.Errorf("reading %s: %w", objectKey, err)
	}
	return buf.Bytes(), nil
}

// DeleteCVFile removes a stored CV file.
func (m *MinIO) DeleteCVFile(ctx context.Context, objectKey string) error {
	if err := m.client.RemoveObject(ctx, m.cvBucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("deleting %s: %w", objectKey, err)
	}
	return nil
}

// GetPresignedURL returns a time-limited download URL for a stored CV.
func (m *MinIO) GetPresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.cvBucket, objectKey, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presigning %s: %w", objectKey, err)
	}
	return u.String(), nil
}

func contentTypeForExt(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
