package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"jobboard/internal/config"
)

// ErrObjectNotFound is returned by Get when the key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// MinIO implements Storage on an S3-compatible backend (MinIO, AWS S3, ...).
// It is safe for concurrent use.
type MinIO struct {
	client *minio.Client
	bucket string
}

var _ Storage = (*MinIO)(nil)

// NewMinIO connects to the configured endpoint and creates the bucket if missing.
func NewMinIO(ctx context.Context, cfg config.MinIOConfig) (*MinIO, error) {
	switch {
	case cfg.Endpoint == "":
		return nil, fmt.Errorf("minio endpoint is required")
	case cfg.AccessKey == "" || cfg.SecretKey == "":
		return nil, fmt.Errorf("minio credentials are required")
	case cfg.Bucket == "":
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}
	return &MinIO{client: cli, bucket: cfg.Bucket}, nil
}

func (m *MinIO) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	info, err := m.client.PutObject(ctx, m.bucket, key, r, opt.Size, minio.PutObjectOptions{
		ContentType:  opt.ContentType,
		UserMetadata: opt.Metadata,
	})
	if err != nil {
		return ObjectInfo{}, err
	}
	// PutObject does not report LastModified.
	return objectInfo(key, minio.ObjectInfo{
		Size: info.Size, ETag: info.ETag, ContentType: opt.ContentType,
		LastModified: time.Now(), UserMetadata: opt.Metadata,
	}), nil
}

// Get opens key for streaming. The object is stat'ed first so a missing key
// surfaces as ErrObjectNotFound before any bytes are written to a response.
func (m *MinIO) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	st, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			err = ErrObjectNotFound
		}
		return nil, ObjectInfo{}, err
	}
	return obj, objectInfo(key, st), nil
}

func objectInfo(key string, st minio.ObjectInfo) ObjectInfo {
	return ObjectInfo{Key: key, Size: st.Size, ETag: st.ETag, ContentType: st.ContentType,
		LastModified: st.LastModified, Metadata: st.UserMetadata}
}

func (m *MinIO) Delete(ctx context.Context, key string) error {
	return m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
}
