package media

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"github.com/d60-Lab/vidhub/config"
)

const defaultRegion = "us-east-1"

// MinioStore S3 兼容对象存储
type MinioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewMinioStore(cfg config.MediaConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "minio client")
	}
	base := cfg.PublicBaseURL
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)
	}
	return &MinioStore{client: client, bucket: cfg.Bucket, baseURL: base}, nil
}

// EnsureBucket 存储桶不存在时创建
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return errors.Wrap(err, "check bucket")
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: defaultRegion}); err != nil {
		return errors.Wrap(err, "create bucket")
	}
	return nil
}

func (s *MinioStore) Upload(ctx context.Context, u Upload) (Ref, error) {
	key := objectKey(u)
	size := u.Size
	if size <= 0 {
		size = -1
	}
	if _, err := s.client.PutObject(ctx, s.bucket, key, u.Body, size, minio.PutObjectOptions{ContentType: u.ContentType}); err != nil {
		return Ref{}, errors.Wrapf(ErrUploadFailed, "put %s: %v", key, err)
	}
	return Ref{Key: key, URL: publicURL(s.baseURL, s.bucket, key)}, nil
}

func (s *MinioStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return errors.Wrapf(s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}), "remove %s", key)
}
