// Package storage persists uploaded images in S3.
package storage

import (
	"bytes"
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	portssvc "github.com/inkwell-labs/blog_backend/internal/core/ports/services"
	"github.com/inkwell-labs/blog_backend/internal/platform/config"
)

// S3ImageStore implements the ImageStore port over an S3 bucket.
type S3ImageStore struct {
	client *s3.Client
	bucket string
	region string
}

var _ portssvc.ImageStore = (*S3ImageStore)(nil)

// NewS3ImageStore builds the store from config. It returns nil when no
// bucket is configured; callers treat a nil ImageStore as uploads disabled.
// Credentials come from the default AWS provider chain.
func NewS3ImageStore(ctx context.Context, cfg *config.Config) (*S3ImageStore, error) {
	if cfg.S3Bucket == "" {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3ImageStore{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.S3Bucket,
		region: cfg.S3Region,
	}, nil
}

// UploadImage stores the object and returns its public URL.
func (s *S3ImageStore) UploadImage(ctx context.Context, key string, contentType string, body []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image to s3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
