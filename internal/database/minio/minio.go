package minio

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"regwatch/internal/config"
	"regwatch/pkg/logger"
)

// NewClient creates a MinIO client from the injected configuration and
// verifies connectivity with a bucket existence check.
func NewClient(ctx context.Context, cfg *config.MinIOConfig, log *logger.Logger) (*minio.Client, error) {
	c, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := c.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("MinIO health check failed: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket '%s' does not exist", cfg.Bucket)
	}

	log.Info(fmt.Sprintf("Connected to MinIO bucket '%s'", cfg.Bucket))
	return c, nil
}

// HealthCheck verifies the MinIO connection is usable.
func HealthCheck(ctx context.Context, client *minio.Client) error {
	if client == nil {
		return fmt.Errorf("minio client is not initialized")
	}
	if _, err := client.ListBuckets(ctx); err != nil {
		return fmt.Errorf("minio health check failed: %w", err)
	}
	return nil
}
