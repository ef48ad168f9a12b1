package archive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"

	"regwatch/pkg/logger"
)

// Store lists and downloads archive blobs from the configured bucket.
type Store struct {
	client *minio.Client
	bucket string
	log    *logger.Logger
}

// NewStore creates a Store over an established MinIO connection.
func NewStore(client *minio.Client, bucket string, log *logger.Logger) *Store {
	return &Store{client: client, bucket: bucket, log: log}
}

// ListArchives returns the names of all .zip objects in the bucket, in the
// listing order of the storage service.
func (s *Store) ListArchives(ctx context.Context) ([]string, error) {
	s.log.Info("Listing archives in the bucket")

	var names []string
	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", object.Err)
		}
		if strings.HasSuffix(object.Key, ".zip") {
			names = append(names, object.Key)
		}
	}
	return names, nil
}

// Download fetches the full content of one blob.
func (s *Store) Download(ctx context.Context, name string) ([]byte, error) {
	s.log.Info(fmt.Sprintf("Downloading archive: %s", name))

	object, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object '%s': %w", name, err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("failed to read object '%s': %w", name, err)
	}
	return data, nil
}
