package checkpoint

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"regwatch/pkg/logger"
)

// Store persists the batch cursor: the name of the last fully processed
// archive. The cursor is an optimization for resuming long batch runs; the
// index idempotency gate remains the correctness guarantee, so every failure
// here degrades to "start from the beginning".
type Store struct {
	client *redis.Client
	key    string
	log    *logger.Logger
}

// NewStore creates a checkpoint Store. client may be nil, in which case the
// cursor is always absent and advances are no-ops.
func NewStore(client *redis.Client, key string, log *logger.Logger) *Store {
	return &Store{client: client, key: key, log: log}
}

// Last returns the stored archive name and whether one exists.
func (s *Store) Last(ctx context.Context) (string, bool) {
	if s.client == nil {
		return "", false
	}
	name, err := s.client.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		s.log.Warn(fmt.Sprintf("Failed to read checkpoint, starting from the beginning: %v", err))
		return "", false
	}
	return name, true
}

// Advance records archiveName as the last fully processed archive.
func (s *Store) Advance(ctx context.Context, archiveName string) {
	if s.client == nil {
		return
	}
	if err := s.client.Set(ctx, s.key, archiveName, 0).Err(); err != nil {
		s.log.Warn(fmt.Sprintf("Failed to advance checkpoint to '%s': %v", archiveName, err))
	}
}
