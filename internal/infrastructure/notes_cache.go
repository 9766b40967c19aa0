package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	notesKeyPrefix = "notes"
	scanBatchSize  = 100
)

// ListKey identifies one cached page of an owner's notes. The owner id comes
// first so that InvalidateOwner can drop every page with one pattern.
func ListKey(ownerID uuid.UUID, offset, limit int, search string) string {
	return fmt.Sprintf("%s:%s:%d:%d:%s", notesKeyPrefix, ownerID, offset, limit, search)
}

func ownerPattern(ownerID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:*", notesKeyPrefix, ownerID)
}

// NotesCache wraps the Redis client with the list cache operations. A nil
// client turns every read into a miss and every write into a no-op.
type NotesCache struct {
	client *redis.Client
}

func NewNotesCache(client *redis.Client) *NotesCache {
	return &NotesCache{client: client}
}

func (c *NotesCache) Enabled() bool {
	return c.client != nil
}

func (c *NotesCache) GetList(ctx context.Context, key string) ([]byte, bool, error) {
	if c.client == nil {
		return nil, false, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (c *NotesCache) PutList(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, key, value, ttl).Err()
}

// InvalidateOwner deletes every cached page of the owner regardless of
// pagination or search term.
func (c *NotesCache) InvalidateOwner(ctx context.Context, ownerID uuid.UUID) error {
	if c.client == nil {
		return nil
	}

	iter := c.client.Scan(ctx, 0, ownerPattern(ownerID), scanBatchSize).Iterator()
	batch := make([]string, 0, scanBatchSize)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatchSize {
			if err := c.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return c.client.Del(ctx, batch...).Err()
	}
	return nil
}
