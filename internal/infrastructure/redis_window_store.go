package infrastructure

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const rateLimitKeyPrefix = "rate_limit:"

// RedisWindowStore keeps each window in a hash with count and timestamp
// (unix milliseconds) fields. The key expires with the window.
type RedisWindowStore struct {
	client *redis.Client
}

func NewRedisWindowStore(client *redis.Client) *RedisWindowStore {
	return &RedisWindowStore{client: client}
}

func (s *RedisWindowStore) Get(ctx context.Context, client string) (Window, bool, error) {
	fields, err := s.client.HGetAll(ctx, rateLimitKeyPrefix+client).Result()
	if err != nil {
		return Window{}, false, err
	}
	if len(fields) == 0 {
		return Window{}, false, nil
	}

	count, err := strconv.Atoi(fields["count"])
	if err != nil {
		return Window{}, false, nil
	}
	ms, err := strconv.ParseInt(fields["timestamp"], 10, 64)
	if err != nil {
		return Window{}, false, nil
	}
	return Window{Count: count, Start: time.UnixMilli(ms)}, true, nil
}

func (s *RedisWindowStore) Reset(ctx context.Context, client string, start time.Time, ttl time.Duration) error {
	key := rateLimitKeyPrefix + client
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, "count", 1, "timestamp", start.UnixMilli())
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

func (s *RedisWindowStore) Increment(ctx context.Context, client string) error {
	return s.client.HIncrBy(ctx, rateLimitKeyPrefix+client, "count", 1).Err()
}
