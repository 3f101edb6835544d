package detail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Sternrassler/population-report/pkg/population"
	"github.com/redis/go-redis/v9"
)

// RedisKeyPrefix prefixes every detail record key.
const RedisKeyPrefix = "population:detail"

// RedisSource reads detail records stored as JSON strings in Redis.
type RedisSource struct {
	redis *redis.Client
}

// NewRedisSource creates a Redis-backed detail source.
func NewRedisSource(redisClient *redis.Client) *RedisSource {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	return &RedisSource{redis: redisClient}
}

// Key returns the Redis key holding the record for a province and city.
// Format: population:detail:<province>:<city>
func Key(province, city string) string {
	return fmt.Sprintf("%s:%s:%s", RedisKeyPrefix, province, city)
}

// Lookup reads the record for the given province and city.
func (s *RedisSource) Lookup(ctx context.Context, province, city string) (*population.DetailRecord, error) {
	data, err := s.redis.Get(ctx, Key(province, city)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, &LookupError{Province: province, City: city, Err: fmt.Errorf("redis get: %w", err)}
	}

	var record population.DetailRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, &LookupError{Province: province, City: city, Err: fmt.Errorf("decode: %w", err)}
	}

	return &record, nil
}

// Store writes a record. It is used to seed Redis from other sources.
func (s *RedisSource) Store(ctx context.Context, province, city string, record population.DetailRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal detail record: %w", err)
	}
	if err := s.redis.Set(ctx, Key(province, city), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
