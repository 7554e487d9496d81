package resumes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisRepo stores each record as JSON under resume:{userID}.
type RedisRepo struct {
	Client redis.UniversalClient
}

func redisKey(userID string) string {
	return "resume:" + userID
}

func (r *RedisRepo) Get(ctx context.Context, userID string) (Record, error) {
	raw, err := r.Client.Get(ctx, redisKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("redis get resume: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Record{}, fmt.Errorf("decode resume: %w", err)
	}
	return rec, nil
}

func (r *RedisRepo) Store(ctx context.Context, userID string, rec Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode resume: %w", err)
	}
	if err := r.Client.Set(ctx, redisKey(userID), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set resume: %w", err)
	}
	return nil
}
