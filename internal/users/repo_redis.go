package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepo keeps one JSON document per account under "account:{id}".
type RedisRepo struct {
	Client redis.UniversalClient
	Now    func() time.Time
}

func accountKey(userID string) string { return "account:" + userID }

func (r *RedisRepo) now() time.Time {
	if r.Now != nil {
		return r.Now().UTC()
	}
	return time.Now().UTC()
}

func (r *RedisRepo) Upsert(ctx context.Context, user User) error {
	now := r.now()
	existing, err := r.GetByID(ctx, user.ID)
	switch {
	case errors.Is(err, ErrNotFound):
		user.CreatedAt = now
	case err != nil:
		return err
	default:
		user.CreatedAt = existing.CreatedAt
	}
	user.UpdatedAt = now

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return r.Client.Set(ctx, accountKey(user.ID), raw, 0).Err()
}

func (r *RedisRepo) GetByID(ctx context.Context, userID string) (User, error) {
	raw, err := r.Client.Get(ctx, accountKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	var user User
	if err := json.Unmarshal(raw, &user); err != nil {
		return User{}, fmt.Errorf("decode user: %w", err)
	}
	return user, nil
}
