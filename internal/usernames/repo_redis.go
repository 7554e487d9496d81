package usernames

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// createIfAbsentScript returns {username, status}: 1 created, 0 the user
// already had a username, -1 the name belongs to someone else.
const createIfAbsentScript = `
local existing = redis.call('GET', KEYS[1])
if existing then
  return {existing, 0}
end
local owner = redis.call('GET', KEYS[2])
if owner and owner ~= ARGV[1] then
  return {ARGV[2], -1}
end
redis.call('SET', KEYS[1], ARGV[2])
redis.call('SET', KEYS[2], ARGV[1])
return {ARGV[2], 1}
`

// RedisRepo keeps user:id:{userID} -> username and user:name:{username} -> userID.
type RedisRepo struct {
	Client redis.UniversalClient
}

func idKey(userID string) string     { return "user:id:" + userID }
func nameKey(username string) string { return "user:name:" + username }

func (r *RedisRepo) Lookup(ctx context.Context, userID string) (string, error) {
	return r.get(ctx, idKey(userID))
}

func (r *RedisRepo) UserIDFor(ctx context.Context, username string) (string, error) {
	return r.get(ctx, nameKey(username))
}

func (r *RedisRepo) get(ctx context.Context, key string) (string, error) {
	val, err := r.Client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, nil
}

func (r *RedisRepo) CreateIfAbsent(ctx context.Context, userID, username string) (string, bool, error) {
	if err := validate(userID, username); err != nil {
		return "", false, err
	}
	result, err := r.Client.Eval(ctx, createIfAbsentScript, []string{idKey(userID), nameKey(username)}, userID, username).Result()
	if err != nil {
		return "", false, fmt.Errorf("redis create username: %w", err)
	}
	reply, ok := result.([]interface{})
	if !ok || len(reply) != 2 {
		return "", false, fmt.Errorf("unexpected result type from username script")
	}
	name, _ := reply[0].(string)
	status, _ := reply[1].(int64)
	switch status {
	case 1:
		return name, true, nil
	case 0:
		return name, false, nil
	default:
		return "", false, ErrUsernameTaken
	}
}
