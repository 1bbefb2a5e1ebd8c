package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
	"userapi/internal/core/domain/cache"
	e "userapi/internal/core/domain/errors"

	"github.com/go-redis/redis/v9"
)

type Redis struct {
	redisClient redis.Cmdable
	prefix      string
}

func NewRedis(redisClient redis.Cmdable, prefix string) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	return &Redis{redisClient: redisClient, prefix: prefix}
}

func (r *Redis) GetStrings(ctx context.Context, key string) ([]string, error) {
	raw, err := r.redisClient.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cache.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	values := []string{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (r *Redis) SetStrings(ctx context.Context, key string, values []string, ttl time.Duration) error {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return r.redisClient.Set(ctx, r.prefix+key, raw, ttl).Err()
}
