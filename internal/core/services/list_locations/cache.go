package listlocations

import (
	"context"
	"errors"
	"time"
	"userapi/internal/core/domain/cache"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/logging"
	"userapi/internal/core/services"
)

type serviceWithCache struct {
	log   logging.Logger
	cache cache.Cache
	ttl   time.Duration
	inner services.Service[Input, Result]
}

// WithCache serves repeated lookups from the cache for ttl.
// Cache failures are logged and the inner service is used instead.
func WithCache(
	log logging.Logger,
	c cache.Cache,
	ttl time.Duration,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if c == nil {
		panic(e.NewNilArgumentError("cache"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithCache{log: log, cache: c, ttl: ttl, inner: inner}
}

func (s *serviceWithCache) Run(ctx context.Context, input Input) (result Result, err error) {
	key := input.CacheKey()
	values, err := s.cache.GetStrings(ctx, key)
	if err == nil {
		return Result{Values: values}, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Warning(ctx, "Could not read locations from cache.", logging.Entry("key", key), logging.Entry("err", err))
	}

	result, err = s.inner.Run(ctx, input)
	if err != nil {
		return result, err
	}

	if err := s.cache.SetStrings(ctx, key, result.Values, s.ttl); err != nil {
		s.log.Warning(ctx, "Could not store locations in cache.", logging.Entry("key", key), logging.Entry("err", err))
	}
	return result, nil
}
