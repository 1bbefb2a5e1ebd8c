package cache

import (
	"context"
	"errors"
	"sync"
	"time"
)

type FakeCache struct {
	Values      map[string][]string
	TTLs        map[string]time.Duration
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeCache() *FakeCache {
	return &FakeCache{Values: make(map[string][]string), TTLs: make(map[string]time.Duration)}
}

func (c *FakeCache) GetStrings(ctx context.Context, key string) ([]string, error) {
	if c.ReturnError {
		return nil, errors.New("could not read from cache")
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	values, ok := c.Values[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return values, nil
}

func (c *FakeCache) SetStrings(ctx context.Context, key string, values []string, ttl time.Duration) error {
	if c.ReturnError {
		return errors.New("could not write to cache")
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	c.Values[key] = values
	c.TTLs[key] = ttl
	return nil
}
