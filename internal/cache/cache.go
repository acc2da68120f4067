// Package cache wraps the shared redis store behind the two small surfaces
// the rest of the code needs: a TTL key-value store and a durable FIFO list.
// Single-key redis commands are atomic, which is all the concurrency control
// either surface relies on.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/netly-app/netly/internal/config"
	appErr "github.com/netly-app/netly/internal/pkg/errors"
)

type Store struct {
	rdb *redis.Client
}

func New(cfg config.RedisConfig) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Store{rdb: rdb}, nil
}

// NewWithClient wraps an existing client. Used by tests with miniredis.
func NewWithClient(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", appErr.ErrNotFound
	}
	return value, err
}

// GetDel atomically reads and removes a key.
func (s *Store) GetDel(ctx context.Context, key string) (string, error) {
	value, err := s.rdb.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", appErr.ErrNotFound
	}
	return value, err
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// PushQueue appends a payload to the tail of a FIFO list.
func (s *Store) PushQueue(ctx context.Context, key string, payload []byte) error {
	return s.rdb.LPush(ctx, key, payload).Err()
}

// PopQueue takes the head of a FIFO list without blocking. Returns
// ErrNotFound when the list is empty.
func (s *Store) PopQueue(ctx context.Context, key string) ([]byte, error) {
	payload, err := s.rdb.RPop(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, appErr.ErrNotFound
	}
	return payload, err
}

// QueueLen reports the number of pending entries in a FIFO list.
func (s *Store) QueueLen(ctx context.Context, key string) (int64, error) {
	return s.rdb.LLen(ctx, key).Result()
}
