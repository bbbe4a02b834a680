package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces citytable entries in a shared Redis.
const redisKeyPrefix = "citytable:page:"

// defaultRedisOpTimeout bounds each Redis round trip.
const defaultRedisOpTimeout = 2 * time.Second

// redisScanBatch is the COUNT hint used when iterating keys.
const redisScanBatch = 100

// RedisOptions configures NewRedisStore.
type RedisOptions struct {
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
	OpTimeout  time.Duration
}

// RedisStore keeps entries in Redis and relies on Redis expiry for TTL.
type RedisStore struct {
	client    *redis.Client
	ttl       time.Duration
	opTimeout time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed store. The connection is lazy; the
// first operation reports connectivity problems.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis address cannot be empty")
	}
	timeout := opts.OpTimeout
	if timeout <= 0 {
		timeout = defaultRedisOpTimeout
	}

	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		}),
		ttl:       time.Duration(opts.TTLSeconds) * time.Second,
		opTimeout: timeout,
	}, nil
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Get returns the entry for key or ErrCacheNotFound.
func (s *RedisStore) Get(key string) (*Entry, error) {
	if key == "" {
		return nil, ErrInvalidCacheKey
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()

	raw, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var entry Entry
	if unmarshalErr := json.Unmarshal(raw, &entry); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", unmarshalErr)
	}
	if entry.IsExpired() {
		return nil, ErrCacheExpired
	}
	return &entry, nil
}

// Set stores data under key with the configured TTL.
func (s *RedisStore) Set(key string, data json.RawMessage) error {
	if key == "" {
		return ErrInvalidCacheKey
	}
	entryData, err := json.Marshal(NewEntry(key, data, int(s.ttl/time.Second)))
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()
	if err := s.client.Set(ctx, redisKeyPrefix+key, entryData, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes key.
func (s *RedisStore) Delete(key string) error {
	if key == "" {
		return ErrInvalidCacheKey
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Clear removes every citytable entry.
func (s *RedisStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()

	keys, err := s.scanKeys(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Count returns the number of citytable entries.
func (s *RedisStore) Count() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()

	keys, err := s.scanKeys(ctx)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

// IsEnabled is always true; a disabled cache uses a disabled FileStore.
func (s *RedisStore) IsEnabled() bool {
	return true
}

// Close releases the connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) scanKeys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", redisScanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return keys, nil
}
