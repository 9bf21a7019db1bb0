package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nikeshgamal24/portfolio/pkg/constants"
	"github.com/nikeshgamal24/portfolio/pkg/errors"
	"github.com/nikeshgamal24/portfolio/pkg/logging"
	"github.com/nikeshgamal24/portfolio/pkg/projects"
)

// KeyPrefix namespaces every key written by the Redis store.
const KeyPrefix = "portfolio:repos:"

// Redis is a Store shared between processes, values are JSON encoded.
type Redis struct {
	client     *redis.Client
	defaultTTL time.Duration
}

// NewRedis creates a store over an existing client.
func NewRedis(client *redis.Client, defaultTTL time.Duration) *Redis {
	if defaultTTL <= 0 {
		defaultTTL = constants.DefaultCacheTTL
	}
	return &Redis{client: client, defaultTTL: defaultTTL}
}

// NewRedisFromURL parses a redis:// URL, connects and pings the server.
func NewRedisFromURL(ctx context.Context, url string, defaultTTL time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.NewConfigError("cache", "invalid redis url", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.WrapResource("connect", "redis", opts.Addr, err)
	}
	return NewRedis(client, defaultTTL), nil
}

func (r *Redis) key(k string) string {
	return KeyPrefix + k
}

// Get implements Store. Connection and decoding failures count as a miss.
func (r *Redis) Get(ctx context.Context, key string) ([]projects.Project, bool) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("Redis cache read failed")
		return nil, false
	}

	var list []projects.Project
	if err := json.Unmarshal(data, &list); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("Dropping undecodable cache entry")
		_ = r.client.Del(ctx, r.key(key)).Err()
		return nil, false
	}
	return list, true
}

// Set implements Store.
func (r *Redis) Set(ctx context.Context, key string, list []projects.Project, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	data, err := json.Marshal(list)
	if err != nil {
		return errors.WrapParse("json", key, err)
	}
	if err := r.client.Set(ctx, r.key(key), data, ttl).Err(); err != nil {
		return errors.WrapResource("write", "cache", key, err)
	}
	return nil
}

// Delete implements Store.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return errors.WrapResource("delete", "cache", key, err)
	}
	return nil
}

// Clear implements Store. Only keys under KeyPrefix are removed.
func (r *Redis) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, KeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return errors.WrapResource("scan", "cache", KeyPrefix, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return errors.WrapResource("clear", "cache", KeyPrefix, err)
	}
	return nil
}

// Stats implements StatsProvider.
func (r *Redis) Stats(ctx context.Context) Stats {
	count := 0
	iter := r.client.Scan(ctx, 0, KeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	return Stats{Backend: "redis", ItemCount: count}
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
