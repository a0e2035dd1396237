// Package storage provides Redis persistence for WR Counterpick.
package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisClient wraps go-redis client. A disabled client turns every call into
// a no-op so callers fall back to memory.
type RedisClient struct {
	client  *redis.Client
	enabled bool
	prefix  string
	log     logrus.FieldLogger
}

// NewRedisClient creates a new Redis client using go-redis. An empty URL or a
// failed ping yields a disabled client.
func NewRedisClient(ctx context.Context, redisURL, prefix string, log logrus.FieldLogger) *RedisClient {
	if redisURL == "" {
		log.Info("Redis not configured (REDIS_URL missing), using memory only")
		return &RedisClient{enabled: false, prefix: prefix, log: log}
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.WithError(err).Warn("failed to parse REDIS_URL, using memory only")
		return &RedisClient{enabled: false, prefix: prefix, log: log}
	}

	// Small footprint: one process, a few concurrent lookups.
	opt.PoolSize = 5
	opt.MinIdleConns = 1
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("Redis connection failed, using memory only")
		client.Close()
		return &RedisClient{enabled: false, prefix: prefix, log: log}
	}

	log.Info("Redis connected")
	return &RedisClient{
		client:  client,
		enabled: true,
		prefix:  prefix,
		log:     log,
	}
}

// Enabled reports whether calls reach Redis.
func (r *RedisClient) Enabled() bool {
	return r != nil && r.enabled
}

// Key namespaces k under the configured prefix.
func (r *RedisClient) Key(k string) string {
	if r == nil || r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

// Get retrieves a value from Redis. A missing key is "", nil.
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	if !r.Enabled() {
		return "", nil
	}
	val, err := r.client.Get(ctx, r.Key(key)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

// Set stores a value in Redis. A zero ttl means no expiration.
func (r *RedisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if !r.Enabled() {
		return nil
	}
	return r.client.Set(ctx, r.Key(key), value, ttl).Err()
}

// Close releases the connection pool.
func (r *RedisClient) Close() error {
	if !r.Enabled() {
		return nil
	}
	return r.client.Close()
}
