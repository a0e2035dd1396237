package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/redis/go-redis/v9"
)

// LookupCount is how often one champion has been looked up.
type LookupCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// LookupStats counts champion lookups by NameKey. Counts live in memory and,
// when Redis is enabled, in a sorted set shared by every front-end process.
type LookupStats struct {
	redis  *RedisClient
	key    string
	counts map[string]int64
	mu     sync.RWMutex
}

// NewLookupStats creates a lookup counter stored under key.
func NewLookupStats(redis *RedisClient, key string) *LookupStats {
	return &LookupStats{
		redis:  redis,
		key:    key,
		counts: make(map[string]int64),
	}
}

// Record adds one lookup of nameKey.
func (s *LookupStats) Record(ctx context.Context, nameKey string) error {
	if nameKey == "" {
		return nil
	}

	s.mu.Lock()
	s.counts[nameKey]++
	s.mu.Unlock()

	if !s.redis.Enabled() {
		return nil
	}
	return s.redis.client.ZIncrBy(ctx, s.redis.Key(s.key), 1, nameKey).Err()
}

// Top returns the n most looked-up keys, highest first. Ties are broken by
// key. n <= 0 returns every key.
func (s *LookupStats) Top(ctx context.Context, n int) ([]LookupCount, error) {
	if s.redis.Enabled() {
		stop := int64(n - 1)
		if n <= 0 {
			stop = -1
		}
		zs, err := s.redis.client.ZRevRangeWithScores(ctx, s.redis.Key(s.key), 0, stop).Result()
		if err != nil {
			return nil, err
		}
		return fromZ(zs), nil
	}

	s.mu.RLock()
	out := make([]LookupCount, 0, len(s.counts))
	for k, c := range s.counts {
		out = append(out, LookupCount{Key: k, Count: c})
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// Count returns the number of distinct keys ever looked up.
func (s *LookupStats) Count(ctx context.Context) (int64, error) {
	if s.redis.Enabled() {
		return s.redis.client.ZCard(ctx, s.redis.Key(s.key)).Result()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.counts)), nil
}

func fromZ(zs []redis.Z) []LookupCount {
	out := make([]LookupCount, 0, len(zs))
	for _, z := range zs {
		member, _ := z.Member.(string)
		out = append(out, LookupCount{Key: member, Count: int64(z.Score)})
	}
	return out
}
