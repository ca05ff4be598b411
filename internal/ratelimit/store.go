package ratelimit

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// HitResult is the raw store outcome for one request attempt.
type HitResult struct {
	Count   int64
	Allowed bool
	// Oldest is the timestamp of the oldest entry still inside the window.
	// Zero when the window is empty. It determines when capacity frees up.
	Oldest time.Time
}

// Store records request timestamps per key over a sliding window. Injected
// into the limiter so tests and single-node deployments can run without
// Redis.
type Store interface {
	Hit(ctx context.Context, key string, limit int64, window time.Duration) (HitResult, error)
}

// slidingWindowScript atomically: drops expired entries, counts, admits if
// under the limit, and reports the oldest surviving entry.
// KEYS[1] = sorted set key
// ARGV[1] = window start (unix micro)
// ARGV[2] = now (unix micro)
// ARGV[3] = limit
// ARGV[4] = TTL seconds
// Returns: [count_after, 1=allowed/0=denied, oldest_score_or_0]
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local window_start = tonumber(ARGV[1])
local now = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)
local count = redis.call('ZCARD', key)

local allowed = 0
if count < limit then
    redis.call('ZADD', key, now, now .. ':' .. math.random(1000000))
    count = count + 1
    allowed = 1
end
redis.call('EXPIRE', key, ttl)

local oldest = 0
local entries = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
if entries[2] then
    oldest = tonumber(entries[2])
end

return {count, allowed, oldest}
`)

// RedisStore is the shared multi-instance backend, a sorted set per key.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Hit(ctx context.Context, key string, limit int64, window time.Duration) (HitResult, error) {
	now := time.Now()
	windowStart := now.Add(-window).UnixMicro()
	ttlSecs := int64(window.Seconds()) + 1

	raw, err := slidingWindowScript.Run(ctx, s.rdb, []string{"opticore:rl:" + key},
		windowStart, now.UnixMicro(), limit, ttlSecs,
	).Int64Slice()
	if err != nil {
		return HitResult{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(raw) < 3 {
		return HitResult{}, fmt.Errorf("rate limit script: short reply %v", raw)
	}

	result := HitResult{Count: raw[0], Allowed: raw[1] == 1}
	if raw[2] > 0 {
		result.Oldest = time.UnixMicro(raw[2])
	}
	return result, nil
}

// MemoryStore keeps per-key timestamp slices under one mutex. Suitable for
// tests and single-process deployments only.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string][]time.Time
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]time.Time), now: time.Now}
}

func (s *MemoryStore) Hit(_ context.Context, key string, limit int64, window time.Duration) (HitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-window)

	kept := s.entries[key][:0]
	for _, ts := range s.entries[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	allowed := int64(len(kept)) < limit
	if allowed {
		kept = append(kept, now)
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Before(kept[j]) })
	s.entries[key] = kept

	result := HitResult{Count: int64(len(kept)), Allowed: allowed}
	if len(kept) > 0 {
		result.Oldest = kept[0]
	}
	return result, nil
}
