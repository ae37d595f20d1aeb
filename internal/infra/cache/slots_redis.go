package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/domain/availability"
)

const DefaultSlotTTL = 5 * time.Minute

// RedisSlotCache keys every entry with a per-worker version. Invalidate bumps
// the version, which orphans all of the worker's entries until they expire.
type RedisSlotCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
	log    *zap.Logger
}

var _ availability.SlotCache = (*RedisSlotCache)(nil)

func NewRedisSlotCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *RedisSlotCache {
	if ttl <= 0 {
		ttl = DefaultSlotTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisSlotCache{rdb: rdb, ttl: ttl, prefix: "slots", log: log}
}

func (c *RedisSlotCache) versionKey(workerID uint) string {
	return fmt.Sprintf("%s:ver:%d", c.prefix, workerID)
}

func (c *RedisSlotCache) entryKey(workerID uint, version int64, key availability.SlotKey) string {
	return fmt.Sprintf("%s:%d:v%d:%s:%s:%d", c.prefix, workerID, version, key.Zone, key.Date, key.Minutes)
}

func (c *RedisSlotCache) Version(ctx context.Context, workerID uint) (int64, bool) {
	v, err := c.rdb.Get(ctx, c.versionKey(workerID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		c.log.Warn("slot cache version read failed", zap.Uint("worker_id", workerID), zap.Error(err))
		return 0, false
	}
	return v, true
}

func (c *RedisSlotCache) Get(ctx context.Context, workerID uint, version int64, key availability.SlotKey) ([]time.Time, bool) {
	raw, err := c.rdb.Get(ctx, c.entryKey(workerID, version, key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("slot cache read failed", zap.Uint("worker_id", workerID), zap.Error(err))
		}
		return nil, false
	}

	var slots []time.Time
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

// Set stores slots under version. Entries written with a version that has
// since been bumped are never read again and expire with the TTL.
func (c *RedisSlotCache) Set(ctx context.Context, workerID uint, version int64, key availability.SlotKey, slots []time.Time) {
	if slots == nil {
		slots = []time.Time{}
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, c.entryKey(workerID, version, key), raw, c.ttl).Err(); err != nil {
		c.log.Warn("slot cache write failed", zap.Uint("worker_id", workerID), zap.Error(err))
	}
}

func (c *RedisSlotCache) Invalidate(ctx context.Context, workerID uint) {
	if err := c.rdb.Incr(ctx, c.versionKey(workerID)).Err(); err != nil {
		c.log.Warn("slot cache invalidation failed", zap.Uint("worker_id", workerID), zap.Error(err))
	}
}
