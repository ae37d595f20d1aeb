package availability

import (
	"context"
	"time"
)

// SlotKey identifies one cached slot list of a worker: a calendar date in
// Zone for a service of Minutes length.
type SlotKey struct {
	Date    string
	Minutes int
	Zone    string
}

// SlotCache stores computed slot lists under a per-worker version.
// Callers read Version before loading the data they compute from and write
// with that version, so a concurrent Invalidate orphans the write instead of
// hiding the change. Implementations never fail the caller: a miss or a
// backend error both read as "not cached".
type SlotCache interface {
	// Version returns the worker's current version, or false when the cache
	// is unusable for this call.
	Version(ctx context.Context, workerID uint) (int64, bool)
	Get(ctx context.Context, workerID uint, version int64, key SlotKey) ([]time.Time, bool)
	Set(ctx context.Context, workerID uint, version int64, key SlotKey, slots []time.Time)
	Invalidate(ctx context.Context, workerID uint)
}

// NoopCache disables caching.
type NoopCache struct{}

func (NoopCache) Version(context.Context, uint) (int64, bool)                   { return 0, false }
func (NoopCache) Get(context.Context, uint, int64, SlotKey) ([]time.Time, bool) { return nil, false }
func (NoopCache) Set(context.Context, uint, int64, SlotKey, []time.Time)        {}
func (NoopCache) Invalidate(context.Context, uint)                              {}
