package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// versionTTL outlives any snapshot so an expired counter can never make an
// old snapshot look current again.
const versionTTL = 24 * time.Hour

// SlotCache keeps the booked instants of one venue-day. Only the
// availability read path uses it; bookings are always checked against
// the store.
//
// Every snapshot is tagged with the day's version. Invalidate bumps the
// version, so a snapshot read from the store before a booking committed
// is ignored even if it is written after the invalidation.
type SlotCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

type snapshot struct {
	Version int64       `json:"v"`
	Booked  []time.Time `json:"booked"`
}

func NewSlotCache(rdb redis.Cmdable, ttl time.Duration) *SlotCache {
	return &SlotCache{rdb: rdb, ttl: ttl}
}

func Key(venueID string, day time.Time) string {
	return fmt.Sprintf("availability:%s:%s", venueID, day.Format("2006-01-02"))
}

func VersionKey(venueID string, day time.Time) string {
	return Key(venueID, day) + ":version"
}

// Version returns the current version of the venue-day, 0 when never bumped.
func (c *SlotCache) Version(ctx context.Context, venueID string, day time.Time) (int64, error) {
	v, err := c.rdb.Get(ctx, VersionKey(venueID, day)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache version: %w", err)
	}
	return v, nil
}

// Get returns ok=false on a miss or when the stored snapshot is older than
// the current version.
func (c *SlotCache) Get(ctx context.Context, venueID string, day time.Time) ([]time.Time, bool, error) {
	vals, err := c.rdb.MGet(ctx, Key(venueID, day), VersionKey(venueID, day)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	raw, ok := vals[0].(string)
	if !ok {
		return nil, false, nil
	}

	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}

	var current int64
	if s, ok := vals[1].(string); ok {
		if current, err = strconv.ParseInt(s, 10, 64); err != nil {
			return nil, false, fmt.Errorf("cache decode version: %w", err)
		}
	}
	if snap.Version != current {
		return nil, false, nil
	}
	return snap.Booked, true, nil
}

// Set stores booked as the snapshot for version, as read from Version
// before the store was queried.
func (c *SlotCache) Set(ctx context.Context, venueID string, day time.Time, version int64, booked []time.Time) error {
	if booked == nil {
		booked = []time.Time{}
	}
	payload, err := json.Marshal(snapshot{Version: version, Booked: booked})
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, Key(venueID, day), string(payload), c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate bumps the day's version before dropping the snapshot.
func (c *SlotCache) Invalidate(ctx context.Context, venueID string, day time.Time) error {
	vkey := VersionKey(venueID, day)
	if err := c.rdb.Incr(ctx, vkey).Err(); err != nil {
		return fmt.Errorf("cache incr: %w", err)
	}
	if err := c.rdb.Expire(ctx, vkey, versionTTL).Err(); err != nil {
		return fmt.Errorf("cache expire: %w", err)
	}
	if err := c.rdb.Del(ctx, Key(venueID, day)).Err(); err != nil {
		return fmt.Errorf("cache del: %w", err)
	}
	return nil
}
