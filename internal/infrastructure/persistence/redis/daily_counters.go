package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/quickbrain-hub/quickbrain-progress-hub/pkg/timeutil"
)

// DailyCounters keeps per-day play counters. Counters are maintained from
// session events and expire after TTLDailyCounters, so they are cheap
// operational telemetry rather than durable state.
type DailyCounters struct {
	cache *Cache
}

// NewDailyCounters creates a DailyCounters.
func NewDailyCounters(cache *Cache) *DailyCounters {
	return &DailyCounters{cache: cache}
}

func counterKey(day time.Time) string {
	return fmt.Sprintf("%s%s", PrefixCounters, day.In(timeutil.Zone()).Format("2006-01-02"))
}

// IncrementSessions bumps the session counter for the given day and
// refreshes its TTL. Returns the new counter value.
func (d *DailyCounters) IncrementSessions(ctx context.Context, day time.Time) (int64, error) {
	key := counterKey(day)
	n, err := d.cache.IncrBy(ctx, key, 1)
	if err != nil {
		return 0, err
	}
	if err := d.cache.Expire(ctx, key, TTLDailyCounters); err != nil {
		return n, err
	}
	return n, nil
}

// SessionsOn returns the session counter for the given day, zero when the
// counter is absent or expired.
func (d *DailyCounters) SessionsOn(ctx context.Context, day time.Time) (int64, error) {
	raw, err := d.cache.GetString(ctx, counterKey(day))
	if err != nil {
		if err == ErrCacheMiss {
			return 0, nil
		}
		return 0, err
	}

	var n int64
	if _, err := fmt.Sscanf(raw, "%d", &n); err != nil {
		return 0, nil
	}
	return n, nil
}
