package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"bookhive/models"
	"bookhive/utils"
)

// RangeCache is a best-effort Redis cache for the public date-range
// availability read. Keys embed a per-profile version counter; any slot
// write bumps the counter, implicitly dropping every cached range for that
// profile without scanning keys. Cache failures are logged and treated as
// misses, never surfaced to the caller.
type RangeCache struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

func (c *RangeCache) versionKey(profileID string) string {
	return "availability:ver:" + profileID
}

func (c *RangeCache) rangeKey(ctx context.Context, profileID string, start, end time.Time) string {
	ver, err := c.Client.Get(ctx, c.versionKey(profileID)).Int64()
	if err != nil && err != redis.Nil {
		c.Logger.Warn("cache version read failed", zap.String("profile_id", profileID), zap.Error(err))
	}
	return fmt.Sprintf("availability:%s:v%d:%s:%s",
		profileID, ver, utils.FormatDate(start), utils.FormatDate(end))
}

// Get returns the cached range, or nil on any miss or error.
func (c *RangeCache) Get(ctx context.Context, profileID string, start, end time.Time) []models.DateAvailability {
	raw, err := c.Client.Get(ctx, c.rangeKey(ctx, profileID, start, end)).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		c.Logger.Warn("cache read failed", zap.String("profile_id", profileID), zap.Error(err))
		return nil
	}
	var out []models.DateAvailability
	if err := json.Unmarshal(raw, &out); err != nil {
		c.Logger.Warn("cache entry corrupt, ignoring", zap.String("profile_id", profileID), zap.Error(err))
		return nil
	}
	return out
}

// Set stores the computed range under the current profile version.
func (c *RangeCache) Set(ctx context.Context, profileID string, start, end time.Time, data []models.DateAvailability) {
	raw, err := json.Marshal(data)
	if err != nil {
		c.Logger.Warn("cache marshal failed", zap.String("profile_id", profileID), zap.Error(err))
		return
	}
	if err := c.Client.Set(ctx, c.rangeKey(ctx, profileID, start, end), raw, c.TTL).Err(); err != nil {
		c.Logger.Warn("cache write failed", zap.String("profile_id", profileID), zap.Error(err))
	}
}

// Invalidate bumps the profile's version counter, orphaning all cached
// ranges for it. Orphans age out via TTL.
func (c *RangeCache) Invalidate(ctx context.Context, profileID string) {
	if err := c.Client.Incr(ctx, c.versionKey(profileID)).Err(); err != nil {
		c.Logger.Warn("cache invalidation failed", zap.String("profile_id", profileID), zap.Error(err))
	}
}
