package redis

import (
	"context"
	"encoding/json"
	"time"
)

// DashboardCache keeps rendered dashboard aggregates per user for a
// short TTL so repeated dashboard loads do not rescan every session.
// Strictly best-effort: misses and errors fall through to the database.
type DashboardCache struct {
	client RedisClient
	ttl    time.Duration
}

func NewDashboardCache(client RedisClient, ttl time.Duration) *DashboardCache {
	return &DashboardCache{client: client, ttl: ttl}
}

func (c *DashboardCache) key(userID string) string { return "dashboard:" + userID }

func (c *DashboardCache) Store(ctx context.Context, userID string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(userID), data, c.ttl)
}

// Load unmarshals the cached dashboard into out; reports found=false on miss.
func (c *DashboardCache) Load(ctx context.Context, userID string, out any) (bool, error) {
	data, err := c.client.Get(ctx, c.key(userID))
	if err != nil {
		if IsNil(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false, err
	}
	return true, nil
}

// Invalidate drops the cached dashboard, e.g. after a turn is persisted.
func (c *DashboardCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID))
}
