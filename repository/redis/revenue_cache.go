package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/storefront/backend/domain"
)

// RevenueCache is a read-through cache for per-customer revenue reports.
// Entries are invalidated whenever an order is created or deleted for the
// customer; status changes do not move revenue between years.
type RevenueCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewRevenueCache creates a Redis-backed revenue report cache.
func NewRevenueCache(client *redislib.Client, ttl time.Duration) *RevenueCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RevenueCache{
		client: client,
		prefix: "revenue:",
		ttl:    ttl,
	}
}

// Get returns the cached report and whether the key was present. A cached
// empty report is a valid hit.
func (c *RevenueCache) Get(ctx context.Context, customerID string) ([]domain.RevenueRecord, bool, error) {
	result, err := c.client.Get(ctx, c.key(customerID)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}

	records := []domain.RevenueRecord{}
	if err := json.Unmarshal([]byte(result), &records); err != nil {
		return nil, false, err
	}
	return records, true, nil
}

func (c *RevenueCache) Set(ctx context.Context, customerID string, records []domain.RevenueRecord) error {
	if records == nil {
		records = []domain.RevenueRecord{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(customerID), payload, c.ttl).Err()
}

func (c *RevenueCache) Invalidate(ctx context.Context, customerID string) error {
	return c.client.Del(ctx, c.key(customerID)).Err()
}

func (c *RevenueCache) key(customerID string) string {
	return fmt.Sprintf("%s%s", c.prefix, customerID)
}
