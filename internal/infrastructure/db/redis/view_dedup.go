package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDedupTTL = 10 * time.Minute

// ViewDeduper suppresses repeat history writes for the same user and product
// within a short window. The history store upserts anyway; this just spares
// it the write traffic of a buyer flipping back and forth on one page.
type ViewDeduper struct {
	client *redis.Client
	ttl    time.Duration
}

// NewViewDeduper creates a deduper with the given window.
func NewViewDeduper(client *redis.Client, ttl time.Duration) *ViewDeduper {
	if ttl <= 0 {
		ttl = defaultDedupTTL
	}
	return &ViewDeduper{client: client, ttl: ttl}
}

// SeenRecently marks the (user, product) pair and reports whether it was
// already marked inside the window. Errors count as not seen so a Redis
// outage never drops history writes.
func (d *ViewDeduper) SeenRecently(ctx context.Context, userID, productID int64) bool {
	key := fmt.Sprintf("viewdedup:%d:%d", userID, productID)
	set, err := d.client.SetNX(ctx, key, 1, d.ttl).Result()
	if err != nil {
		return false
	}
	return !set
}
