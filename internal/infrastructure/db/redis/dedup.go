package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const notifyTTL = time.Hour

// DedupGuard keeps the booking notifier from notifying twice for the same
// event occurrence. Key format: notify:<event>:<booking_id>
type DedupGuard struct {
	client *redis.Client
}

// NewDedupGuard creates a DedupGuard wrapping the given Redis client.
func NewDedupGuard(client *redis.Client) *DedupGuard {
	return &DedupGuard{client: client}
}

// Seen reports whether a notification for this event occurrence already went out.
func (d *DedupGuard) Seen(ctx context.Context, event, id string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(event, id)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this event occurrence was notified (expires after notifyTTL).
func (d *DedupGuard) Mark(ctx context.Context, event, id string) error {
	return d.client.Set(ctx, d.key(event, id), "1", notifyTTL).Err()
}

func (d *DedupGuard) key(event, id string) string {
	return fmt.Sprintf("notify:%s:%s", event, id)
}
