package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/redtable/pos-system/internal/core/ports"
)

// kitchenChannel is the pub/sub channel kitchen display clients subscribe to.
const kitchenChannel = "kitchen:orders"

// KitchenFeed publishes order lifecycle events to Redis pub/sub so kitchen
// display clients can follow the order flow live. Delivery is fire-and-forget:
// a display that is offline simply misses the event.
type KitchenFeed struct {
	client *redis.Client
}

func NewKitchenFeed(client *redis.Client) *KitchenFeed {
	return &KitchenFeed{client: client}
}

// Handle implements ports.OrderEventSink.
func (f *KitchenFeed) Handle(ctx context.Context, event ports.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}
	if err := f.client.Publish(ctx, kitchenChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}
	return nil
}
