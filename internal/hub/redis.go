package hub

import (
	"context"
	"encoding/json"
	"log"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const bridgeChannel = "memoria:events"

// envelope is what travels over the Redis channel between nodes.
type envelope struct {
	NodeID string `json:"node_id"`
	UserID uint   `json:"user_id"`
	Event  Event  `json:"event"`
}

// RedisBridge fans events out to hub instances on other nodes via Redis
// pub/sub, so a user connected to another node still gets live pushes.
type RedisBridge struct {
	client *redis.Client
	nodeID string
}

// NewRedisBridge connects to Redis and returns a bridge, or an error if Redis
// is unreachable. Callers may run without one.
func NewRedisBridge(addr string) (*RedisBridge, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisBridge{
		client: client,
		nodeID: uuid.NewString(),
	}, nil
}

// Publish sends an event envelope to the shared channel.
func (b *RedisBridge) Publish(userID uint, event Event) error {
	payload, err := json.Marshal(envelope{
		NodeID: b.nodeID,
		UserID: userID,
		Event:  event,
	})
	if err != nil {
		return err
	}
	return b.client.Publish(context.Background(), bridgeChannel, payload).Err()
}

// Run subscribes to the shared channel and delivers events published by other
// nodes to this node's local connections. Blocks until ctx is cancelled.
func (b *RedisBridge) Run(ctx context.Context, h *Hub) {
	sub := b.client.Subscribe(ctx, bridgeChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				log.Printf("hub: bad bridge payload: %v", err)
				continue
			}
			if env.NodeID == b.nodeID {
				continue // already delivered locally on publish
			}
			h.deliverLocal(env.UserID, env.Event)
		}
	}
}
