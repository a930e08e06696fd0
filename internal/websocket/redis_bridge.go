package websocket

import (
	"context"

	"messagely/internal/events"
)

// RedisBridge forwards events published by any instance to this instance's clients.
type RedisBridge struct {
	subscriber events.Subscriber
	hub        *Hub
}

func NewRedisBridge(subscriber events.Subscriber, hub *Hub) *RedisBridge {
	return &RedisBridge{subscriber: subscriber, hub: hub}
}

// Run blocks until ctx is cancelled or the subscription fails.
func (b *RedisBridge) Run(ctx context.Context) error {
	return b.subscriber.Subscribe(ctx, []string{events.UserChannelPattern}, func(channel string, payload []byte) {
		_ = b.hub.Publish(ctx, channel, payload)
	})
}
