package events

import (
	"context"
	"encoding/json"
	"fmt"
)

// Publisher delivers an event to the listeners of a channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, event Envelope) error
}

// Transport moves raw bytes to a channel. Implemented by the Redis publisher
// and by the in-process websocket hub.
type Transport interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type JSONPublisher struct {
	transport Transport
}

func NewJSONPublisher(transport Transport) *JSONPublisher {
	return &JSONPublisher{transport: transport}
}

func (p *JSONPublisher) Publish(ctx context.Context, channel string, event Envelope) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.transport.Publish(ctx, channel, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", channel, err)
	}
	return nil
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Envelope) error { return nil }
