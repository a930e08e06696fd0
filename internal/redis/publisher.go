package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Publisher sends raw event payloads with PUBLISH. It satisfies events.Transport.
type Publisher struct {
	client redis.UniversalClient
}

func NewPublisher(client redis.UniversalClient) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.client.Publish(ctx, channel, payload).Err()
}
