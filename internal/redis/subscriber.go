package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Subscriber pattern-subscribes to channels and hands every message to a callback.
type Subscriber struct {
	client redis.UniversalClient
}

func NewSubscriber(client redis.UniversalClient) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe blocks until ctx is cancelled or the connection fails.
// Cancellation is not reported as an error.
func (s *Subscriber) Subscribe(ctx context.Context, patterns []string, handler func(channel string, payload []byte)) error {
	sub := s.client.PSubscribe(ctx, patterns...)
	defer sub.Close()

	// Wait for the subscription confirmation so callers know we are listening.
	if _, err := sub.Receive(ctx); err != nil {
		return ignoreCancel(ctx, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return errors.New("redis subscription closed")
			}
			handler(msg.Channel, []byte(msg.Payload))
		}
	}
}

func ignoreCancel(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return nil
	}
	return err
}
