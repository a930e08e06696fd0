package redis

import (
	"context"
	"testing"
	"time"

	"messagely/internal/events"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), Config{Host: mr.Host(), Port: mr.Port()}, time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, HealthCheck(context.Background(), client))
	return mr, client
}

func TestRateLimiter_FixedWindow(t *testing.T) {
	mr, client := newTestClient(t)
	limiter := NewRateLimiter(client, "auth", 2, time.Minute)
	ctx := context.Background()

	res, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)
	assert.Equal(t, time.Minute, res.ResetIn)
	assert.Equal(t, 2, res.Limit)

	res, err = limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)

	res, err = limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Greater(t, res.ResetIn, time.Duration(0))

	res, err = limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	mr.FastForward(61 * time.Second)

	res, err = limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)
}

func TestSubscriber_DeliversAndStopsOnCancel(t *testing.T) {
	_, client := newTestClient(t)
	pub := NewPublisher(client)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- NewSubscriber(client).Subscribe(ctx, []string{events.UserChannelPattern}, func(channel string, payload []byte) {
			if channel == events.UserChannel("bob") {
				received <- string(payload)
			}
		})
	}()

	require.Eventually(t, func() bool {
		if err := pub.Publish(context.Background(), events.UserChannel("bob"), []byte("evt")); err != nil {
			return false
		}
		select {
		case payload := <-received:
			return payload == "evt"
		case <-time.After(20 * time.Millisecond):
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Subscribe did not return after cancel")
	}
}
