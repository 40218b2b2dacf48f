package clicks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"instrumatch-affiliate/config"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.RabbitMQ.Exchange = "events"
	cfg.RabbitMQ.RoutingKey = "affiliate.click"
	return cfg
}

func TestPublish_DisabledIsNoOp(t *testing.T) {
	t.Parallel()

	p := NewPublisher(newTestConfig(), nil, zap.NewNop().Sugar())

	// Must not panic with no channel wired.
	p.Publish(context.Background(), 42, "thomann", "https://tracked.example/1")
}

func TestPublish_SendsEvent(t *testing.T) {
	t.Parallel()

	var (
		gotExchange string
		gotKey      string
		gotMsg      amqp.Publishing
	)

	p := NewPublisher(newTestConfig(), nil, zap.NewNop().Sugar())
	p.publish = func(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
		gotExchange = exchange
		gotKey = key
		gotMsg = msg
		return nil
	}

	p.Publish(context.Background(), 42, "thomann", "https://tracked.example/1")

	require.Equal(t, "events", gotExchange)
	require.Equal(t, "affiliate.click", gotKey)
	require.Equal(t, "application/json", gotMsg.ContentType)

	var ev Event
	require.NoError(t, json.Unmarshal(gotMsg.Body, &ev))
	require.Equal(t, int64(42), ev.ProductID)
	require.Equal(t, "thomann", ev.StoreSlug)
	require.Equal(t, "https://tracked.example/1", ev.URL)
	require.NotEmpty(t, ev.EventID)
	require.Equal(t, ev.EventID, gotMsg.MessageId)
	require.False(t, ev.OccurredAt.IsZero())
}

func TestPublish_FailureDoesNotPanic(t *testing.T) {
	t.Parallel()

	p := NewPublisher(newTestConfig(), nil, zap.NewNop().Sugar())
	p.publish = func(context.Context, string, string, bool, bool, amqp.Publishing) error {
		return errors.New("broker gone")
	}

	p.Publish(context.Background(), 1, "acme", "https://acme.example/p")
}
