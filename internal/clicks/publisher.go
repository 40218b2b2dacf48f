package clicks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"instrumatch-affiliate/config"
)

// Event records one affiliate click-through for downstream analytics.
type Event struct {
	EventID    string    `json:"event_id"`
	ProductID  int64     `json:"product_id"`
	StoreSlug  string    `json:"store_slug"`
	URL        string    `json:"url"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits click events to AMQP. Best effort: publish failures are
// logged and never block the redirect that triggered them. A nil channel
// (rabbitmq disabled) turns Publish into a no-op.
type Publisher struct {
	exchange   string
	routingKey string
	logger     *zap.SugaredLogger

	publish func(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

func NewPublisher(cfg *config.Config, ch *amqp.Channel, logger *zap.SugaredLogger) *Publisher {
	p := &Publisher{
		exchange:   cfg.RabbitMQ.Exchange,
		routingKey: cfg.RabbitMQ.RoutingKey,
		logger:     logger,
	}
	if ch != nil {
		p.publish = ch.PublishWithContext
	}
	return p
}

func (p *Publisher) Publish(ctx context.Context, productID int64, storeSlug, url string) {
	if p.publish == nil {
		return
	}

	ev := Event{
		EventID:    uuid.NewString(),
		ProductID:  productID,
		StoreSlug:  storeSlug,
		URL:        url,
		OccurredAt: time.Now().UTC(),
	}

	if err := p.publishEvent(ctx, ev); err != nil {
		p.logger.Warnw("click_event_publish_failed",
			"event_id", ev.EventID,
			"product_id", productID,
			"store", storeSlug,
			"err", err,
		)
		return
	}

	p.logger.Infow("click_event_published",
		"event_id", ev.EventID,
		"product_id", productID,
		"store", storeSlug,
	)
}

func (p *Publisher) publishEvent(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal click event: %w", err)
	}

	return p.publish(ctx, p.exchange, p.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    ev.EventID,
		Timestamp:    ev.OccurredAt,
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}
