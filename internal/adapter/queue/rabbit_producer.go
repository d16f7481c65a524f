package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dozirovkaa/shop-api/internal/usecase"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitProducer implements usecase.OrderEvents. The fulfillment service
// consumes order.created to start picking and packing.
type RabbitProducer struct {
	ch         *amqp.Channel
	exchange   string
	routingKey string
}

// NewRabbitProducer sets up the exchange, queue, and binding once at startup.
func NewRabbitProducer(ch *amqp.Channel, exchange, routingKey, queueName string) (*RabbitProducer, error) {
	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, routingKey, exchange, false, nil); err != nil {
		return nil, fmt.Errorf("queue bind: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		return nil, fmt.Errorf("enable confirm mode: %w", err)
	}

	return &RabbitProducer{ch: ch, exchange: exchange, routingKey: routingKey}, nil
}

func (p *RabbitProducer) PublishCreated(ctx context.Context, msg usecase.OrderCreatedMsg) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // survive broker restarts
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, pub); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

var _ usecase.OrderEvents = (*RabbitProducer)(nil)
