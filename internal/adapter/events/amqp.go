package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/anrodrig/comanda/internal/domain/model"
)

const publishTimeout = 5 * time.Second

// AMQPPublisher publishes order events to a RabbitMQ topic exchange with
// routing keys of the form orders.<event>.<local>.
type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// orderEvent is the wire format for order lifecycle events.
type orderEvent struct {
	Event          string    `json:"event"`
	OrderID        string    `json:"order_id"`
	Local          string    `json:"local"`
	DisplayNumber  int       `json:"display_number"`
	Total          float64   `json:"total"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// NewAMQPPublisher dials the broker and declares the topic exchange.
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPPublisher{conn: conn, channel: channel, exchange: exchange}, nil
}

// Close releases the channel and connection.
func (p *AMQPPublisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

func (p *AMQPPublisher) OrderCreated(ctx context.Context, order *model.Order) error {
	return p.publish(ctx, "created", orderEvent{
		Event:         "created",
		OrderID:       order.PublicID,
		Local:         order.Local,
		DisplayNumber: order.DisplayNumber,
		Total:         order.Total,
		Status:        string(order.Status),
		ScheduledAt:   order.ScheduledAt,
		OccurredAt:    time.Now().UTC(),
	})
}

func (p *AMQPPublisher) OrderStatusChanged(ctx context.Context, order *model.Order, from model.OrderStatus) error {
	return p.publish(ctx, "status_changed", orderEvent{
		Event:          "status_changed",
		OrderID:        order.PublicID,
		Local:          order.Local,
		DisplayNumber:  order.DisplayNumber,
		Total:          order.Total,
		Status:         string(order.Status),
		PreviousStatus: string(from),
		ScheduledAt:    order.ScheduledAt,
		OccurredAt:     time.Now().UTC(),
	})
}

func (p *AMQPPublisher) publish(ctx context.Context, event string, payload orderEvent) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	routingKey := fmt.Sprintf("orders.%s.%s", event, payload.Local)
	return p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		DeliveryMode:  amqp.Persistent,
		ContentType:   "application/json",
		Body:          body,
		CorrelationId: payload.OrderID,
		Timestamp:     payload.OccurredAt,
	})
}
