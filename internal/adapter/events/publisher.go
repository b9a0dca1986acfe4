package events

import (
	"context"

	"github.com/anrodrig/comanda/internal/domain/model"
)

// Publisher notifies external consumers about order lifecycle events.
type Publisher interface {
	OrderCreated(ctx context.Context, order *model.Order) error
	OrderStatusChanged(ctx context.Context, order *model.Order, from model.OrderStatus) error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) OrderCreated(context.Context, *model.Order) error {
	return nil
}

func (NoopPublisher) OrderStatusChanged(context.Context, *model.Order, model.OrderStatus) error {
	return nil
}
