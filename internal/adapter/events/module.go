package events

import (
	"context"

	"go.uber.org/fx"

	"github.com/anrodrig/comanda/internal/config"
)

// Module provides the order event publisher. Without a configured broker
// the no-op publisher is used and publishing is disabled.
var Module = fx.Provide(newPublisher)

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
}

func newPublisher(p publisherParams) (Publisher, error) {
	if p.Config.AMQPAddress == "" {
		return NoopPublisher{}, nil
	}

	publisher, err := NewAMQPPublisher(p.Config.AMQPAddress, p.Config.AMQPExchange)
	if err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			publisher.Close()
			return nil
		},
	})

	return publisher, nil
}
