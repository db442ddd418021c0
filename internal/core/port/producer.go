package port

import (
	"context"

	"github.com/pancudaniel7/ccloud-producer/internal/core/entity"
)

// Producer is a connected, exclusively owned producer session.
//
// Produce only enqueues. The returned channel yields exactly one DeliveryReport
// once the broker confirms or rejects the record, or once Close discards it.
type Producer interface {
	Produce(ctx context.Context, rec entity.Record) <-chan entity.DeliveryReport
	Flush(ctx context.Context) error
	Close()
}

// ProducerConnector opens a Producer and blocks until it is ready or fails.
type ProducerConnector interface {
	Connect(ctx context.Context) (Producer, error)
}

// ClientFactory builds broker-facing components from a resolved configuration.
// The admin and producer connections it creates are independent of each other.
type ClientFactory interface {
	NewTopicProvisioner(cfg entity.Configuration) (TopicProvisioner, error)
	NewProducerConnector(cfg entity.Configuration) (ProducerConnector, error)
}
