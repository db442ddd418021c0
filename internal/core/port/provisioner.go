package port

import "context"

// TopicProvisioner makes sure a topic exists. An existing topic is a success.
type TopicProvisioner interface {
	EnsureTopic(ctx context.Context, topic string) error
	Close()
}
