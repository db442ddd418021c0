package kafka

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/pancudaniel7/ccloud-producer/internal/pkg/apperr"
	"github.com/pancudaniel7/ccloud-producer/internal/pkg/applog"
	"github.com/pancudaniel7/ccloud-producer/internal/pkg/metrics"
)

type topicCreator interface {
	CreateTopic(ctx context.Context, partitions int32, replicationFactor int16, configs map[string]*string, topic string) (kadm.CreateTopicResponse, error)
	Close()
}

var newAdminClient = func(opts ...kgo.Opt) (topicCreator, error) {
	return kadm.NewOptClient(opts...)
}

// TopicAdmin creates topics through a dedicated admin connection.
type TopicAdmin struct {
	log    applog.AppLogger
	admin  topicCreator
	cfg    Config
	counts *metrics.KafkaMetrics
}

// NewTopicAdmin validates cfg and opens the admin client. The connection is
// established lazily by the first request.
func NewTopicAdmin(log applog.AppLogger, cfg Config, v *validator.Validate) (*TopicAdmin, error) {
	if log == nil {
		log = applog.Nop{}
	}
	cfg, err := normalize(cfg, v)
	if err != nil {
		return nil, err
	}
	opts, err := clientOpts(cfg, log)
	if err != nil {
		return nil, err
	}
	admin, err := newAdminClient(opts...)
	if err != nil {
		return nil, apperr.NewConnectionErr("failed to init kafka admin client", err)
	}
	return &TopicAdmin{log: log, admin: admin, cfg: cfg, counts: metrics.Kafka()}, nil
}

// EnsureTopic creates topic with the configured partition count and replication
// factor. A topic that already exists is treated as created.
func (ta *TopicAdmin) EnsureTopic(ctx context.Context, topic string) error {
	if topic == "" {
		return apperr.NewInvalidArgErr("topic is required", nil)
	}

	resp, err := ta.admin.CreateTopic(ctx, ta.cfg.Partitions, ta.cfg.ReplicationFactor, nil, topic)
	if err == nil {
		err = resp.Err
	}

	switch {
	case err == nil:
		ta.counts.TopicProvisionTotal.WithLabelValues("created").Inc()
		ta.log.Info("Created topic", "topic", topic, "partitions", ta.cfg.Partitions, "replication_factor", ta.cfg.ReplicationFactor)
		return nil
	case errors.Is(err, kerr.TopicAlreadyExists):
		ta.counts.TopicProvisionTotal.WithLabelValues("exists").Inc()
		ta.log.Debug("Topic already exists", "topic", topic)
		return nil
	default:
		ta.counts.TopicProvisionTotal.WithLabelValues("failed").Inc()
		msg := "failed to create topic"
		if resp.ErrMessage != "" {
			msg += ": " + resp.ErrMessage
		}
		return apperr.NewTopicProvisionErr(topic, msg, err)
	}
}

// Close releases the admin connection.
func (ta *TopicAdmin) Close() {
	if ta != nil && ta.admin != nil {
		ta.admin.Close()
	}
}
