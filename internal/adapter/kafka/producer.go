package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/pancudaniel7/ccloud-producer/internal/core/entity"
	"github.com/pancudaniel7/ccloud-producer/internal/core/port"
	"github.com/pancudaniel7/ccloud-producer/internal/pkg/apperr"
	"github.com/pancudaniel7/ccloud-producer/internal/pkg/applog"
	"github.com/pancudaniel7/ccloud-producer/internal/pkg/metrics"
)

type kgoClient interface {
	Produce(ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error))
	Flush(ctx context.Context) error
	Ping(ctx context.Context) error
	Close()
}

var newKgoClient = func(opts ...kgo.Opt) (kgoClient, error) {
	return kgo.NewClient(opts...)
}

// Connector opens producer sessions against the configured cluster.
type Connector struct {
	log applog.AppLogger
	cfg Config
}

func NewConnector(log applog.AppLogger, cfg Config, v *validator.Validate) (*Connector, error) {
	if log == nil {
		log = applog.Nop{}
	}
	cfg, err := normalize(cfg, v)
	if err != nil {
		return nil, err
	}
	return &Connector{log: log, cfg: cfg}, nil
}

// Connect builds the client and waits until a broker answers. Authentication
// and TLS failures surface here as a ConnectionErr; nothing is produced then.
func (c *Connector) Connect(ctx context.Context) (port.Producer, error) {
	opts, err := clientOpts(c.cfg, c.log)
	if err != nil {
		return nil, err
	}
	opts = append(opts, kgo.RequiredAcks(kgo.AllISRAcks()))

	client, err := newKgoClient(opts...)
	if err != nil {
		return nil, apperr.NewConnectionErr("failed to init kafka producer client", err)
	}
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, apperr.NewConnectionErr("kafka brokers not reachable", err)
	}

	c.log.Info("Producer connected", "brokers", c.cfg.Brokers, "security_protocol", c.cfg.SecurityProtocol)
	return &KafkaProducer{log: c.log, client: client, counts: metrics.Kafka()}, nil
}

// KafkaProducer adapts a franz-go client to port.Producer.
type KafkaProducer struct {
	log    applog.AppLogger
	client kgoClient
	counts *metrics.KafkaMetrics
}

// Produce enqueues rec and returns a future for its delivery report. franz-go
// invokes the promise exactly once, including for records failed by Close.
func (kp *KafkaProducer) Produce(ctx context.Context, rec entity.Record) <-chan entity.DeliveryReport {
	out := make(chan entity.DeliveryReport, 1)
	start := time.Now()
	kp.counts.ProduceAttemptsTotal.Inc()

	kr := &kgo.Record{Topic: rec.Topic, Key: rec.Key, Value: rec.Value}
	kp.client.Produce(ctx, kr, func(r *kgo.Record, err error) {
		kp.counts.DeliveryLatencyMS.Observe(float64(time.Since(start).Milliseconds()))
		if err != nil {
			kp.counts.ProduceErrorsTotal.WithLabelValues(errorType(err)).Inc()
			out <- entity.DeliveryReport{Record: rec, Err: apperr.NewDeliveryErr("record not confirmed by broker", err)}
			return
		}
		kp.counts.ProduceSuccessTotal.Inc()
		out <- entity.DeliveryReport{
			Record:    entity.Record{Topic: r.Topic, Key: r.Key, Value: r.Value},
			Partition: r.Partition,
			Offset:    r.Offset,
		}
	})
	return out
}

// Flush blocks until every buffered record has a delivery report or ctx is done.
func (kp *KafkaProducer) Flush(ctx context.Context) error {
	return kp.client.Flush(ctx)
}

// Close disconnects. Records still buffered fail with kgo.ErrClientClosed.
func (kp *KafkaProducer) Close() {
	kp.client.Close()
	kp.log.Debug("Producer client closed")
}

func errorType(err error) string {
	var ke *kerr.Error
	switch {
	case errors.Is(err, kgo.ErrClientClosed):
		return "client_closed"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &ke):
		return ke.Message
	default:
		return "other"
	}
}
