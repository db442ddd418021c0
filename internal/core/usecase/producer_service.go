package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pancudaniel7/ccloud-producer/internal/core/entity"
	"github.com/pancudaniel7/ccloud-producer/internal/core/port"
	"github.com/pancudaniel7/ccloud-producer/internal/pkg/apperr"
	"github.com/pancudaniel7/ccloud-producer/internal/pkg/applog"
)

const (
	DefaultRecordCount = 10
	DefaultRecordKey   = "alice"
)

// DeliveryHandler receives one report per produced record, in acknowledgement order.
// Calls are serialized, so handlers need no locking of their own.
type DeliveryHandler func(entity.DeliveryReport)

// Summary counts the outcome of a producer run.
type Summary struct {
	Produced  int
	Delivered int
	Failed    int
}

type ProducerOption func(*ProducerService)

func WithRecordCount(n int) ProducerOption {
	return func(ps *ProducerService) {
		if n >= 0 {
			ps.count = n
		}
	}
}

func WithRecordKey(key string) ProducerOption { return func(ps *ProducerService) { ps.key = key } }

// ProducerService connects a producer, enqueues a fixed batch of count records,
// waits a bounded time for their delivery reports and disconnects.
type ProducerService struct {
	log       applog.AppLogger
	connector port.ProducerConnector
	count     int
	key       string
}

func NewProducerService(log applog.AppLogger, connector port.ProducerConnector, opts ...ProducerOption) *ProducerService {
	if log == nil {
		log = applog.Nop{}
	}
	ps := &ProducerService{log: log, connector: connector, count: DefaultRecordCount, key: DefaultRecordKey}
	for _, o := range opts {
		o(ps)
	}
	return ps
}

// Run produces the batch to topic. Connection failures abort before anything is
// produced. Per-record failures only show up in the delivery reports and the
// Summary. Records still buffered when the flush bound expires are failed by
// Close and reported like any other delivery error.
func (ps *ProducerService) Run(ctx context.Context, topic string, flushTimeout time.Duration, onDelivery DeliveryHandler) (Summary, error) {
	if topic == "" {
		return Summary{}, apperr.NewInvalidArgErr("topic is required", nil)
	}
	if flushTimeout <= 0 {
		flushTimeout = entity.DefaultFlushTimeout
	}

	producer, err := ps.connector.Connect(ctx)
	if err != nil {
		var ce *apperr.ConnectionErr
		if errors.As(err, &ce) {
			return Summary{}, err
		}
		return Summary{}, apperr.NewConnectionErr("failed to connect producer", err)
	}

	reports := make(chan entity.DeliveryReport, ps.count)
	done := make(chan Summary, 1)
	go func() {
		var s Summary
		for rep := range reports {
			if rep.Delivered() {
				s.Delivered++
			} else {
				s.Failed++
			}
			if onDelivery != nil {
				onDelivery(rep)
			}
		}
		done <- s
	}()

	var pending sync.WaitGroup
	produced := 0
	var buildErr error
	for idx := 0; idx < ps.count; idx++ {
		rec, err := newCountRecord(topic, ps.key, idx)
		if err != nil {
			buildErr = apperr.NewInternalErr("failed to build record", err)
			break
		}

		ps.log.Info("Producing record", "key", string(rec.Key), "value", string(rec.Value))
		future := producer.Produce(ctx, rec)
		produced++

		pending.Add(1)
		go func() {
			defer pending.Done()
			reports <- <-future
		}()
	}

	flushCtx, cancel := context.WithTimeout(ctx, flushTimeout)
	if err := producer.Flush(flushCtx); err != nil {
		ps.log.Warn("Flush did not complete, buffered records will be discarded", "timeout", flushTimeout, "err", err)
	}
	cancel()
	producer.Close()

	pending.Wait()
	close(reports)
	summary := <-done
	summary.Produced = produced

	ps.log.Info("Producer disconnected", "topic", topic, "produced", summary.Produced, "delivered", summary.Delivered, "failed", summary.Failed)
	return summary, buildErr
}

// LogDeliveryReport is the default DeliveryHandler: it logs each outcome.
func LogDeliveryReport(log applog.AppLogger) DeliveryHandler {
	return func(rep entity.DeliveryReport) {
		if !rep.Delivered() {
			log.Warn("Error producing record", "topic", rep.Record.Topic, "value", string(rep.Record.Value), "err", rep.Err)
			return
		}
		log.Info("Successfully produced record",
			"topic", rep.Record.Topic,
			"partition", rep.Partition,
			"offset", rep.Offset,
			"value", string(rep.Record.Value))
	}
}
