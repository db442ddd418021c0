package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type KafkaMetrics struct {
	ProduceAttemptsTotal prometheus.Counter
	ProduceSuccessTotal  prometheus.Counter
	ProduceErrorsTotal   *prometheus.CounterVec
	DeliveryLatencyMS    prometheus.Histogram
	TopicProvisionTotal  *prometheus.CounterVec
}

var (
	kafkaOnce sync.Once
	kafka     *KafkaMetrics
)

func Kafka() *KafkaMetrics {
	kafkaOnce.Do(func() {
		r := Registerer()
		kafka = &KafkaMetrics{
			ProduceAttemptsTotal: promauto.With(r).NewCounter(prometheus.CounterOpts{
				Name: "kafka_produce_attempts_total",
				Help: "records handed to the producer buffer",
			}),
			ProduceSuccessTotal: promauto.With(r).NewCounter(prometheus.CounterOpts{
				Name: "kafka_produce_success_total",
				Help: "records confirmed by the broker",
			}),
			ProduceErrorsTotal: promauto.With(r).NewCounterVec(
				prometheus.CounterOpts{Name: "kafka_produce_errors_total", Help: "unconfirmed records by type"},
				[]string{"type"},
			),
			DeliveryLatencyMS: promauto.With(r).NewHistogram(prometheus.HistogramOpts{
				Name:    "kafka_delivery_latency_ms",
				Help:    "time from enqueue to delivery report (ms)",
				Buckets: []float64{5, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000},
			}),
			TopicProvisionTotal: promauto.With(r).NewCounterVec(
				prometheus.CounterOpts{Name: "kafka_topic_provision_total", Help: "topic provisioning outcomes (created, exists, failed)"},
				[]string{"outcome"},
			),
		}
	})
	return kafka
}
