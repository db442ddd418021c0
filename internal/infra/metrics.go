package infra

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/push"

	imetrics "github.com/pancudaniel7/ccloud-producer/internal/pkg/metrics"
)

const metricsJob = "ccloud_producer"

var (
	metricsOnce  sync.Once
	promRegistry *prometheus.Registry
)

// InitMetrics creates the registry all application metrics register into.
// It must run before the first imetrics.App() or imetrics.Kafka() call.
// Later calls return the same registry; only the first version is recorded.
func InitMetrics(version string) *prometheus.Registry {
	metricsOnce.Do(func() {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		bi := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "service_build_info", Help: "build info"}, []string{"version"})
		reg.MustRegister(bi)
		bi.WithLabelValues(version).Set(1)

		imetrics.UseRegisterer(reg)
		_ = imetrics.App()
		_ = imetrics.Kafka()
		promRegistry = reg
	})
	return promRegistry
}

// PushMetrics sends everything in g to a Prometheus Pushgateway. An empty url is a no-op.
func PushMetrics(ctx context.Context, url string, g prometheus.Gatherer) error {
	if url == "" {
		return nil
	}
	if err := push.New(url, metricsJob).Gatherer(g).PushContext(ctx); err != nil {
		return fmt.Errorf("infra: failed to push metrics: %w", err)
	}
	return nil
}
