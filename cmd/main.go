package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pancudaniel7/ccloud-producer/internal/adapter/configfile"
	"github.com/pancudaniel7/ccloud-producer/internal/core/usecase"
	"github.com/pancudaniel7/ccloud-producer/internal/infra"
	"github.com/pancudaniel7/ccloud-producer/internal/pkg/applog"
	"github.com/pancudaniel7/ccloud-producer/internal/pkg/metrics"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout io.Writer) int {
	reg := infra.InitMetrics(version)
	v := validator.New()

	logger := applog.NewAppDefaultLogger(preScanLogLevel(args))
	resolver := usecase.NewConfigResolver(logger, configfile.NewFileReader(), v)

	res, err := resolver.Resolve(args)
	if err != nil {
		metrics.App().RunsTotal.WithLabelValues("failed").Inc()
		metrics.App().ErrorsTotal.WithLabelValues(metrics.ComponentConfig, "resolve").Inc()
		logger.Error("Failed to resolve configuration", "err", err)
		return 1
	}
	if res.NeedsUsage() {
		metrics.App().RunsTotal.WithLabelValues("usage").Inc()
		fmt.Fprint(stdout, res.Usage)
		return 0
	}

	cfg := res.Config
	if cfg.LogLevel != "" {
		logger = applog.NewAppDefaultLogger(cfg.LogLevel)
	}
	defer pushMetrics(logger, cfg.MetricsPushURL, reg)

	pipeline := usecase.NewPipeline(logger, infra.NewKafkaFactory(logger, v))
	summary, err := pipeline.Execute(ctx, cfg, nil)
	if err != nil {
		metrics.App().RunsTotal.WithLabelValues("failed").Inc()
		logger.Error("Producer run failed", "topic", cfg.Topic, "err", err)
		return 1
	}

	metrics.App().RunsTotal.WithLabelValues("ok").Inc()
	logger.Info("Done", "topic", cfg.Topic, "produced", summary.Produced, "delivered", summary.Delivered, "failed", summary.Failed)
	return 0
}

// preScanLogLevel picks --log-level out of args so resolution itself can log at that level.
func preScanLogLevel(args []string) string {
	for i, a := range args {
		switch {
		case a == "--log-level" && i+1 < len(args):
			return args[i+1]
		case strings.HasPrefix(a, "--log-level="):
			return strings.TrimPrefix(a, "--log-level=")
		}
	}
	return ""
}

func pushMetrics(logger applog.AppLogger, url string, g prometheus.Gatherer) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := infra.PushMetrics(ctx, url, g); err != nil {
		logger.Warn("Metrics push failed", "url", url, "err", err)
	}
}
