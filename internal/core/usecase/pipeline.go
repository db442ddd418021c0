package usecase

import (
	"context"

	"github.com/pancudaniel7/ccloud-producer/internal/core/entity"
	"github.com/pancudaniel7/ccloud-producer/internal/core/port"
	"github.com/pancudaniel7/ccloud-producer/internal/pkg/apperr"
	"github.com/pancudaniel7/ccloud-producer/internal/pkg/applog"
	"github.com/pancudaniel7/ccloud-producer/internal/pkg/metrics"
)

// Pipeline runs the broker side of a resolved configuration: topic first, then the producer batch.
type Pipeline struct {
	log          applog.AppLogger
	factory      port.ClientFactory
	producerOpts []ProducerOption
}

func NewPipeline(log applog.AppLogger, factory port.ClientFactory, opts ...ProducerOption) *Pipeline {
	if log == nil {
		log = applog.Nop{}
	}
	return &Pipeline{log: log, factory: factory, producerOpts: opts}
}

// Execute provisions cfg.Topic and produces the batch. Nothing is produced when provisioning fails.
func (p *Pipeline) Execute(ctx context.Context, cfg entity.Configuration, onDelivery DeliveryHandler) (Summary, error) {
	if onDelivery == nil {
		onDelivery = LogDeliveryReport(p.log)
	}

	if err := p.ensureTopic(ctx, cfg); err != nil {
		metrics.App().ErrorsTotal.WithLabelValues(metrics.ComponentAdmin, "provision").Inc()
		return Summary{}, err
	}

	connector, err := p.factory.NewProducerConnector(cfg)
	if err != nil {
		metrics.App().ErrorsTotal.WithLabelValues(metrics.ComponentProducer, "init").Inc()
		return Summary{}, apperr.NewConnectionErr("failed to init producer", err)
	}

	svc := NewProducerService(p.log, connector, p.producerOpts...)
	summary, err := svc.Run(ctx, cfg.Topic, cfg.FlushTimeout(), onDelivery)
	if err != nil {
		metrics.App().ErrorsTotal.WithLabelValues(metrics.ComponentProducer, "run").Inc()
		return summary, err
	}
	if summary.Failed > 0 {
		metrics.App().WarningsTotal.WithLabelValues(metrics.ComponentProducer, "delivery").Add(float64(summary.Failed))
	}
	return summary, nil
}

func (p *Pipeline) ensureTopic(ctx context.Context, cfg entity.Configuration) error {
	prov, err := p.factory.NewTopicProvisioner(cfg)
	if err != nil {
		return apperr.NewTopicProvisionErr(cfg.Topic, "failed to init admin client", err)
	}
	defer prov.Close()

	if err := prov.EnsureTopic(ctx, cfg.Topic); err != nil {
		p.log.Error("Failed to ensure topic", "topic", cfg.Topic, "err", err)
		return err
	}
	return nil
}
