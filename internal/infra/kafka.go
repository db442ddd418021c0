package infra

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/pancudaniel7/ccloud-producer/internal/adapter/kafka"
	"github.com/pancudaniel7/ccloud-producer/internal/core/entity"
	"github.com/pancudaniel7/ccloud-producer/internal/core/port"
	"github.com/pancudaniel7/ccloud-producer/internal/pkg/applog"
)

// KafkaFactory wires the franz-go adapters from a resolved configuration.
type KafkaFactory struct {
	log      applog.AppLogger
	validate *validator.Validate
}

func NewKafkaFactory(log applog.AppLogger, v *validator.Validate) *KafkaFactory {
	if v == nil {
		v = validator.New()
	}
	return &KafkaFactory{log: log, validate: v}
}

func (f *KafkaFactory) NewTopicProvisioner(cfg entity.Configuration) (port.TopicProvisioner, error) {
	admin, err := kafka.NewTopicAdmin(f.log, kafkaConfig(cfg), f.validate)
	if err != nil {
		return nil, fmt.Errorf("infra: failed to init topic admin: %w", err)
	}
	return admin, nil
}

func (f *KafkaFactory) NewProducerConnector(cfg entity.Configuration) (port.ProducerConnector, error) {
	conn, err := kafka.NewConnector(f.log, kafkaConfig(cfg), f.validate)
	if err != nil {
		return nil, fmt.Errorf("infra: failed to init producer connector: %w", err)
	}
	return conn, nil
}

func kafkaConfig(cfg entity.Configuration) kafka.Config {
	return kafka.Config{
		Brokers:          cfg.Brokers(),
		ClientID:         cfg.ClientID,
		SecurityProtocol: cfg.SecurityProtocol,
		SASLMechanism:    cfg.SASLMechanisms,
		Username:         cfg.SASLUsername,
		Password:         cfg.SASLPassword,
	}
}
