package kafka

import (
	"crypto/tls"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sasl"
	"github.com/twmb/franz-go/pkg/sasl/plain"
	"github.com/twmb/franz-go/pkg/sasl/scram"

	"github.com/pancudaniel7/ccloud-producer/internal/pkg/apperr"
	"github.com/pancudaniel7/ccloud-producer/internal/pkg/applog"
)

// normalize fills defaults and validates cfg. Credentials without an explicit
// protocol mean SASL_SSL, which is what Confluent Cloud expects.
func normalize(cfg Config, v *validator.Validate) (Config, error) {
	cfg.SecurityProtocol = strings.ToUpper(strings.TrimSpace(cfg.SecurityProtocol))
	cfg.SASLMechanism = strings.ToUpper(strings.TrimSpace(cfg.SASLMechanism))
	if cfg.SecurityProtocol == "" {
		cfg.SecurityProtocol = protocolPlaintext
		if cfg.Username != "" {
			cfg.SecurityProtocol = protocolSASLSSL
		}
	}
	if cfg.SASLMechanism == "" {
		cfg.SASLMechanism = mechanismPlain
	}
	if cfg.ClientID == "" {
		cfg.ClientID = defaultClientID
	}
	if cfg.Partitions == 0 {
		cfg.Partitions = defaultPartitions
	}
	if cfg.ReplicationFactor == 0 {
		cfg.ReplicationFactor = defaultReplicationFactor
	}

	if v == nil {
		v = validator.New()
	}
	if err := v.Struct(cfg); err != nil {
		return cfg, apperr.NewInvalidArgErr("invalid kafka config", err)
	}
	if usesSASL(cfg.SecurityProtocol) && cfg.Username == "" {
		return cfg, apperr.NewInvalidArgErr("security protocol "+cfg.SecurityProtocol+" requires sasl.username and sasl.password", nil)
	}
	return cfg, nil
}

// clientOpts translates cfg into franz-go options shared by the admin and producer clients.
func clientOpts(cfg Config, log applog.AppLogger) ([]kgo.Opt, error) {
	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ClientID(cfg.ClientID),
	}
	if log != nil {
		opts = append(opts, kgo.WithLogger(newKgoLogger(log)))
	}

	if usesTLS(cfg.SecurityProtocol) {
		opts = append(opts, kgo.DialTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12}))
	}
	if usesSASL(cfg.SecurityProtocol) {
		mech, err := saslMechanism(cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, kgo.SASL(mech))
	}
	return opts, nil
}

func saslMechanism(cfg Config) (sasl.Mechanism, error) {
	switch cfg.SASLMechanism {
	case mechanismPlain, "":
		return plain.Auth{User: cfg.Username, Pass: cfg.Password}.AsMechanism(), nil
	case mechanismScramSHA256:
		return scram.Auth{User: cfg.Username, Pass: cfg.Password}.AsSha256Mechanism(), nil
	case mechanismScramSHA512:
		return scram.Auth{User: cfg.Username, Pass: cfg.Password}.AsSha512Mechanism(), nil
	}
	return nil, apperr.NewInvalidArgErr("unsupported sasl mechanism "+cfg.SASLMechanism, nil)
}

func usesTLS(protocol string) bool {
	return protocol == protocolSSL || protocol == protocolSASLSSL
}

func usesSASL(protocol string) bool {
	return protocol == protocolSASLPlaintext || protocol == protocolSASLSSL
}

// kgoLogger forwards franz-go's internal logging to the application logger.
// franz-go info messages are demoted to debug.
type kgoLogger struct {
	log applog.AppLogger
}

func newKgoLogger(log applog.AppLogger) kgo.Logger { return &kgoLogger{log: log} }

func (l *kgoLogger) Level() kgo.LogLevel { return kgo.LogLevelInfo }

func (l *kgoLogger) Log(level kgo.LogLevel, msg string, keyvals ...any) {
	switch level {
	case kgo.LogLevelError:
		l.log.Error(msg, keyvals...)
	case kgo.LogLevelWarn:
		l.log.Warn(msg, keyvals...)
	case kgo.LogLevelInfo:
		l.log.Debug(msg, keyvals...)
	default:
		l.log.Trace(msg, keyvals...)
	}
}
