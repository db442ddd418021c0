package entity

import (
	"strings"
	"time"
)

// Configuration keys shared by the command line, the config file and the resolver.
const (
	KeyConfig           = "config"
	KeyTopic            = "topic"
	KeyLogLevel         = "log.level"
	KeyBootstrapServers = "bootstrap.servers"
	KeySASLUsername     = "sasl.username"
	KeySASLPassword     = "sasl.password"
	KeySecurityProtocol = "security.protocol"
	KeySASLMechanisms   = "sasl.mechanisms"
	KeyClientID         = "client.id"
	KeyFlushTimeoutMS   = "flush.timeout.ms"
	KeyMetricsPushURL   = "metrics.push.url"
)

// DefaultFlushTimeout bounds the final flush; it is effectively "wait for everything".
const DefaultFlushTimeout = 10_000_000 * time.Millisecond

// Configuration is the merged view of command-line options and file settings for a single run.
// Keys the program does not know about are kept in Extra.
type Configuration struct {
	ConfigPath string `mapstructure:"config" validate:"required,startsnotwith=-"`
	Topic      string `mapstructure:"topic" validate:"required,startsnotwith=-"`
	LogLevel   string `mapstructure:"log.level"`

	BootstrapServers string `mapstructure:"bootstrap.servers" validate:"required"`
	SASLUsername     string `mapstructure:"sasl.username" validate:"required"`
	SASLPassword     string `mapstructure:"sasl.password" validate:"required"`
	SecurityProtocol string `mapstructure:"security.protocol"`
	SASLMechanisms   string `mapstructure:"sasl.mechanisms"`
	ClientID         string `mapstructure:"client.id"`
	FlushTimeoutMS   int    `mapstructure:"flush.timeout.ms"`
	MetricsPushURL   string `mapstructure:"metrics.push.url"`

	Extra map[string]any `mapstructure:",remain"`
}

// Brokers splits bootstrap.servers on commas, dropping blanks.
func (c Configuration) Brokers() []string {
	var out []string
	for _, b := range strings.Split(c.BootstrapServers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// FlushTimeout returns the configured flush bound or DefaultFlushTimeout.
func (c Configuration) FlushTimeout() time.Duration {
	if c.FlushTimeoutMS <= 0 {
		return DefaultFlushTimeout
	}
	return time.Duration(c.FlushTimeoutMS) * time.Millisecond
}
