package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pancudaniel7/ccloud-producer/internal/core/entity"
	"github.com/pancudaniel7/ccloud-producer/internal/core/port"
	"github.com/pancudaniel7/ccloud-producer/internal/pkg/apperr"
	"github.com/pancudaniel7/ccloud-producer/internal/pkg/applog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const usageTitle = "Confluent Cloud Go producer client"

const (
	missingArgsHeading   = "Some required arguments were not provided:"
	missingConfigHeading = "Some required configuration values were not provided:"
)

// RequiredField describes a setting that must be present, and how to ask for it.
type RequiredField struct {
	Field       string
	Key         string
	Pattern     string
	Description string
}

var requiredOpts = []RequiredField{
	{Field: "ConfigPath", Key: entity.KeyConfig, Pattern: "--config CONFIG", Description: "The path to your Confluent Cloud configuration file"},
	{Field: "Topic", Key: entity.KeyTopic, Pattern: "--topic TOPIC", Description: "The topic name on which to operate"},
}

var requiredConfig = []RequiredField{
	{Field: "BootstrapServers", Key: entity.KeyBootstrapServers, Pattern: "bootstrap.servers=<host1:port1...>", Description: "Your Confluent Cloud cluster bootstrap server(s). Separate multiple host/port pairs with commas."},
	{Field: "SASLUsername", Key: entity.KeySASLUsername, Pattern: "sasl.username=<string>", Description: "Your Confluent Cloud API key"},
	{Field: "SASLPassword", Key: entity.KeySASLPassword, Pattern: "sasl.password=<string>", Description: "Your Confluent Cloud API secret"},
}

// Resolution is the non-fatal outcome of resolving the configuration.
// When Usage is set the run must stop and print it; Config then holds whatever was merged so far.
type Resolution struct {
	Config entity.Configuration
	Usage  string
}

func (r Resolution) NeedsUsage() bool { return r.Usage != "" }

// ConfigResolver merges command-line options with the key=value config file they point at.
type ConfigResolver struct {
	log      applog.AppLogger
	reader   port.LineReader
	validate *validator.Validate
}

func NewConfigResolver(log applog.AppLogger, reader port.LineReader, v *validator.Validate) *ConfigResolver {
	if log == nil {
		log = applog.Nop{}
	}
	if v == nil {
		v = validator.New()
	}
	return &ConfigResolver{log: log, reader: reader, validate: v}
}

// Resolve returns a usable configuration, a usage-bearing Resolution when
// something required is missing, or an error for anything that is not the
// user's omission (unreadable file, malformed values).
func (cr *ConfigResolver) Resolve(args []string) (Resolution, error) {
	opts, err := parseArgs(args)
	if errors.Is(err, pflag.ErrHelp) {
		return Resolution{Usage: usage(missingArgsHeading, requiredOpts)}, nil
	}
	if err != nil {
		return Resolution{}, err
	}

	cliCfg, err := decodeConfig(opts)
	if err != nil {
		return Resolution{}, err
	}
	missing, err := cr.missingFields(cliCfg, requiredOpts)
	if err != nil {
		return Resolution{}, err
	}
	if len(missing) > 0 {
		cr.log.Debug("Missing required arguments", "missing", keysOf(missing))
		return Resolution{Config: cliCfg, Usage: usage(missingArgsHeading, missing)}, nil
	}

	lines, err := cr.reader.ReadAllLines(cliCfg.ConfigPath)
	if err != nil {
		return Resolution{}, err
	}
	fileSettings := parseConfigLines(lines)

	fileCfg, err := decodeConfig(toAnyMap(fileSettings))
	if err != nil {
		return Resolution{}, err
	}
	merged, err := decodeConfig(opts, toAnyMap(fileSettings))
	if err != nil {
		return Resolution{}, err
	}
	cr.log.Debug("Resolved configuration",
		"config", merged.ConfigPath,
		"topic", merged.Topic,
		"bootstrap_servers", merged.BootstrapServers,
		"security_protocol", merged.SecurityProtocol,
		"extra_keys", len(merged.Extra))

	// The file may override config or topic, so both are checked again on the merged view.
	missing, err = cr.missingFields(merged, requiredOpts)
	if err != nil {
		return Resolution{}, err
	}
	if len(missing) > 0 {
		cr.log.Debug("Config file blanked required arguments", "missing", keysOf(missing))
		return Resolution{Config: merged, Usage: usage(missingArgsHeading, missing)}, nil
	}

	// Connection settings must come from the file itself, not from passthrough flags.
	missing, err = cr.missingFields(fileCfg, requiredConfig)
	if err != nil {
		return Resolution{}, err
	}
	if len(missing) > 0 {
		cr.log.Debug("Missing required configuration values", "missing", keysOf(missing))
		return Resolution{Config: merged, Usage: usage(missingConfigHeading, missing)}, nil
	}
	return Resolution{Config: merged}, nil
}

// decodeConfig layers the given maps in order (later wins) and decodes them into a Configuration.
// Dotted keys stay flat because the key delimiter is not a dot.
func decodeConfig(layers ...map[string]any) (entity.Configuration, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	for _, layer := range layers {
		if err := v.MergeConfigMap(layer); err != nil {
			return entity.Configuration{}, apperr.NewInternalErr("failed to merge configuration", err)
		}
	}
	var cfg entity.Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return entity.Configuration{}, apperr.NewInvalidArgErr("invalid configuration value", err)
	}
	return cfg, nil
}

func (cr *ConfigResolver) missingFields(cfg entity.Configuration, fields []RequiredField) ([]RequiredField, error) {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}

	err := cr.validate.StructPartial(cfg, names...)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, apperr.NewInternalErr("failed to validate configuration", err)
	}

	failed := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		failed[fe.StructField()] = true
	}
	var missing []RequiredField
	for _, f := range fields {
		if failed[f.Field] {
			missing = append(missing, f)
		}
	}
	return missing, nil
}

func usage(heading string, missing []RequiredField) string {
	hints := make([]string, 0, len(missing))
	for _, m := range missing {
		hints = append(hints, fmt.Sprintf("    %s\n    %s", m.Pattern, m.Description))
	}
	return fmt.Sprintf("%s\n\n%s\n%s\n", usageTitle, heading, strings.Join(hints, "\n\n"))
}

func keysOf(fields []RequiredField) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Key)
	}
	return out
}

func toAnyMap(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
