package usecase

import (
	"errors"
	"io"
	"strings"

	"github.com/pancudaniel7/ccloud-producer/internal/core/entity"
	"github.com/pancudaniel7/ccloud-producer/internal/pkg/apperr"
	"github.com/spf13/pflag"
)

// newFlagSet declares the options the resolver understands. Anything else is passed through.
func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("ccloud-producer", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.StringP(entity.KeyConfig, "f", "", "The path to your Confluent Cloud configuration file")
	fs.StringP(entity.KeyTopic, "t", "", "The topic name on which to operate")
	fs.String("log-level", "", "Log level (trace, debug, info, warn, error)")
	return fs
}

// parseArgs turns command-line arguments into a flat option map.
//
// Only options that were actually given are present. A value flag that ends the
// argument list without a value counts as not given. Unknown flags are kept as
// name -> value, with bare unknown flags mapped to "true". A help request
// returns pflag.ErrHelp unwrapped.
func parseArgs(args []string) (map[string]any, error) {
	fs := newFlagSet()
	args = dropDanglingValueFlag(fs, args)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		return nil, apperr.NewInvalidArgErr("failed to parse command-line arguments", err)
	}

	opts := collectPassthrough(fs, args)
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "log-level":
			opts[entity.KeyLogLevel] = f.Value.String()
		default:
			opts[f.Name] = f.Value.String()
		}
	})
	return opts, nil
}

func dropDanglingValueFlag(fs *pflag.FlagSet, args []string) []string {
	if len(args) == 0 {
		return args
	}
	last := args[len(args)-1]
	if f := lookupFlag(fs, last); f != nil && !strings.Contains(last, "=") {
		return args[:len(args)-1]
	}
	return args
}

func lookupFlag(fs *pflag.FlagSet, arg string) *pflag.Flag {
	switch {
	case strings.HasPrefix(arg, "--"):
		name, _, _ := strings.Cut(arg[2:], "=")
		return fs.Lookup(name)
	case strings.HasPrefix(arg, "-") && len(arg) == 2:
		return fs.ShorthandLookup(arg[1:])
	}
	return nil
}

// collectPassthrough mirrors pflag's handling of unknown flags: "--k=v", "--k v"
// and bare "--k". Known flags and their values are skipped.
func collectPassthrough(fs *pflag.FlagSet, args []string) map[string]any {
	out := map[string]any{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			continue
		}

		if !strings.HasPrefix(arg, "--") {
			// Shorthand: -t value, -tvalue or -t=value.
			if fs.ShorthandLookup(arg[1:2]) != nil {
				if len(arg) == 2 {
					i++
				}
				continue
			}
		}

		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if name == "" {
			continue
		}
		if fs.Lookup(name) != nil {
			if !hasValue {
				i++
			}
			continue
		}
		if !hasValue {
			value = "true"
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				value = args[i+1]
				i++
			}
		}
		out[name] = value
	}
	return out
}
