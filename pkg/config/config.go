// Package config handles loading and validating configuration for the
// observable CLI from layered sources (defaults, YAML file, environment,
// flags).
package config

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

var validate = validator.New()

// DefaultConfig returns a Config populated with hardcoded default values.
// These serve as the baseline configuration if no other sources override
// them.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Bench: BenchConfig{
			Events:        4,
			SyncHandlers:  2,
			AsyncHandlers: 1,
			Triggers:      100,
			Payload:       "1",
		},
	}
}

// DefaultConfigAsMap converts DefaultConfig to a map for koanf's
// confmap.Provider, so koanf knows every key up front.
func DefaultConfigAsMap() map[string]interface{} {
	def := DefaultConfig()
	return map[string]interface{}{
		"log.level":  def.Log.Level,
		"log.format": def.Log.Format,

		"bench.events":         def.Bench.Events,
		"bench.sync_handlers":  def.Bench.SyncHandlers,
		"bench.async_handlers": def.Bench.AsyncHandlers,
		"bench.triggers":       def.Bench.Triggers,
		"bench.payload":        def.Bench.Payload,
	}
}

// Load merges all sources in priority order, unmarshals the result and
// validates it.
func Load(configPath string, flags *pflag.FlagSet) (Config, error) {
	return LoadSources(DefaultSources(configPath, flags))
}

// LoadSources merges the given sources in priority order.
func LoadSources(sources []Source) (Config, error) {
	sorted := append([]Source(nil), sources...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() < sorted[j].Priority()
	})

	k := koanf.New(".")
	for _, src := range sorted {
		if err := src.Load(k); err != nil {
			return Config{}, fmt.Errorf("config source %s: %w", src.Name(), err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// BindFlags defines command-line flags corresponding to configuration
// settings. Flag names match koanf key paths so the posflag provider can map
// them directly.
func BindFlags(flags *pflag.FlagSet) {
	def := DefaultConfig()

	flags.String("log.level", def.Log.Level, "Log level (trace, debug, info, warn, error)")
	flags.String("log.format", def.Log.Format, "Log format (text, json)")

	flags.Int("bench.events", def.Bench.Events, "Number of distinct events to register")
	flags.Int("bench.sync_handlers", def.Bench.SyncHandlers, "Synchronous handlers per event")
	flags.Int("bench.async_handlers", def.Bench.AsyncHandlers, "Asynchronous handlers per event")
	flags.Int("bench.triggers", def.Bench.Triggers, "Trigger calls per event per mode")
	flags.String("bench.payload", def.Bench.Payload, "Numeric payload forwarded to handlers")
}
