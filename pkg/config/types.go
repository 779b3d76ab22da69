package config

// Config is the root configuration structure for the observable CLI.
type Config struct {
	Log   LogConfig   `koanf:"log"`
	Bench BenchConfig `koanf:"bench"`
}

// LogConfig holds logging related configuration.
type LogConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error"` // Log level
	Format string `koanf:"format" validate:"omitempty,oneof=text json"`                  // Log format
}

// BenchConfig holds configuration for the 'observable bench' command.
type BenchConfig struct {
	Events        int    `koanf:"events" validate:"min=1"`         // Number of distinct event names
	SyncHandlers  int    `koanf:"sync_handlers" validate:"min=0"`  // Sync handlers per event
	AsyncHandlers int    `koanf:"async_handlers" validate:"min=0"` // Async handlers per event
	Triggers      int    `koanf:"triggers" validate:"min=1"`       // Trigger calls per event per mode
	Payload       string `koanf:"payload"`                         // Numeric payload forwarded to handlers
}
