package stormon

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/stormon/service/messaging"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the monitor configuration. It
// can be populated from YAML or JSON. The zero-value is useful - all nested
// fields inherit their package defaults.

type Config struct {
	Tracker   TrackerConfig  `json:"tracker" yaml:"tracker"`
	Queue     QueueConfig    `json:"queue" yaml:"queue"`
	Tracing   TracingConfig  `json:"tracing" yaml:"tracing"`
	Snapshots SnapshotConfig `json:"snapshots" yaml:"snapshots"`
}

// TrackerConfig controls bookkeeping policy.
type TrackerConfig struct {
	// RetainPeaks carries an executor's peak entry across removal and
	// re-registration instead of starting a fresh one.
	RetainPeaks bool `json:"retainPeaks" yaml:"retainPeaks"`
}

// QueueConfig selects and sizes the notification transport.
type QueueConfig struct {
	Vendor string `json:"vendor" yaml:"vendor"` // "memory" (default) or "fs"
	Buffer int    `json:"buffer" yaml:"buffer"`
	Topic  string `json:"topic" yaml:"topic"`
	// BasePath roots the fs vendor's queue directories.
	BasePath string `json:"basePath,omitempty" yaml:"basePath,omitempty"`
}

// TracingConfig controls OpenTelemetry initialisation.
type TracingConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	ServiceName    string `json:"serviceName" yaml:"serviceName"`
	ServiceVersion string `json:"serviceVersion" yaml:"serviceVersion"`
	OutputFile     string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

// SnapshotConfig controls where TakeSnapshot persists exports. An empty
// location selects the in-memory store.
type SnapshotConfig struct {
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
}

// DefaultConfig returns a Config populated with package defaults.
func DefaultConfig() *Config {
	return &Config{
		Queue: QueueConfig{
			Vendor: string(messaging.VendorMemory),
			Buffer: 100,
			Topic:  "notifications",
		},
		Tracing: TracingConfig{
			ServiceName:    "stormon",
			ServiceVersion: "dev",
		},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	switch messaging.Vendor(c.Queue.Vendor) {
	case messaging.VendorMemory, messaging.VendorFs, "":
	default:
		return fmt.Errorf("queue.vendor must be %q or %q", messaging.VendorMemory, messaging.VendorFs)
	}
	if c.Queue.Buffer < 0 {
		return fmt.Errorf("queue.buffer must be >= 0")
	}
	if c.Queue.Topic == "" {
		return fmt.Errorf("queue.topic cannot be empty")
	}
	return nil
}

// LoadConfig reads a YAML configuration document from the supplied URL
// (file path, mem://, s3:// - any scheme afs understands), overlaying the
// package defaults.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", URL, err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", URL, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
