// Package config handles global configuration loading using viper.
package config

import (
	"fmt"

	"github.com/netfabric/intsim/internal/core"
	"github.com/netfabric/intsim/internal/log"
	"github.com/netfabric/intsim/internal/telemetry"
)

// Config is the top-level static configuration. Maps to the root keys of
// the YAML file; every section has a working default so `intsim run`
// works with no file at all.
type Config struct {
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Sim       SimConfig       `mapstructure:"sim"`
	Pcap      PcapConfig      `mapstructure:"pcap"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Log       *log.Config     `mapstructure:"log"`
}

// TelemetryConfig selects the header variant for the whole run. It is
// compiled once into an immutable telemetry.Config snapshot; the raw
// struct is never consulted after startup.
type TelemetryConfig struct {
	Mode      string `mapstructure:"mode"`       // none | normal | ts | pint
	PintBytes int    `mapstructure:"pint_bytes"` // 1 or 2, PINT only
	Multi     uint32 `mapstructure:"multi"`      // quantization scale multiplier
}

// SimConfig describes the simulated path.
type SimConfig struct {
	// Nodes are loosely typed on purpose: specs are decoded with
	// mapstructure so per-node keys can grow without breaking old
	// configs (see sim.DecodeNodeSpecs).
	Nodes []map[string]interface{} `mapstructure:"nodes"`

	Packets    int    `mapstructure:"packets"`     // packets to walk over the path
	PacketSize uint64 `mapstructure:"packet_size"` // bytes, payload + headers
	LinkDelay  uint64 `mapstructure:"link_delay"`  // ticks per link traversal
	Seed       int64  `mapstructure:"seed"`        // queue-model seed, reproducible runs
}

// PcapConfig enables capture-file export of the simulated packets.
type PcapConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// MetricsConfig enables the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen"`
	Path    string `mapstructure:"path"`
}

// Default returns the built-in configuration: telemetry off, a three
// node 100Gbps path, no exports.
func Default() *Config {
	return &Config{
		Telemetry: TelemetryConfig{
			Mode:      "none",
			PintBytes: 2,
			Multi:     1,
		},
		Sim: SimConfig{
			Nodes: []map[string]interface{}{
				{"id": 1, "rate": "100Gbps"},
				{"id": 2, "rate": "100Gbps"},
				{"id": 3, "rate": "100Gbps"},
			},
			Packets:    1,
			PacketSize: 1500,
			LinkDelay:  1000,
			Seed:       1,
		},
		Pcap: PcapConfig{
			Path: "intsim.pcap",
		},
		Metrics: MetricsConfig{
			Listen: ":9155",
			Path:   "/metrics",
		},
		Log: log.DefaultConfig(),
	}
}

// Validate checks the loaded configuration, wrapping ErrConfigInvalid.
func (c *Config) Validate() error {
	if _, err := telemetry.ParseMode(c.Telemetry.Mode); err != nil {
		return err
	}
	if c.Telemetry.PintBytes != 1 && c.Telemetry.PintBytes != 2 {
		return fmt.Errorf("%w: telemetry.pint_bytes must be 1 or 2, got %d",
			core.ErrConfigInvalid, c.Telemetry.PintBytes)
	}
	if c.Telemetry.Multi == 0 {
		return fmt.Errorf("%w: telemetry.multi must be >= 1", core.ErrConfigInvalid)
	}
	if len(c.Sim.Nodes) == 0 {
		return fmt.Errorf("%w: sim.nodes must not be empty", core.ErrConfigInvalid)
	}
	if c.Sim.Packets <= 0 {
		return fmt.Errorf("%w: sim.packets must be > 0, got %d",
			core.ErrConfigInvalid, c.Sim.Packets)
	}
	if c.Sim.PacketSize == 0 {
		return fmt.Errorf("%w: sim.packet_size must be > 0", core.ErrConfigInvalid)
	}
	if c.Pcap.Enabled && c.Pcap.Path == "" {
		return fmt.Errorf("%w: pcap.path required when pcap export is enabled",
			core.ErrConfigInvalid)
	}
	if c.Metrics.Enabled && c.Metrics.Listen == "" {
		return fmt.Errorf("%w: metrics.listen required when metrics are enabled",
			core.ErrConfigInvalid)
	}
	return nil
}

// CompileTelemetry freezes the telemetry section into the immutable
// codec snapshot shared by every header in the run.
func (c *Config) CompileTelemetry() (*telemetry.Config, error) {
	mode, err := telemetry.ParseMode(c.Telemetry.Mode)
	if err != nil {
		return nil, err
	}
	return telemetry.NewConfig(mode, c.Telemetry.PintBytes, c.Telemetry.Multi)
}
