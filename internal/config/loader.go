package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load reads the YAML config at path on top of the built-in defaults.
// Environment variables prefixed INTSIM_ override file values
// (INTSIM_TELEMETRY_MODE=normal, INTSIM_SIM_PACKETS=10, ...). An empty
// path skips the file and loads defaults plus environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("INTSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults mirrors Default() into viper so environment-only overrides
// merge against the same baseline as file loads.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("telemetry.mode", d.Telemetry.Mode)
	v.SetDefault("telemetry.pint_bytes", d.Telemetry.PintBytes)
	v.SetDefault("telemetry.multi", d.Telemetry.Multi)
	v.SetDefault("sim.packets", d.Sim.Packets)
	v.SetDefault("sim.packet_size", d.Sim.PacketSize)
	v.SetDefault("sim.link_delay", d.Sim.LinkDelay)
	v.SetDefault("sim.seed", d.Sim.Seed)
	v.SetDefault("pcap.enabled", d.Pcap.Enabled)
	v.SetDefault("pcap.path", d.Pcap.Path)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.listen", d.Metrics.Listen)
	v.SetDefault("metrics.path", d.Metrics.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.pattern", d.Log.Pattern)
	v.SetDefault("log.time", d.Log.Time)
}
