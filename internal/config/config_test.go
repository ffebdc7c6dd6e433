package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netfabric/intsim/internal/core"
	"github.com/netfabric/intsim/internal/telemetry"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "none", cfg.Telemetry.Mode)
	assert.Equal(t, 2, cfg.Telemetry.PintBytes)
	assert.Equal(t, uint32(1), cfg.Telemetry.Multi)
	assert.Len(t, cfg.Sim.Nodes, 3)
	assert.Equal(t, 1, cfg.Sim.Packets)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
telemetry:
  mode: normal
  multi: 2
sim:
  packets: 20
  packet_size: 9000
  nodes:
    - id: 1
      rate: 400Gbps
    - id: 2
      rate: 200Gbps
pcap:
  enabled: true
  path: out.pcap
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "normal", cfg.Telemetry.Mode)
	assert.Equal(t, uint32(2), cfg.Telemetry.Multi)
	assert.Equal(t, 2, cfg.Telemetry.PintBytes) // default kept
	assert.Equal(t, 20, cfg.Sim.Packets)
	assert.Equal(t, uint64(9000), cfg.Sim.PacketSize)
	require.Len(t, cfg.Sim.Nodes, 2)
	assert.Equal(t, "400Gbps", cfg.Sim.Nodes[0]["rate"])
	assert.True(t, cfg.Pcap.Enabled)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yml")
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad mode", func(c *Config) { c.Telemetry.Mode = "sideways" }},
		{"bad pint width", func(c *Config) { c.Telemetry.PintBytes = 3 }},
		{"zero multi", func(c *Config) { c.Telemetry.Multi = 0 }},
		{"no nodes", func(c *Config) { c.Sim.Nodes = nil }},
		{"zero packets", func(c *Config) { c.Sim.Packets = 0 }},
		{"zero packet size", func(c *Config) { c.Sim.PacketSize = 0 }},
		{"pcap without path", func(c *Config) { c.Pcap.Enabled = true; c.Pcap.Path = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrConfigInvalid), "got %v", err)
		})
	}
}

func TestCompileTelemetry(t *testing.T) {
	cfg := Default()
	cfg.Telemetry.Mode = "pint"
	cfg.Telemetry.PintBytes = 1

	tc, err := cfg.CompileTelemetry()
	require.NoError(t, err)
	assert.Equal(t, telemetry.ModePINT, tc.Mode())
	assert.Equal(t, 1, tc.PintBytes())
	assert.Equal(t, 1, tc.WireSize())
}
