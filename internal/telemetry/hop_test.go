package telemetry

import (
	"errors"
	"testing"

	"github.com/netfabric/intsim/internal/core"
)

func normalConfig(t *testing.T, multi uint32) *Config {
	t.Helper()
	cfg, err := NewConfig(ModeNormal, 2, multi)
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	return cfg
}

func TestHopSamplePackedLayout(t *testing.T) {
	cfg := normalConfig(t, 1)

	var h HopSample
	// bytes 1280 -> 1280/128 = 10 stored units, qlen 160 -> 160/80 = 2,
	// rate 100G -> class 2
	if err := h.Set(cfg, 5, 1280, 160, core.Rate100G); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// {class:3, time:24, bytes:20, qlen:17} packed LSB-first:
	// word0 = class(2) | time(5)<<3 | bytes(10)<<27 (low 32 bits)
	// word1 = bytes>>5 | qlen(2)<<15
	if h.words[0] != 0x5000002A {
		t.Errorf("word0: got %#08x, want 0x5000002A", h.words[0])
	}
	if h.words[1] != 0x00010000 {
		t.Errorf("word1: got %#08x, want 0x00010000", h.words[1])
	}

	if h.LineRate() != core.Rate100G {
		t.Errorf("LineRate: got %d, want %d", h.LineRate(), core.Rate100G)
	}
	if h.Time() != 5 {
		t.Errorf("Time: got %d, want 5", h.Time())
	}
	if h.Bytes(cfg) != 1280 {
		t.Errorf("Bytes: got %d, want 1280", h.Bytes(cfg))
	}
	if h.Qlen(cfg) != 160 {
		t.Errorf("Qlen: got %d, want 160", h.Qlen(cfg))
	}
}

func TestHopSampleQuantizationTruncates(t *testing.T) {
	cfg := normalConfig(t, 1)

	var h HopSample
	// 1000 bytes is not a multiple of 128: floor(1000/128)=7 -> 896
	if err := h.Set(cfg, 0, 1000, 99, core.Rate25G); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if h.Bytes(cfg) != 896 {
		t.Errorf("Bytes: got %d, want 896", h.Bytes(cfg))
	}
	if h.Qlen(cfg) != 80 {
		t.Errorf("Qlen: got %d, want 80", h.Qlen(cfg))
	}

	// Stable under re-read and re-store of the dequantized value
	if err := h.Set(cfg, 0, h.Bytes(cfg), h.Qlen(cfg), core.Rate25G); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if h.Bytes(cfg) != 896 {
		t.Errorf("requantized Bytes: got %d, want 896", h.Bytes(cfg))
	}
}

func TestHopSampleMultiScaling(t *testing.T) {
	cfg := normalConfig(t, 4)

	var h HopSample
	// Unit becomes 128*4=512 bytes, 80*4=320 queue slots
	if err := h.Set(cfg, 0, 2048, 640, core.Rate400G); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if h.Bytes(cfg) != 2048 {
		t.Errorf("Bytes: got %d, want 2048", h.Bytes(cfg))
	}
	if h.Qlen(cfg) != 640 {
		t.Errorf("Qlen: got %d, want 640", h.Qlen(cfg))
	}
}

func TestHopSampleUnknownRate(t *testing.T) {
	cfg := normalConfig(t, 1)

	var h HopSample
	if err := h.Set(cfg, 1, 128, 80, core.Rate200G); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	err := h.Set(cfg, 2, 256, 160, 123)
	if !errors.Is(err, core.ErrUnknownLineRate) {
		t.Fatalf("expected ErrUnknownLineRate, got %v", err)
	}

	// Class keeps its previous value, the other fields are updated
	if h.LineRate() != core.Rate200G {
		t.Errorf("LineRate after unknown rate: got %d, want %d", h.LineRate(), core.Rate200G)
	}
	if h.Time() != 2 {
		t.Errorf("Time after unknown rate: got %d, want 2", h.Time())
	}
	if h.Bytes(cfg) != 256 {
		t.Errorf("Bytes after unknown rate: got %d, want 256", h.Bytes(cfg))
	}
}

func TestHopSampleTimeDeltaWraparound(t *testing.T) {
	cfg := normalConfig(t, 1)

	var a, b HopSample
	if err := a.Set(cfg, 16_000_000, 0, 0, core.Rate25G); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	// Observed later, after the 24-bit counter wrapped once
	if err := b.Set(cfg, 500_000, 0, 0, core.Rate25G); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	want := uint64(500_000 + 1<<24 - 16_000_000)
	if got := b.TimeDelta(a); got != want {
		t.Errorf("TimeDelta across wrap: got %d, want %d", got, want)
	}

	// No wrap: plain difference
	if got := a.TimeDelta(b); got != 16_000_000-500_000 {
		t.Errorf("TimeDelta without wrap: got %d, want %d", got, 16_000_000-500_000)
	}
}

func TestHopSampleBytesDeltaWraparound(t *testing.T) {
	cfg := normalConfig(t, 1)

	var a, b HopSample
	// Stored units: 1<<20 - 2 and 3 (wrapped once in between)
	if err := a.Set(cfg, 0, uint64(1<<20-2)*128, 0, core.Rate25G); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := b.Set(cfg, 0, 3*128, 0, core.Rate25G); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	want := uint64(3+1<<20-(1<<20-2)) * 128 // 5 units
	if got := b.BytesDelta(cfg, a); got != want {
		t.Errorf("BytesDelta across wrap: got %d, want %d", got, want)
	}
}

func TestReservedRateClassReadsZero(t *testing.T) {
	var h HopSample
	// Force a reserved class through the packed representation
	h.setPacked(7)
	if h.LineRate() != 0 {
		t.Errorf("reserved class should read 0, got %d", h.LineRate())
	}
}
