// Package telemetry implements the in-band telemetry header carried by
// simulated packets: a mode-switched codec over per-hop samples, a raw
// timestamp, or a compressed congestion signal.
package telemetry

import (
	"fmt"
	"strings"

	"github.com/netfabric/intsim/internal/core"
)

// Mode selects which header variant is on the wire. The wire bytes carry
// no tag, so sender and receiver must run under the same Mode.
type Mode uint8

const (
	// ModeNone disables telemetry; the header occupies zero wire bytes.
	ModeNone Mode = iota
	// ModeNormal carries the bounded per-hop sample ring.
	ModeNormal
	// ModeTS carries a single 64-bit timestamp.
	ModeTS
	// ModePINT carries a compressed 1- or 2-byte congestion signal.
	ModePINT
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeNormal:
		return "normal"
	case ModeTS:
		return "ts"
	case ModePINT:
		return "pint"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// ParseMode parses the config spelling of a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return ModeNone, nil
	case "normal", "int":
		return ModeNormal, nil
	case "ts", "timestamp":
		return ModeTS, nil
	case "pint":
		return ModePINT, nil
	}
	return ModeNone, fmt.Errorf("%w: telemetry mode %q", core.ErrConfigInvalid, s)
}

const (
	// MaxHop is the ring capacity: the wire retains at most this many
	// per-hop samples, oldest overwritten first.
	MaxHop = 5

	// ByteUnit and QlenUnit are the base quantization scales. Byte
	// counters are stored in units of ByteUnit*multi bytes, queue depths
	// in units of QlenUnit*multi.
	ByteUnit = 128
	QlenUnit = 80

	hopCountSize = 2 // uint16 on the wire
)

// lineRateValues backs the 3-bit rate class field. Five real speeds,
// three reserved slots that read back as 0.
var lineRateValues = [8]core.LineRate{
	core.Rate25G,
	core.Rate50G,
	core.Rate100G,
	core.Rate200G,
	core.Rate400G,
	0, 0, 0,
}

// Config is the immutable codec configuration snapshot. It is built once
// during simulation setup and shared by reference between every header
// instance; sender and receiver of a given byte stream must use the same
// snapshot (the wire format is not self-describing).
type Config struct {
	mode      Mode
	pintBytes int
	multi     uint32
}

// NewConfig validates and freezes a codec configuration. pintBytes is
// only consulted under ModePINT and must be 1 or 2; multi scales both
// quantization units and must be at least 1.
func NewConfig(mode Mode, pintBytes int, multi uint32) (*Config, error) {
	if pintBytes != 1 && pintBytes != 2 {
		return nil, fmt.Errorf("%w: pint width %d bytes (want 1 or 2)", core.ErrConfigInvalid, pintBytes)
	}
	if multi == 0 {
		return nil, fmt.Errorf("%w: multi must be >= 1", core.ErrConfigInvalid)
	}
	return &Config{mode: mode, pintBytes: pintBytes, multi: multi}, nil
}

// DefaultConfig matches the historical defaults: telemetry disabled,
// 2-byte PINT, no extra scaling.
func DefaultConfig() *Config {
	return &Config{mode: ModeNone, pintBytes: 2, multi: 1}
}

func (c *Config) Mode() Mode     { return c.mode }
func (c *Config) PintBytes() int { return c.pintBytes }
func (c *Config) Multi() uint32  { return c.multi }

// WireSize is the exact number of bytes a header occupies under this
// configuration, valid before any data is pushed.
func (c *Config) WireSize() int {
	switch c.mode {
	case ModeNormal:
		return MaxHop*hopSize + hopCountSize
	case ModeTS:
		return 8
	case ModePINT:
		return c.pintBytes
	default:
		return 0
	}
}

// byteScale is the number of true bytes per stored byte-counter unit.
func (c *Config) byteScale() uint64 {
	return uint64(ByteUnit) * uint64(c.multi)
}

// qlenScale is the number of true queue slots per stored qlen unit.
func (c *Config) qlenScale() uint64 {
	return uint64(QlenUnit) * uint64(c.multi)
}

// classFor maps a real line rate onto its 3-bit class, reporting whether
// the rate is one of the known table entries.
func classFor(rate core.LineRate) (uint8, bool) {
	for i, v := range lineRateValues[:5] {
		if v == rate {
			return uint8(i), true
		}
	}
	return 0, false
}
