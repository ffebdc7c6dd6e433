// Package core defines core data structures with zero external dependencies.
package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Tick is one unit of simulated time. The simulation clock is a plain
// counter; telemetry stores it truncated to 24 bits on the wire.
type Tick = uint64

// LineRate is a link speed in bits per second.
type LineRate = uint64

// Common line rates of the simulated fabric.
const (
	Rate25G  LineRate = 25_000_000_000
	Rate50G  LineRate = 50_000_000_000
	Rate100G LineRate = 100_000_000_000
	Rate200G LineRate = 200_000_000_000
	Rate400G LineRate = 400_000_000_000
)

// ParseLineRate parses strings like "100Gbps", "25g" or a plain
// bits-per-second integer.
func ParseLineRate(s string) (LineRate, error) {
	v := strings.TrimSpace(strings.ToLower(s))
	mult := uint64(1)
	switch {
	case strings.HasSuffix(v, "gbps"):
		v, mult = strings.TrimSuffix(v, "gbps"), 1_000_000_000
	case strings.HasSuffix(v, "g"):
		v, mult = strings.TrimSuffix(v, "g"), 1_000_000_000
	case strings.HasSuffix(v, "mbps"):
		v, mult = strings.TrimSuffix(v, "mbps"), 1_000_000
	case strings.HasSuffix(v, "m"):
		v, mult = strings.TrimSuffix(v, "m"), 1_000_000
	case strings.HasSuffix(v, "bps"):
		v = strings.TrimSuffix(v, "bps")
	}
	n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRate, s)
	}
	return n * mult, nil
}

// FormatLineRate renders a rate the way configs spell it ("100Gbps").
func FormatLineRate(r LineRate) string {
	switch {
	case r >= 1_000_000_000 && r%1_000_000_000 == 0:
		return fmt.Sprintf("%dGbps", r/1_000_000_000)
	case r >= 1_000_000 && r%1_000_000 == 0:
		return fmt.Sprintf("%dMbps", r/1_000_000)
	default:
		return fmt.Sprintf("%dbps", r)
	}
}
