package telemetry

import (
	"github.com/netfabric/intsim/internal/buffer"
	"github.com/netfabric/intsim/internal/core"
)

// Header is the wire-visible telemetry structure. Which variant is
// active — the hop ring, the raw timestamp, or the compressed signal —
// is decided by the Config injected at construction, never per
// instance. The variants use separate backing fields here (the original
// layout overlaid them in one union), so a stale variant can never be
// misread as live data; accessors for an inactive variant return 0.
//
// Instances are confined to whichever simulated entity holds the
// enclosing packet; nothing here is safe for concurrent use and nothing
// needs to be.
type Header struct {
	cfg *Config

	// ModeNormal: the bounded hop ring. hopCount is the total number of
	// pushes ever made, not clamped to MaxHop — a value above MaxHop
	// tells the reader that history has been overwritten. It is carried
	// as 16 bits on the wire and wraps there.
	hops     [MaxHop]HopSample
	hopCount uint16

	// ModeTS
	ts uint64

	// ModePINT
	power uint16
}

// NewHeader returns a zeroed header bound to cfg. cfg must outlive the
// header and must be the same snapshot on both ends of the wire.
func NewHeader(cfg *Config) *Header {
	return &Header{cfg: cfg}
}

// WireSize is the exact serialized size in bytes under the bound
// configuration, independent of header contents.
func (h *Header) WireSize() int {
	return h.cfg.WireSize()
}

// PushHop records one traversed element's sample. Outside ModeNormal it
// is a silent no-op so call sites never branch on the mode. The ring
// slot is hopCount mod MaxHop: once more than MaxHop hops have been
// pushed the oldest retained sample is overwritten. The returned error
// is the unknown-rate diagnostic from HopSample.Set and may be ignored.
func (h *Header) PushHop(time core.Tick, bytes uint64, qlen uint32, rate core.LineRate) error {
	if h.cfg.mode != ModeNormal {
		return nil
	}
	idx := h.hopCount % MaxHop
	err := h.hops[idx].Set(h.cfg, time, bytes, qlen, rate)
	h.hopCount++
	return err
}

// HopCount returns the total pushes recorded (not clamped to MaxHop).
func (h *Header) HopCount() uint16 {
	return h.hopCount
}

// Hop returns the raw ring slot i. Slot order is storage order, not
// traversal order; use Retained for the latter.
func (h *Header) Hop(i int) HopSample {
	return h.hops[i]
}

// Retained returns the surviving samples oldest-first. Once the ring has
// wrapped, that is the last MaxHop hops; the earlier ones are gone.
func (h *Header) Retained() []HopSample {
	n := int(h.hopCount)
	start := 0
	if n > MaxHop {
		start = n % MaxHop
		n = MaxHop
	}
	out := make([]HopSample, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, h.hops[(start+i)%MaxHop])
	}
	return out
}

// Ts returns the timestamp under ModeTS, 0 otherwise.
func (h *Header) Ts() uint64 {
	if h.cfg.mode == ModeTS {
		return h.ts
	}
	return 0
}

// SetTs stores the timestamp under ModeTS, a no-op otherwise.
func (h *Header) SetTs(ts uint64) {
	if h.cfg.mode == ModeTS {
		h.ts = ts
	}
}

// Power returns the congestion signal under ModePINT, truncated to the
// configured width; 0 under any other mode.
func (h *Header) Power() uint16 {
	if h.cfg.mode != ModePINT {
		return 0
	}
	if h.cfg.pintBytes == 1 {
		return uint16(uint8(h.power))
	}
	return h.power
}

// SetPower stores the congestion signal under ModePINT, a no-op
// otherwise. With a 1-byte width only the low 8 bits survive.
func (h *Header) SetPower(power uint16) {
	if h.cfg.mode != ModePINT {
		return
	}
	if h.cfg.pintBytes == 1 {
		h.power = uint16(uint8(power))
		return
	}
	h.power = power
}

// Serialize writes exactly WireSize bytes. Hop samples go out as their
// two raw backing words, keeping the packed bit layout intact on the
// wire.
func (h *Header) Serialize(w *buffer.Writer) {
	switch h.cfg.mode {
	case ModeNormal:
		for i := range h.hops {
			w.WriteU32(h.hops[i].words[0])
			w.WriteU32(h.hops[i].words[1])
		}
		w.WriteU16(h.hopCount)
	case ModeTS:
		w.WriteU64(h.ts)
	case ModePINT:
		if h.cfg.pintBytes == 1 {
			w.WriteU8(uint8(h.power))
		} else {
			w.WriteU16(h.power)
		}
	}
}

// Deserialize reads back what Serialize wrote, returning the bytes
// consumed. The bytes carry no mode tag: decoding under a different
// Config than the one active at serialization silently misinterprets
// them, which is the caller's contract to uphold.
func (h *Header) Deserialize(r *buffer.Reader) int {
	switch h.cfg.mode {
	case ModeNormal:
		for i := range h.hops {
			h.hops[i].words[0] = r.ReadU32()
			h.hops[i].words[1] = r.ReadU32()
		}
		h.hopCount = r.ReadU16()
	case ModeTS:
		h.ts = r.ReadU64()
	case ModePINT:
		if h.cfg.pintBytes == 1 {
			h.power = uint16(r.ReadU8())
		} else {
			h.power = r.ReadU16()
		}
	}
	return h.cfg.WireSize()
}
