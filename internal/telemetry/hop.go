package telemetry

import "github.com/netfabric/intsim/internal/core"

// Bit widths of the packed sample fields. They fill a 64-bit unit
// exactly, so the in-memory words equal the wire layout with no padding.
const (
	rateClassWidth = 3
	timeWidth      = 24
	bytesWidth     = 20
	qlenWidth      = 17

	hopSize = 8 // two 32-bit words

	timeMask  = 1<<timeWidth - 1
	bytesMask = 1<<bytesWidth - 1
	qlenMask  = 1<<qlenWidth - 1

	rateClassShift = 0
	timeShift      = rateClassWidth
	bytesShift     = rateClassWidth + timeWidth
	qlenShift      = rateClassWidth + timeWidth + bytesWidth
)

// HopSample is one forwarding element's compressed telemetry record:
// {lineRateClass:3, time:24, bytes:20, qlen:17} packed LSB-first into
// two little-endian 32-bit words. Time, bytes and qlen are cyclic
// counters that wrap at their field width; bytes and qlen are stored
// quantized (see Config). Mutate only through Set.
type HopSample struct {
	words [2]uint32
}

func (h *HopSample) packed() uint64 {
	return uint64(h.words[0]) | uint64(h.words[1])<<32
}

func (h *HopSample) setPacked(u uint64) {
	h.words[0] = uint32(u)
	h.words[1] = uint32(u >> 32)
}

// Set quantizes and stores one observation. bytes and qlen are divided
// by their unit scale with truncation; time is truncated to its field
// width. rate must be one of the five table speeds: on an unknown rate
// the class bits keep their previous value, the other fields are still
// written, and ErrUnknownLineRate is returned. Callers on the packet hot
// path may ignore the error; telemetry degrades instead of failing.
func (h *HopSample) Set(cfg *Config, time core.Tick, bytes uint64, qlen uint32, rate core.LineRate) error {
	u := h.packed()

	u &^= uint64(timeMask) << timeShift
	u |= (time & timeMask) << timeShift

	u &^= uint64(bytesMask) << bytesShift
	u |= (bytes / cfg.byteScale() & bytesMask) << bytesShift

	u &^= uint64(qlenMask) << qlenShift
	u |= (uint64(qlen) / cfg.qlenScale() & qlenMask) << qlenShift

	class, ok := classFor(rate)
	if ok {
		u &^= uint64(1<<rateClassWidth-1) << rateClassShift
		u |= uint64(class) << rateClassShift
	}
	h.setPacked(u)

	if !ok {
		return core.ErrUnknownLineRate
	}
	return nil
}

func (h *HopSample) rateClass() uint8 {
	return uint8(h.packed() >> rateClassShift & (1<<rateClassWidth - 1))
}

func (h *HopSample) rawTime() uint64 {
	return h.packed() >> timeShift & timeMask
}

func (h *HopSample) rawBytes() uint64 {
	return h.packed() >> bytesShift & bytesMask
}

func (h *HopSample) rawQlen() uint64 {
	return h.packed() >> qlenShift & qlenMask
}

// LineRate returns the real link speed for the stored class. Reserved
// classes read back as 0.
func (h *HopSample) LineRate() core.LineRate {
	return lineRateValues[h.rateClass()]
}

// Time returns the raw 24-bit cyclic tick counter.
func (h *HopSample) Time() core.Tick {
	return h.rawTime()
}

// Bytes reverses the byte-count quantization. The result is a multiple
// of ByteUnit*multi; the truncated remainder of the original count is
// lost.
func (h *HopSample) Bytes(cfg *Config) uint64 {
	return h.rawBytes() * cfg.byteScale()
}

// Qlen reverses the queue-depth quantization.
func (h *HopSample) Qlen(cfg *Config) uint32 {
	return uint32(h.rawQlen() * cfg.qlenScale())
}

// BytesDelta returns the bytes transmitted between prev and h (h being
// the later observation), corrected for a single wrap of the 20-bit
// counter. More than one wrap between observations is indistinguishable
// and under-counts; that is the codec's precision boundary.
func (h *HopSample) BytesDelta(cfg *Config, prev HopSample) uint64 {
	a, b := h.rawBytes(), prev.rawBytes()
	if a >= b {
		return (a - b) * cfg.byteScale()
	}
	return (a + 1<<bytesWidth - b) * cfg.byteScale()
}

// TimeDelta returns the ticks elapsed between prev and h, corrected for
// a single wrap of the 24-bit counter.
func (h *HopSample) TimeDelta(prev HopSample) core.Tick {
	a, b := h.rawTime(), prev.rawTime()
	if a >= b {
		return a - b
	}
	return a + 1<<timeWidth - b
}
