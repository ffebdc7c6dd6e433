package sim

import (
	"fmt"
	"math/rand"

	"github.com/netfabric/intsim/internal/core"
)

// node is one forwarding element. txBytes is the cumulative transmit
// counter the telemetry samples quantize; it only ever grows (the 20-bit
// wire field is what wraps, not this).
type node struct {
	id        uint32
	rate      core.LineRate
	baseQueue uint32

	txBytes uint64
	qlen    uint32
}

func newNode(spec NodeSpec) (*node, error) {
	rate, err := core.ParseLineRate(spec.Rate)
	if err != nil {
		return nil, fmt.Errorf("node %d: %w", spec.ID, err)
	}
	return &node{id: spec.ID, rate: rate, baseQueue: spec.BaseQueue}, nil
}

// transmit forwards one packet: the byte counter advances and the queue
// depth is resampled around its resting level. The jitter comes from the
// run-seeded source, so a given seed always reproduces the same run.
func (n *node) transmit(size uint64, rng *rand.Rand) {
	n.txBytes += size
	jitter := uint32(rng.Int63n(int64(4*size + 1)))
	n.qlen = n.baseQueue + jitter
}

// txTicks is the serialization delay for size bytes at this node's line
// rate, in nanosecond ticks, at least 1.
func (n *node) txTicks(size uint64) core.Tick {
	t := size * 8 * 1_000_000_000 / n.rate
	if t == 0 {
		t = 1
	}
	return t
}
