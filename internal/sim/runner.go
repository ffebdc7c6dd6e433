package sim

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/netfabric/intsim/internal/buffer"
	"github.com/netfabric/intsim/internal/config"
	"github.com/netfabric/intsim/internal/core"
	"github.com/netfabric/intsim/internal/linkcache"
	"github.com/netfabric/intsim/internal/log"
	"github.com/netfabric/intsim/internal/metrics"
	"github.com/netfabric/intsim/internal/pcapout"
	"github.com/netfabric/intsim/internal/telemetry"
)

// linkState is the per-link object memoized in the path cache.
type linkState struct {
	delay core.Tick
	uses  uint64
}

// Runner owns the simulated path and drives packets across it. The
// whole run is single-threaded: one packet is in flight at a time, as
// in the discrete-event model this mirrors.
type Runner struct {
	cfg  *config.Config
	tcfg *telemetry.Config

	nodes []*node
	links *linkcache.Cache[*linkState]
	rng   *rand.Rand
	clock core.Tick

	logger log.Logger
}

// NewRunner builds the path from cfg. cfg must already be validated.
func NewRunner(cfg *config.Config) (*Runner, error) {
	tcfg, err := cfg.CompileTelemetry()
	if err != nil {
		return nil, err
	}

	specs, err := DecodeNodeSpecs(cfg.Sim.Nodes)
	if err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return nil, core.ErrEmptyPath
	}

	nodes := make([]*node, 0, len(specs))
	for _, spec := range specs {
		n, err := newNode(spec)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}

	r := &Runner{
		cfg:    cfg,
		tcfg:   tcfg,
		nodes:  nodes,
		links:  linkcache.New[*linkState](),
		rng:    rand.New(rand.NewSource(cfg.Sim.Seed)),
		logger: log.GetLogger().WithField("component", "sim"),
	}

	for i := 0; i+1 < len(nodes); i++ {
		ls := &linkState{delay: cfg.Sim.LinkDelay}
		if err := r.links.Add(ls, nodes[i].id, nodes[i+1].id, 0); err != nil {
			return nil, fmt.Errorf("link %d-%d: %w", nodes[i].id, nodes[i+1].id, err)
		}
	}
	return r, nil
}

// link returns the memoized state for the hop from nodes[i] to
// nodes[i+1].
func (r *Runner) link(i int) *linkState {
	ls, ok := r.links.Get(r.nodes[i].id, r.nodes[i+1].id, 0)
	if !ok {
		// Built in NewRunner for every adjacent pair
		panic(fmt.Sprintf("intsim: no link state for %d-%d", r.nodes[i].id, r.nodes[i+1].id))
	}
	return ls
}

// Run walks cfg.Sim.Packets packets over the path and returns the
// decoded telemetry of the final packet plus per-node statistics
// recovered from the sample deltas across packets.
func (r *Runner) Run() (*Report, error) {
	r.logger.WithFields(map[string]interface{}{
		"mode":    r.tcfg.Mode().String(),
		"nodes":   len(r.nodes),
		"packets": r.cfg.Sim.Packets,
	}).Info("starting run")

	var pcap *pcapout.Writer
	if r.cfg.Pcap.Enabled {
		w, err := pcapout.NewWriter(r.cfg.Pcap.Path)
		if err != nil {
			return nil, err
		}
		pcap = w
		defer pcap.Close()
	}

	// Previous observation of each node, for wrap-corrected deltas
	prev := make([]telemetry.HopSample, len(r.nodes))
	seen := make([]bool, len(r.nodes))
	derived := make([]NodeStats, len(r.nodes))

	var rx *telemetry.Header
	wallStart := time.Now()

	for p := 0; p < r.cfg.Sim.Packets; p++ {
		hdr := telemetry.NewHeader(r.tcfg)
		hdr.SetTs(r.clock)

		for i, n := range r.nodes {
			n.transmit(r.cfg.Sim.PacketSize, r.rng)
			r.stampHop(hdr, n)
			r.clock += n.txTicks(r.cfg.Sim.PacketSize)
			if i+1 < len(r.nodes) {
				ls := r.link(i)
				ls.uses++
				r.clock += ls.delay
			}
		}

		wire := make([]byte, hdr.WireSize())
		hdr.Serialize(buffer.NewWriter(wire))
		metrics.HeadersSerialized.WithLabelValues(r.tcfg.Mode().String()).Inc()
		metrics.WireBytes.Add(float64(len(wire)))
		metrics.PacketsSimulated.Inc()

		if pcap != nil {
			ts := wallStart.Add(time.Duration(r.clock) * time.Nanosecond)
			if err := pcap.WritePacket(wire, ts); err != nil {
				return nil, err
			}
		}

		// Receiving side: decode under the same configuration snapshot
		rx = telemetry.NewHeader(r.tcfg)
		rd := buffer.NewReader(wire)
		rx.Deserialize(rd)
		if err := rd.Err(); err != nil {
			return nil, err
		}

		r.accumulate(rx, prev, seen, derived)
	}

	return r.buildReport(rx, derived), nil
}

// stampHop pushes one node's sample into the header. Under PINT the hop
// instead folds its congestion into the single power value; under TS
// the header already carries the departure timestamp and hops add
// nothing.
func (r *Runner) stampHop(hdr *telemetry.Header, n *node) {
	switch r.tcfg.Mode() {
	case telemetry.ModeNormal:
		err := hdr.PushHop(r.clock, n.txBytes, n.qlen, n.rate)
		if err != nil {
			metrics.UnknownRateErrors.Inc()
			r.logger.WithField("node", n.id).WithError(err).Warn("hop sample degraded")
		}
		metrics.HopsPushed.WithLabelValues(strconv.FormatUint(uint64(n.id), 10)).Inc()
		metrics.QueueDepth.WithLabelValues(strconv.FormatUint(uint64(n.id), 10)).Set(float64(n.qlen))
	case telemetry.ModePINT:
		if sig := congestionSignal(n.qlen); sig > hdr.Power() {
			hdr.SetPower(sig)
		}
	}
}

// congestionSignal compresses a queue depth into the PINT power value:
// queue depth in QlenUnit units, saturating at the field maximum.
func congestionSignal(qlen uint32) uint16 {
	sig := qlen / telemetry.QlenUnit
	if sig > 0xFFFF {
		sig = 0xFFFF
	}
	return uint16(sig)
}

// accumulate recovers per-node transmit rates from consecutive
// observations of the same node. This is the receiver-side INT math:
// the wire carries cyclic 20/24-bit counters, so the deltas go through
// the wrap-correcting accessors rather than plain subtraction.
func (r *Runner) accumulate(rx *telemetry.Header, prev []telemetry.HopSample, seen []bool, derived []NodeStats) {
	if r.tcfg.Mode() != telemetry.ModeNormal {
		return
	}

	retained := rx.Retained()
	// With hopCount <= MaxHop each retained sample maps onto a path
	// node; beyond that the oldest hops are gone and the mapping starts
	// further down the path.
	first := len(r.nodes) - len(retained)
	for j, hop := range retained {
		i := first + j
		if i < 0 || i >= len(r.nodes) {
			continue
		}
		if seen[i] {
			dt := hop.TimeDelta(prev[i])
			if dt > 0 {
				db := hop.BytesDelta(r.tcfg, prev[i])
				derived[i].Throughput = db * 8 * 1_000_000_000 / dt
				derived[i].Samples++
			}
		}
		prev[i] = hop
		seen[i] = true
	}
}
