package sim

import (
	"github.com/netfabric/intsim/internal/core"
	"github.com/netfabric/intsim/internal/telemetry"
)

// Report is what a run hands back: the decoded telemetry of the last
// packet plus statistics recovered per node. It marshals cleanly to
// YAML for the CLI.
type Report struct {
	Mode     string `yaml:"mode"`
	Packets  int    `yaml:"packets"`
	WireSize int    `yaml:"wire_size"`

	// ModeNormal
	HopCount uint16      `yaml:"hop_count,omitempty"`
	Hops     []HopReport `yaml:"hops,omitempty"`

	// ModeTS
	Timestamp uint64 `yaml:"timestamp,omitempty"`

	// ModePINT
	Power uint16 `yaml:"power,omitempty"`

	Nodes []NodeReport `yaml:"nodes,omitempty"`
}

// HopReport is one decoded sample, oldest-first along the path.
type HopReport struct {
	Node     uint32 `yaml:"node,omitempty"`
	LineRate string `yaml:"line_rate"`
	Time     uint64 `yaml:"time"`
	Bytes    uint64 `yaml:"bytes"`
	Qlen     uint32 `yaml:"qlen"`
}

// NodeStats carries the receiver-side derived numbers for one node.
type NodeStats struct {
	Throughput uint64 // bits per second, from the latest sample delta
	Samples    int    // delta observations that contributed
}

// NodeReport summarizes one forwarding element after the run.
type NodeReport struct {
	ID         uint32 `yaml:"id"`
	Rate       string `yaml:"rate"`
	TxBytes    uint64 `yaml:"tx_bytes"`
	Throughput string `yaml:"throughput,omitempty"`
}

func (r *Runner) buildReport(rx *telemetry.Header, derived []NodeStats) *Report {
	rep := &Report{
		Mode:     r.tcfg.Mode().String(),
		Packets:  r.cfg.Sim.Packets,
		WireSize: r.tcfg.WireSize(),
	}

	switch r.tcfg.Mode() {
	case telemetry.ModeNormal:
		rep.HopCount = rx.HopCount()
		retained := rx.Retained()
		first := len(r.nodes) - len(retained)
		for j, hop := range retained {
			hr := HopReport{
				LineRate: core.FormatLineRate(hop.LineRate()),
				Time:     hop.Time(),
				Bytes:    hop.Bytes(r.tcfg),
				Qlen:     hop.Qlen(r.tcfg),
			}
			if i := first + j; i >= 0 && i < len(r.nodes) {
				hr.Node = r.nodes[i].id
			}
			rep.Hops = append(rep.Hops, hr)
		}
	case telemetry.ModeTS:
		rep.Timestamp = rx.Ts()
	case telemetry.ModePINT:
		rep.Power = rx.Power()
	}

	for i, n := range r.nodes {
		nr := NodeReport{
			ID:      n.id,
			Rate:    core.FormatLineRate(n.rate),
			TxBytes: n.txBytes,
		}
		if derived[i].Samples > 0 {
			nr.Throughput = core.FormatLineRate(derived[i].Throughput)
		}
		rep.Nodes = append(rep.Nodes, nr)
	}
	return rep
}
