// Package metrics implements Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PacketsSimulated counts packets walked over the path.
	PacketsSimulated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intsim_packets_simulated_total",
			Help: "Total number of simulated packets",
		},
	)

	// HopsPushed counts telemetry samples stamped into headers.
	HopsPushed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intsim_hops_pushed_total",
			Help: "Total number of per-hop telemetry samples pushed",
		},
		[]string{"node"},
	)

	// UnknownRateErrors counts hop pushes carrying a line rate outside
	// the codec's class table.
	UnknownRateErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intsim_unknown_rate_errors_total",
			Help: "Total number of hop samples with an unrecognized line rate",
		},
	)

	// HeadersSerialized counts headers written to the wire by mode.
	HeadersSerialized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intsim_headers_serialized_total",
			Help: "Total number of telemetry headers serialized",
		},
		[]string{"mode"},
	)

	// WireBytes counts telemetry bytes put on the simulated wire.
	WireBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intsim_wire_bytes_total",
			Help: "Total telemetry bytes serialized onto simulated packets",
		},
	)

	// QueueDepth tracks the last sampled queue depth per node.
	QueueDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "intsim_queue_depth",
			Help: "Last sampled queue depth per node in bytes",
		},
		[]string{"node"},
	)
)
