// Package sim walks simulated packets over a path of forwarding
// elements, stamping in-band telemetry at every hop and decoding it
// again on the receiving side.
package sim

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/netfabric/intsim/internal/core"
)

// NodeSpec describes one forwarding element of the path.
type NodeSpec struct {
	ID        uint32 `mapstructure:"id"`
	Rate      string `mapstructure:"rate"`       // e.g. "100Gbps"
	BaseQueue uint32 `mapstructure:"base_queue"` // resting queue depth in bytes
}

// DecodeNodeSpecs decodes the loosely typed node maps from the config
// file. Unknown keys are rejected so typos surface at startup instead of
// silently defaulting.
func DecodeNodeSpecs(raw []map[string]interface{}) ([]NodeSpec, error) {
	specs := make([]NodeSpec, 0, len(raw))
	for i, m := range raw {
		var spec NodeSpec
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &spec,
			ErrorUnused: true,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(m); err != nil {
			return nil, fmt.Errorf("%w: sim.nodes[%d]: %v", core.ErrConfigInvalid, i, err)
		}
		if spec.Rate == "" {
			return nil, fmt.Errorf("%w: sim.nodes[%d]: rate is required", core.ErrConfigInvalid, i)
		}
		if spec.ID == 0 {
			spec.ID = uint32(i + 1)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
