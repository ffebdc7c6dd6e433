package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/netfabric/intsim/internal/buffer"
	"github.com/netfabric/intsim/internal/config"
	"github.com/netfabric/intsim/internal/core"
	"github.com/netfabric/intsim/internal/telemetry"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <hex-bytes>",
	Short: "Decode a hex-encoded telemetry header under the configured mode",
	Long: `Decode interprets raw header bytes under the telemetry mode of the
loaded configuration. The wire format carries no mode tag, so the bytes
must have been produced under that same mode.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		tcfg, err := cfg.CompileTelemetry()
		if err != nil {
			return err
		}

		wire, err := hex.DecodeString(strings.ReplaceAll(args[0], " ", ""))
		if err != nil {
			return fmt.Errorf("invalid hex input: %w", err)
		}
		if len(wire) != tcfg.WireSize() {
			return fmt.Errorf("%w: got %d bytes, mode %s needs %d",
				core.ErrShortBuffer, len(wire), tcfg.Mode(), tcfg.WireSize())
		}

		hdr := telemetry.NewHeader(tcfg)
		r := buffer.NewReader(wire)
		n := hdr.Deserialize(r)
		if err := r.Err(); err != nil {
			return err
		}

		fmt.Printf("mode: %s  consumed: %d bytes\n", tcfg.Mode(), n)
		switch tcfg.Mode() {
		case telemetry.ModeNormal:
			fmt.Printf("hop count: %d\n", hdr.HopCount())
			for i, hop := range hdr.Retained() {
				fmt.Printf("  hop %d: rate %-8s time %-10d bytes %-12d qlen %d\n",
					i, core.FormatLineRate(hop.LineRate()), hop.Time(),
					hop.Bytes(tcfg), hop.Qlen(tcfg))
			}
		case telemetry.ModeTS:
			fmt.Printf("timestamp: %d\n", hdr.Ts())
		case telemetry.ModePINT:
			fmt.Printf("power: %d\n", hdr.Power())
		default:
			fmt.Println("telemetry disabled: header carries no bytes")
		}
		return nil
	},
}
