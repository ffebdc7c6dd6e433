package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/netfabric/intsim/internal/config"
	"github.com/netfabric/intsim/internal/log"
	"github.com/netfabric/intsim/internal/metrics"
	"github.com/netfabric/intsim/internal/sim"
)

var (
	runOutput string
	runPcap   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate packets over the configured path and report telemetry",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if runPcap != "" {
			cfg.Pcap.Enabled = true
			cfg.Pcap.Path = runPcap
		}

		if err := log.Init(cfg.Log); err != nil {
			return fmt.Errorf("failed to init logger: %w", err)
		}

		if cfg.Metrics.Enabled {
			srv := metrics.NewServer(cfg.Metrics.Listen, cfg.Metrics.Path)
			if err := srv.Start(); err != nil {
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Stop(ctx)
			}()
		}

		runner, err := sim.NewRunner(cfg)
		if err != nil {
			return err
		}
		report, err := runner.Run()
		if err != nil {
			return err
		}

		switch runOutput {
		case "yaml":
			return yaml.NewEncoder(os.Stdout).Encode(report)
		case "text":
			printReport(report)
			return nil
		default:
			return fmt.Errorf("unknown output format %q (want text or yaml)", runOutput)
		}
	},
}

func init() {
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "text", "output format: text | yaml")
	runCmd.Flags().StringVar(&runPcap, "pcap", "", "write simulated packets to this pcap file")
}

func printReport(r *sim.Report) {
	fmt.Printf("mode: %s  packets: %d  wire size: %d bytes\n", r.Mode, r.Packets, r.WireSize)

	switch r.Mode {
	case "normal":
		fmt.Printf("hop count: %d (retained %d)\n", r.HopCount, len(r.Hops))
		for _, h := range r.Hops {
			fmt.Printf("  node %-3d rate %-8s time %-10d bytes %-12d qlen %d\n",
				h.Node, h.LineRate, h.Time, h.Bytes, h.Qlen)
		}
	case "ts":
		fmt.Printf("timestamp: %d\n", r.Timestamp)
	case "pint":
		fmt.Printf("power: %d\n", r.Power)
	}

	for _, n := range r.Nodes {
		line := fmt.Sprintf("node %-3d rate %-8s tx %d bytes", n.ID, n.Rate, n.TxBytes)
		if n.Throughput != "" {
			line += fmt.Sprintf("  measured %s", n.Throughput)
		}
		fmt.Println(line)
	}
}
