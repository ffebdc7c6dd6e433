// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "intsim",
	Short: "intsim - in-band network telemetry simulation toolkit",
	Long: `intsim simulates packets carrying in-band network telemetry (INT)
across a path of forwarding elements. Each hop stamps link rate, queue
occupancy, byte counters and timestamps directly into the packet header;
the receiving side decodes them and recovers per-link performance.

The header codec is mode-switched for the whole run:
  normal  bounded per-hop sample ring (5 hops x 8 bytes + counter)
  ts      single 64-bit timestamp
  pint    compressed 1- or 2-byte congestion signal
  none    telemetry disabled, zero wire overhead`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file path (default: built-in defaults plus INTSIM_* env)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(decodeCmd)
}
