// Package main is the entry point for the intsim telemetry simulator.
package main

import (
	"fmt"
	"os"

	"github.com/netfabric/intsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
