package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sched-sim",
	Short: "Real-time scheduling simulator comparing EDF, RM, and FIFO",
	Long: `sched-sim simulates preemptive single-processor real-time scheduling
over a fixed task set with periodic and event-driven arrivals. It can
run a single policy, compare all three, serve the REST API, or listen
for the live event feed of a physical sensor node.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
