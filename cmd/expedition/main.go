// Package main is the entry point for the expedition simulator.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "expedition",
	Short: "Seeded roguelite expedition simulator",
	Long: `Expedition drops a lone drifter into a procedurally generated,
steadily decaying world. Each run is fully determined by its seed: the same
seed always produces the same world, the same enemies and the same dice.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}
