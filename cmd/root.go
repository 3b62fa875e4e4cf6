// Package cmd wires up the rehydrate command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/rehydrate-io/rehydrate/cmd/state"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.1"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "rehydrate",
		Short: "crash-safe persistence for reactive application state",
		Long: fmt.Sprintf(`rehydrate (v%s)

A persistence library for reactive application state: store snapshots are
written to durable storage on every change and restored on construction.
This CLI inspects and repairs the file-backed storage directories the
library writes.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of rehydrate",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("rehydrate v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(state.StateCommands)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
