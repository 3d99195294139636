// Package main is the entry point for the statekit CLI.
//
// StateKit is primarily a library (SDK), but ships a small binary for
// exploring its behavior: a live counter demo served over HTTP, plus a
// config validator for the YAML store definitions.
//
// Usage:
//
//	statekit demo -c stores.yaml     # Serve the live counter demo
//	statekit validate -c stores.yaml # Validate store definitions
//	statekit version                 # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "statekit",
	Short: "A minimal reactive state container",
	Long: `StateKit is a minimal state container: one named piece of shared
state, replaced through actions and observed through subscriptions.

The binary exists to demonstrate the library. The demo command builds
stores from a YAML definition file, binds counter actions to one of them,
and serves a live page that renders the state over Server-Sent Events.

Quick start:
  1. Create a definition file (stores.yaml)
  2. Run: statekit demo -c stores.yaml
  3. Open http://localhost:8080 in your browser

Example definitions:
  port: 8080
  stores:
    - name: counter
      initial:
        count: 0
        is_updating: false`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this statekit binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("statekit %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
