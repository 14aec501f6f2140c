// Wattboxctl is a control utility for SnapAV WattBox IP power strips.
//
// It can show device status and power readings, switch individual
// outlets on and off, and run a live interactive outlet dashboard.
// Devices can be addressed directly by host or saved under a name in
// the configuration file.
//
// Usage:
//
//	wattboxctl [command] [flags]
//
// See 'wattboxctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wattboxctl/wattboxctl/internal/logging"
	"github.com/wattboxctl/wattboxctl/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wattboxctl",
	Short: "WattBox Power Strip Control Utility",
	Long: `A standalone utility for controlling SnapAV WattBox IP power strips.

Shows device status and power readings, switches outlets on and off,
and provides a live interactive outlet dashboard.

Devices can be addressed with --host or saved under a name with
'wattboxctl save' and referenced by that name afterwards.`,
	Version: version.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.InitializeFromEnv()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wattboxctl %s (commit: %s)\n", version.Version, version.Commit)
	},
}
