// Bcmfw-detect identifies the Broadcom WiFi chip of the local host and
// recommends firmware versions for patching.
//
// Identification tries a fixed chain of strategies, most trustworthy
// first:
//
//  1. Device-tree board model (embedded boards, Raspberry Pi)
//  2. Android platform properties via getprop
//  3. Kernel log scan for Broadcom driver messages
//  4. Firmware directory filename listing
//
// The first strategy with a result wins. Strategies whose signal
// source is unavailable are reported as skipped, not failed, and an
// inconclusive run is a normal outcome with manual instructions; the
// tool always exits 0 when the report was produced.
//
// See 'bcmfw-detect --help' for available options.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fwkit/bcmfw/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bcmfw-detect",
	Short: "Broadcom WiFi Chip Identification Utility",
	Long: `Identify the Broadcom WiFi chip of this host and report firmware
versions known to work for patch development.

The report shows every identification strategy that was attempted, the
evidence it matched, and whether the result is exact (hardware
identity) or a best-effort guess (log scan, firmware filenames). When
nothing matches, the report explains how to identify the chip by hand.`,
	Example: `  # Identify the local chip
  bcmfw-detect

  # With detailed logs
  BCMFW_LOG_LEVEL=debug bcmfw-detect`,
	RunE: runDetect,
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
		fmt.Printf("bcmfw-detect %s (commit: %s)\n", version.Version, version.Commit)
	},
}
