// Bcmfw-extract pulls Broadcom WiFi firmware off a source and lays out
// a patch project directory for it.
//
// Supported sources:
//
//   - A connected Android device via adb (--source adb)
//   - A local directory tree, such as a mounted vendor partition or an
//     extracted firmware image (--source /path/to/root)
//
// For each run the tool acquires the firmware binaries matching the
// known Broadcom naming patterns, picks the one belonging to the
// requested chip, and scaffolds <output>/<chip>/<version>/ with the
// binary, a definitions.mk and a Makefile ready for patch development.
//
// Prerequisites for adb sources:
//
//   - adb installed and in PATH (or --adb-path)
//   - Device connected with USB debugging authorized
//
// See 'bcmfw-extract --help' for all options.
package main

import (
	"fmt"
	"os"
	"strings"

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
	Use:   "bcmfw-extract",
	Short: "Broadcom WiFi Firmware Extraction Utility",
	Long: `Extract Broadcom WiFi firmware and scaffold a patch project for it.

The firmware binary is located on the source, transferred, and placed
in a per-chip, per-version directory together with generated build
files (definitions.mk, Makefile). Hook addresses in definitions.mk are
left blank for the firmware analyst to fill in.

Chip and version are normally given explicitly; with --detect the tool
first identifies the chip on the local host and offers the catalog's
recommended firmware version.`,
	Example: `  # Extract from a connected Android device
  bcmfw-extract --source adb --chip bcm4339 --version 6_37_34_43

  # Extract from a mounted vendor partition
  bcmfw-extract --source /mnt/vendor --chip bcm43455c0 --version 7_45_206

  # Identify the chip first, then extract
  bcmfw-extract --source /lib/firmware/brcm --detect

  # Custom output root
  bcmfw-extract --source adb --chip bcm4358 --version 7_112_300_14 --output ~/patches`,
	RunE: runExtract,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Flag parse failures keep the historical "Unknown option" wording
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		if strings.HasPrefix(err.Error(), "unknown flag") || strings.HasPrefix(err.Error(), "unknown shorthand flag") {
			return fmt.Errorf("Unknown option (%v)", err)
		}
		return err
	})

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bcmfw-extract %s (commit: %s)\n", version.Version, version.Commit)
	},
}
