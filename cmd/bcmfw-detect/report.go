package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fwkit/bcmfw/internal/catalog"
	"github.com/fwkit/bcmfw/internal/config"
	"github.com/fwkit/bcmfw/internal/detect"
	"github.com/fwkit/bcmfw/internal/logging"
	"github.com/fwkit/bcmfw/internal/ui"
)

func runDetect(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	// Initialize logging from environment variable (silent by default).
	// Set BCMFW_LOG_LEVEL=debug to see detailed logs; on failure
	// GetLogger falls back to a nop logger.
	_ = logging.InitializeFromEnv()
	logger := logging.GetLogger()
	defer logging.Sync()

	if prefs, err := config.Load(); err == nil && prefs.NoColor {
		ui.DisableColors()
	}

	cat, err := catalog.Default()
	if err != nil {
		ui.PrintFailure("Chip identification failed", err, []string{
			"The embedded chip catalog could not be loaded",
			"This is a build problem, not a host problem",
		})
		return err
	}

	ui.PrintCommandHeader(
		"Chip Identification",
		"bcmfw-detect",
		map[string]string{
			"Strategies": "board model, platform properties, kernel log, firmware files",
		},
	)

	engine := detect.NewEngine(cat, detect.HostProbes(), logger)
	detections, attempts := engine.Detect()

	printAttempts(attempts)

	if len(detections) == 0 {
		printInconclusive()
		// An inconclusive report is still a successful report
		return nil
	}

	printDetections(detections)
	for _, d := range detections {
		printRecommendations(d.Profile)
	}

	// Best effort: remember the result for bcmfw-extract --detect
	first := detections[0]
	versionID := ""
	if rec, ok := first.Profile.Recommended(); ok {
		versionID = rec.VersionID
	}
	if err := config.RememberDetection(first.Profile.ChipID, versionID, first.Strategy); err != nil {
		logger.Debug("failed to cache detection", zap.Error(err))
	}

	return nil
}

// printAttempts renders one line per strategy in chain order.
func printAttempts(attempts []detect.StrategyResult) {
	ui.PrintSection("Identification strategies")

	for i, attempt := range attempts {
		name := fmt.Sprintf("%d. %s", i+1, attempt.Strategy)

		switch {
		case attempt.Skipped:
			fmt.Println("  " + ui.MutedStyle.Render(ui.SkipMarker+" "+name+" (skipped)"))
			if attempt.Detail != "" {
				fmt.Println("  " + ui.MutedStyle.Render("    "+attempt.Detail))
			}
		case len(attempt.Detections) > 0:
			fmt.Println("  " + ui.MatchStyle.Render(ui.MatchMarker+" "+name+" (matched)"))
			for _, d := range attempt.Detections {
				fmt.Println("  " + ui.MutedStyle.Render("    evidence: "+d.Evidence))
			}
		default:
			fmt.Println("  " + ui.MutedStyle.Render(ui.GuessMarker+" "+name+" (no match)"))
			if attempt.Detail != "" {
				fmt.Println("  " + ui.MutedStyle.Render("    "+attempt.Detail))
			}
		}
	}
}

// printDetections renders the winning detections with their confidence.
func printDetections(detections []detect.Detection) {
	ui.PrintSection("Identified chips")

	for _, d := range detections {
		label := d.Profile.ChipID
		if d.Profile.DisplayName != "" {
			label += " (" + d.Profile.DisplayName + ")"
		}

		if d.Confidence == detect.ConfidenceExact {
			fmt.Println("  " + ui.MatchStyle.Bold(true).Render(ui.MatchMarker+" "+label))
		} else {
			fmt.Println("  " + ui.GuessStyle.Bold(true).Render(ui.GuessMarker+" "+label+" (best-effort guess)"))
		}
		ui.PrintKV("Strategy", d.Strategy)
		ui.PrintKV("Confidence", d.Confidence.String())
		ui.PrintKV("Evidence", d.Evidence)
	}

	if len(detections) > 1 {
		fmt.Println()
		fmt.Println("  " + ui.GuessStyle.Render("Multiple chips found; verify which one your board actually carries."))
	}
}

// printRecommendations renders the catalog's firmware versions for one
// chip, best-ranked first.
func printRecommendations(profile *catalog.ChipProfile) {
	ui.PrintSection("Firmware versions for " + profile.ChipID)

	ranked := profile.RankedCandidates()
	if len(ranked) == 0 {
		fmt.Println("  " + ui.MutedStyle.Render("No known firmware versions for this chip."))
		return
	}

	for i, c := range ranked {
		line := c.VersionID
		if i == 0 {
			line += "  (recommended)"
		}
		if c.Note != "" {
			line += "  - " + c.Note
		}
		if i == 0 {
			fmt.Println("  " + ui.MatchStyle.Render("• "+line))
		} else {
			fmt.Println("  " + ui.ValueStyle.Render("• "+line))
		}
	}

	if rec, ok := profile.Recommended(); ok {
		fmt.Println()
		fmt.Println("  " + ui.MutedStyle.Render(fmt.Sprintf(
			"Next: bcmfw-extract --source adb --chip %s --version %s", profile.ChipID, rec.VersionID)))
	}
}

// printInconclusive explains how to identify the chip manually.
func printInconclusive() {
	ui.PrintSection("Result")
	fmt.Println("  " + ui.GuessStyle.Bold(true).Render("⚠ Identification inconclusive: no strategy produced a result."))

	ui.PrintSection("Manual identification")
	steps := []string{
		"Check the board or device documentation for the WiFi chip marking",
		"On Linux: dmesg | grep -i brcm  (needs the driver loaded)",
		"On Android: adb shell getprop ro.product.model and look the model up",
		"Inspect firmware filenames: ls /vendor/firmware /lib/firmware/brcm",
		"Then run: bcmfw-extract --source <...> --chip <chip> --version <version>",
	}
	for _, step := range steps {
		fmt.Println("  " + ui.ValueStyle.Render("• "+step))
	}

	known := catalog.MustDefault().ChipIDs()
	fmt.Println()
	fmt.Println("  " + ui.MutedStyle.Render("Known chips: "+strings.Join(known, ", ")))
	fmt.Println()
}
