package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fwkit/bcmfw/internal/acquire"
	"github.com/fwkit/bcmfw/internal/adb"
	"github.com/fwkit/bcmfw/internal/catalog"
	"github.com/fwkit/bcmfw/internal/config"
	"github.com/fwkit/bcmfw/internal/detect"
	"github.com/fwkit/bcmfw/internal/logging"
	"github.com/fwkit/bcmfw/internal/picker"
	"github.com/fwkit/bcmfw/internal/pipeline"
	"github.com/fwkit/bcmfw/internal/ui"
)

// defaultOutputRoot is used when neither --output nor the config file
// names one.
const defaultOutputRoot = "firmwares"

// Command flags
var (
	sourceArg  string
	chipArg    string
	versionArg string
	outputArg  string
	detectMode bool
	adbPath    string
	adbTimeout string
)

func init() {
	rootCmd.Flags().StringVar(&sourceArg, "source", "", "Firmware source: \"adb\" or a local directory path (required)")
	rootCmd.Flags().StringVar(&chipArg, "chip", "", "Chip identifier (e.g. bcm43455c0)")
	rootCmd.Flags().StringVar(&versionArg, "version", "", "Firmware version identifier (e.g. 7_45_206)")
	rootCmd.Flags().StringVar(&outputArg, "output", "", "Output root for patch directories (default: ./"+defaultOutputRoot+")")
	rootCmd.Flags().BoolVar(&detectMode, "detect", false, "Identify the chip on this host first; --chip/--version become optional")
	rootCmd.Flags().StringVar(&adbPath, "adb-path", "", "Path to the adb binary (default: adb from PATH)")
	rootCmd.Flags().StringVar(&adbTimeout, "timeout", "2m", "adb operation timeout (e.g. 30s, 2m)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	// Missing required flags are usage errors; cobra prints usage for
	// errors returned before SilenceUsage is set.
	if sourceArg == "" {
		return fmt.Errorf("--source is required (\"adb\" or a directory path)")
	}
	if !detectMode && (chipArg == "" || versionArg == "") {
		return fmt.Errorf("--chip and --version are required (or use --detect)")
	}

	// Suppress usage on execution errors (we're past argument parsing)
	cmd.SilenceUsage = true

	// Initialize logging from environment variable (silent by default).
	// Set BCMFW_LOG_LEVEL=debug to see detailed logs; on failure
	// GetLogger falls back to a nop logger.
	_ = logging.InitializeFromEnv()
	logger := logging.GetLogger()
	defer logging.Sync()

	prefs, err := config.Load()
	if err != nil {
		logger.Warn("failed to load preferences", zap.Error(err))
		prefs = &config.Preferences{}
	}
	if prefs.NoColor {
		ui.DisableColors()
	}

	timeout, err := time.ParseDuration(adbTimeout)
	if err != nil {
		return fmt.Errorf("invalid timeout value: %w", err)
	}

	src, err := acquire.ParseSource(sourceArg)
	if err != nil {
		ui.PrintFailure("Invalid source", err, []string{
			"Use --source adb for a connected Android device",
			"Or pass a local directory: --source /mnt/vendor",
		})
		return err
	}

	chipID := chipArg
	versionID := versionArg
	if detectMode && (chipID == "" || versionID == "") {
		chipID, versionID, err = resolveIdentity(chipID, versionID, prefs, logger)
		if err != nil {
			return err
		}
	}

	outputRoot := outputArg
	if outputRoot == "" {
		outputRoot = prefs.OutputRoot
	}
	if outputRoot == "" {
		outputRoot = defaultOutputRoot
	}

	ui.PrintCommandHeader(
		"Firmware Extraction",
		"bcmfw-extract",
		map[string]string{
			"Source":  src.String(),
			"Chip":    chipID,
			"Version": versionID,
			"Output":  outputRoot,
		},
	)

	opts := pipeline.Options{
		Source:     src,
		ChipID:     chipID,
		VersionID:  versionID,
		OutputRoot: outputRoot,
		Logger:     logger,
	}
	if src.Kind == acquire.SourceBridge {
		resolvedADB := adbPath
		if resolvedADB == "" {
			resolvedADB = prefs.ADBPath
		}
		opts.Bridge = adb.NewRunner(adb.Config{ADBPath: resolvedADB, Timeout: timeout}, logger)
	}

	report, err := pipeline.Run(context.Background(), opts)
	if err != nil {
		ui.PrintFailure("Extraction failed", err, troubleshootingFor(err, src))
		return err
	}

	if report.Partial() {
		details := map[string]string{
			"Transferred": fmt.Sprintf("%d", len(report.Acquisition.Binaries)),
			"Failed":      fmt.Sprintf("%d", len(report.Acquisition.Failures)),
		}
		for _, failure := range report.Acquisition.Failures {
			details[failure.OriginPath] = failure.Err.Error()
		}
		ui.PrintWarning("Some transfers failed", details)
	}

	details := map[string]string{
		"Chip":      chipID,
		"Version":   versionID,
		"Binary":    report.Selected.Filename,
		"Size":      fmt.Sprintf("%d bytes", len(report.Selected.Data)),
		"Directory": report.Result.OutputDir,
		"Files":     strings.Join(report.Result.FilesWritten, ", "),
	}
	if len(report.Skipped) > 0 {
		details["Skipped"] = strings.Join(report.Skipped, ", ")
	}
	ui.PrintSuccess("Extraction complete", details)

	ui.PrintWarning("Next steps", map[string]string{
		"Step 1": "Fill in the addresses in " + report.Result.OutputDir + "/definitions.mk",
		"Step 2": "Write your patches and run make in the version directory",
	})

	return nil
}

// resolveIdentity fills in whichever of chip/version the user left
// blank, using host detection, the last-detection cache, and the
// firmware catalog. Ambiguity is settled interactively when a terminal
// is attached.
func resolveIdentity(chipID, versionID string, prefs *config.Preferences, logger *zap.Logger) (string, string, error) {
	cat, err := catalog.Default()
	if err != nil {
		return "", "", fmt.Errorf("failed to load chip catalog: %w", err)
	}

	var profile *catalog.ChipProfile
	strategy := ""

	if chipID == "" {
		engine := detect.NewEngine(cat, detect.HostProbes(), logger)
		detections, _ := engine.Detect()
		if len(detections) == 0 {
			// Inconclusive on this host; a previous run may have settled it
			cachedProfile, cached, ok := cachedIdentity(prefs, cat)
			if !ok {
				err := fmt.Errorf("no identification strategy produced a result")
				ui.PrintFailure("Chip identification failed", err, []string{
					"Run bcmfw-detect for a full identification report",
					"Or pass the chip explicitly: --chip bcm43455c0",
				})
				return "", "", err
			}
			ui.PrintWarning("Using cached identification", map[string]string{
				"Chip":     cached.ChipID,
				"Detected": cached.DetectedAt.Format("2006-01-02 15:04 MST"),
				"Strategy": cached.Strategy,
			})
			profile = cachedProfile
			strategy = cached.Strategy
		} else if len(detections) == 1 {
			profile = detections[0].Profile
			strategy = detections[0].Strategy
		} else {
			if !ui.IsInteractive() {
				names := make([]string, len(detections))
				for i, d := range detections {
					names[i] = d.Profile.ChipID
				}
				err := fmt.Errorf("multiple chips identified: %s", strings.Join(names, ", "))
				ui.PrintFailure("Chip identification ambiguous", err, []string{
					"Pass the chip explicitly: --chip " + names[0],
					"Or run in a terminal to choose interactively",
				})
				return "", "", err
			}
			profiles := make([]*catalog.ChipProfile, len(detections))
			for i, d := range detections {
				profiles[i] = d.Profile
			}
			profile, err = picker.ChooseChip(profiles)
			if err != nil {
				return "", "", err
			}
			strategy = detections[0].Strategy
		}
		chipID = profile.ChipID
	} else {
		var ok bool
		profile, ok = cat.ByChipID(chipID)
		if !ok {
			return "", "", fmt.Errorf("chip %s is not in the catalog; pass --version explicitly", chipID)
		}
	}

	if versionID == "" {
		switch {
		case ui.IsInteractive():
			candidate, err := picker.ChooseCandidate(profile)
			if err != nil {
				return "", "", err
			}
			versionID = candidate.VersionID
		default:
			// Prefer the version a previous run settled on over the
			// catalog recommendation
			if cached, ok := cachedVersionFor(prefs, profile); ok {
				versionID = cached
				break
			}
			candidate, ok := profile.Recommended()
			if !ok {
				return "", "", fmt.Errorf("no known firmware versions for %s; pass --version explicitly", chipID)
			}
			versionID = candidate.VersionID
		}
	}

	// Best effort: remember the resolved identity for later runs
	_ = config.RememberDetection(chipID, versionID, strategy)

	return chipID, versionID, nil
}

// cachedIdentity returns the chip profile from the last-detection
// cache when it is usable: present and still in the catalog.
func cachedIdentity(prefs *config.Preferences, cat *catalog.Catalog) (*catalog.ChipProfile, *config.LastDetection, bool) {
	cached := prefs.LastDetection
	if cached == nil || cached.ChipID == "" {
		return nil, nil, false
	}
	profile, ok := cat.ByChipID(cached.ChipID)
	if !ok {
		return nil, nil, false
	}
	return profile, cached, true
}

// cachedVersionFor returns the cached firmware version when it belongs
// to the given chip and is still a known candidate.
func cachedVersionFor(prefs *config.Preferences, profile *catalog.ChipProfile) (string, bool) {
	cached := prefs.LastDetection
	if cached == nil || cached.ChipID != profile.ChipID || cached.VersionID == "" {
		return "", false
	}
	if _, ok := profile.Candidate(cached.VersionID); !ok {
		return "", false
	}
	return cached.VersionID, true
}

// troubleshootingFor maps pipeline failures to actionable hints.
func troubleshootingFor(err error, src acquire.Source) []string {
	switch {
	case acquire.IsSourceUnavailable(err) && src.Kind == acquire.SourceBridge:
		return []string{
			"Ensure adb is installed and in PATH (or use --adb-path)",
			"Check the device is connected: adb devices",
			"Authorize USB debugging on the device screen",
		}
	case acquire.IsSourceUnavailable(err):
		return []string{
			"Check the source path exists and is a readable directory",
			"For firmware images, mount or extract the image first",
		}
	case acquire.IsNoFilesFound(err):
		return []string{
			"Firmware binaries are matched by name: fw_bcm*.bin, brcmfmac*.bin",
			"On Android, firmware usually lives under /vendor/firmware",
			"Pass the directory that contains the binaries directly",
		}
	default:
		return []string{
			"Run with BCMFW_LOG_LEVEL=debug for detailed logs",
		}
	}
}
