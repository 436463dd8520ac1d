package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwkit/bcmfw/internal/acquire"
	"github.com/fwkit/bcmfw/internal/catalog"
	"github.com/fwkit/bcmfw/internal/scaffold"
	"go.uber.org/zap"
)

// Options configures one extraction run. Source, ChipID and VersionID
// must be resolved (explicitly or by detection) before the run starts.
type Options struct {
	Source     acquire.Source
	ChipID     string
	VersionID  string
	OutputRoot string

	// Bridge runs adb commands; required for bridge sources
	Bridge acquire.BridgeRunner

	// StagingDir receives bridge transfers; defaults to a temporary
	// directory
	StagingDir string

	Logger *zap.Logger
}

// Report is the outcome of one extraction run.
type Report struct {
	// Acquisition holds everything the source yielded, including
	// per-file transfer failures
	Acquisition *acquire.Acquisition

	// Selected is the binary handed to the scaffolder
	Selected *acquire.AcquiredBinary

	// Skipped lists acquired binaries that were not scaffolded
	Skipped []string

	// Result is the scaffold outcome
	Result *scaffold.Result
}

// Partial reports whether the run succeeded with transfer warnings.
func (r *Report) Partial() bool {
	return r.Acquisition != nil && r.Acquisition.Partial()
}

// Run executes the extraction pipeline: validate the resolved
// chip/version, acquire binaries from the source, select the binary
// for the chip, scaffold the output directory. Step failures are
// wrapped with the step name so the operator can tell a missing tool
// from missing files from a missing path.
func Run(ctx context.Context, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := catalog.ValidateChipID(opts.ChipID); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	if opts.VersionID == "" {
		return nil, fmt.Errorf("validation: version id must not be empty")
	}
	if opts.OutputRoot == "" {
		return nil, fmt.Errorf("validation: output root must not be empty")
	}

	acquirer, err := acquire.New(opts.Source, acquire.Options{
		Bridge:     opts.Bridge,
		StagingDir: opts.StagingDir,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("acquisition: %w", err)
	}

	acq, err := acquirer.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquisition: %w", err)
	}

	report := &Report{Acquisition: acq}
	report.Selected, report.Skipped = selectBinary(acq.Binaries, opts.ChipID)

	logger.Info("selected firmware binary",
		zap.String("filename", report.Selected.Filename),
		zap.String("origin", report.Selected.OriginPath),
		zap.Strings("skipped", report.Skipped),
	)

	scaffolder := scaffold.New(opts.OutputRoot, logger)
	result, err := scaffolder.Scaffold(opts.ChipID, opts.VersionID, report.Selected)
	report.Result = result
	if err != nil {
		return report, fmt.Errorf("scaffolding: %w", err)
	}

	return report, nil
}

// selectBinary picks the binary to scaffold: the first one whose
// filename carries the chip's family number, or the first binary
// overall when none does. Acquisition order is lexicographic, so the
// choice is reproducible.
func selectBinary(binaries []acquire.AcquiredBinary, chipID string) (*acquire.AcquiredBinary, []string) {
	chosen := 0
	if num := catalog.ChipNum(chipID); num != "" {
		for i := range binaries {
			if strings.Contains(binaries[i].Filename, num) {
				chosen = i
				break
			}
		}
	}

	var skipped []string
	for i := range binaries {
		if i != chosen {
			skipped = append(skipped, binaries[i].Filename)
		}
	}
	return &binaries[chosen], skipped
}
