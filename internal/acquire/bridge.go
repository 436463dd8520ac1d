package acquire

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// BridgeRunner is the subset of the adb runner the bridge acquirer
// needs. Narrow so tests can substitute a fake device.
type BridgeRunner interface {
	Available() bool
	Devices(ctx context.Context) ([]string, error)
	ListDir(ctx context.Context, dir string) ([]string, error)
	Pull(ctx context.Context, remote, local string) error
}

// remoteFirmwareDirs are the known vendor firmware locations on Android
// devices, probed in order. The first directory containing matching
// binaries wins.
var remoteFirmwareDirs = []string{
	"/vendor/firmware",
	"/system/vendor/firmware",
	"/system/etc/firmware",
	"/system/etc/wifi",
}

// BridgeAcquirer pulls firmware binaries from a connected device via
// the adb bridge.
type BridgeAcquirer struct {
	runner     BridgeRunner
	stagingDir string
	logger     *zap.Logger
}

// Acquire implements Acquirer.
func (a *BridgeAcquirer) Acquire(ctx context.Context) (*Acquisition, error) {
	source := Source{Kind: SourceBridge}

	if !a.runner.Available() {
		return nil, &SourceUnavailableError{
			Source: source,
			Reason: "adb is not installed",
		}
	}

	devices, err := a.runner.Devices(ctx)
	if err != nil {
		return nil, &SourceUnavailableError{
			Source: source,
			Reason: "failed to enumerate devices",
			Err:    err,
		}
	}
	if len(devices) == 0 {
		return nil, &SourceUnavailableError{
			Source: source,
			Reason: "no authorized device connected",
		}
	}
	a.logger.Debug("bridge devices", zap.Strings("serials", devices))

	staging := a.stagingDir
	if staging == "" {
		staging, err = os.MkdirTemp("", "bcmfw-staging-")
		if err != nil {
			return nil, &SourceUnavailableError{
				Source: source,
				Reason: "failed to create staging directory",
				Err:    err,
			}
		}
	}

	for _, dir := range remoteFirmwareDirs {
		entries, err := a.runner.ListDir(ctx, dir)
		if err != nil {
			// Missing directory on this device; try the next one
			a.logger.Debug("remote directory not listable",
				zap.String("dir", dir), zap.Error(err))
			continue
		}

		var matches []string
		for _, name := range entries {
			if MatchesFirmwareName(name) {
				matches = append(matches, name)
			}
		}
		if len(matches) == 0 {
			continue
		}
		sort.Strings(matches)

		return a.transfer(ctx, source, dir, matches, staging)
	}

	return nil, &NoFilesFoundError{
		Source:   source,
		Searched: remoteFirmwareDirs,
		Patterns: FirmwarePatterns(),
	}
}

// transfer pulls every match from one remote directory. A failed pull
// is recorded and the remaining transfers continue; one successful file
// keeps the acquisition alive.
func (a *BridgeAcquirer) transfer(ctx context.Context, source Source, dir string, matches []string, staging string) (*Acquisition, error) {
	acq := &Acquisition{Source: source}

	for _, name := range matches {
		remote := dir + "/" + name
		local := filepath.Join(staging, name)

		if err := a.runner.Pull(ctx, remote, local); err != nil {
			acq.Failures = append(acq.Failures, TransferFailure{OriginPath: remote, Err: err})
			a.logger.Warn("pull failed", zap.String("remote", remote), zap.Error(err))
			continue
		}

		data, err := os.ReadFile(local)
		if err != nil {
			acq.Failures = append(acq.Failures, TransferFailure{OriginPath: remote, Err: err})
			a.logger.Warn("failed to read staged file", zap.String("local", local), zap.Error(err))
			continue
		}

		acq.Binaries = append(acq.Binaries, AcquiredBinary{
			Filename:   name,
			OriginPath: remote,
			Data:       data,
		})
		a.logger.Debug("pulled firmware file",
			zap.String("remote", remote),
			zap.Int("size", len(data)),
		)
	}

	if len(acq.Binaries) == 0 {
		return nil, &SourceUnavailableError{
			Source: source,
			Reason: "all transfers from " + dir + " failed",
			Err:    acq.Failures[0].Err,
		}
	}

	return acq, nil
}
