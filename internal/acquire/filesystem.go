package acquire

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// FilesystemAcquirer recursively scans a local directory tree for
// firmware binaries and reads every match.
type FilesystemAcquirer struct {
	root   string
	kind   SourceKind // SourceFilesystem unless wrapped by ImageAcquirer
	logger *zap.Logger
}

// Acquire implements Acquirer.
func (a *FilesystemAcquirer) Acquire(ctx context.Context) (*Acquisition, error) {
	kind := a.kind
	if kind != SourceImage {
		kind = SourceFilesystem
	}
	source := Source{Kind: kind, Path: a.root}

	info, err := os.Stat(a.root)
	if err != nil {
		return nil, &SourceUnavailableError{
			Source: source,
			Reason: "path does not exist",
			Err:    err,
		}
	}
	if !info.IsDir() {
		return nil, &SourceUnavailableError{
			Source: source,
			Reason: "path is not a directory",
		}
	}

	var matches []string
	err = filepath.WalkDir(a.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal
			a.logger.Warn("skipping unreadable path", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.IsDir() && MatchesFirmwareName(d.Name()) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		return nil, &NoFilesFoundError{
			Source:   source,
			Searched: []string{a.root},
			Patterns: FirmwarePatterns(),
		}
	}

	// Lexicographic by filename so pick-first logic is reproducible
	sort.Slice(matches, func(i, j int) bool {
		ni, nj := filepath.Base(matches[i]), filepath.Base(matches[j])
		if ni != nj {
			return ni < nj
		}
		return matches[i] < matches[j]
	})

	acq := &Acquisition{Source: source}
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			acq.Failures = append(acq.Failures, TransferFailure{OriginPath: path, Err: err})
			a.logger.Warn("failed to read firmware file", zap.String("path", path), zap.Error(err))
			continue
		}
		acq.Binaries = append(acq.Binaries, AcquiredBinary{
			Filename:   filepath.Base(path),
			OriginPath: path,
			Data:       data,
		})
		a.logger.Debug("acquired firmware file",
			zap.String("path", path),
			zap.Int("size", len(data)),
		)
	}

	if len(acq.Binaries) == 0 {
		// Matches existed but none could be read
		return nil, &SourceUnavailableError{
			Source: source,
			Reason: "matched firmware files could not be read",
			Err:    acq.Failures[0].Err,
		}
	}

	return acq, nil
}
