package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwkit/bcmfw/internal/acquire"
	"github.com/fwkit/bcmfw/internal/catalog"
	"go.uber.org/zap"
)

// Status is the terminal state of one scaffold run.
type Status int

const (
	// StatusSuccess means the target layout exists (presence, not
	// freshness, defines success)
	StatusSuccess Status = iota
	// StatusPartialFailure means some files could not be written
	StatusPartialFailure
	// StatusNotFound means there was nothing to scaffold
	StatusNotFound
)

// String returns the status label used in reports.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusPartialFailure:
		return "partial failure"
	case StatusNotFound:
		return "not found"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Result describes one completed scaffold run. It is created once per
// pipeline run and never mutated after being returned.
type Result struct {
	ChipID    string
	VersionID string
	OutputDir string
	// FilesWritten lists the filenames actually written this run, in
	// write order. Pre-existing template files are not listed.
	FilesWritten []string
	Status       Status
}

// ConfigFileName is the build-configuration template written next to
// the firmware binary.
const ConfigFileName = "definitions.mk"

// BuildFileName is the build entry point referencing the configuration
// and the shared build rules.
const BuildFileName = "Makefile"

// Scaffolder materializes the canonical patch directory layout
// <root>/<chip>/<version>/ with the firmware binary and build
// templates.
type Scaffolder struct {
	outputRoot string
	logger     *zap.Logger
}

// New creates a scaffolder rooted at outputRoot.
func New(outputRoot string, logger *zap.Logger) *Scaffolder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scaffolder{outputRoot: outputRoot, logger: logger}
}

// Scaffold creates the target directory if absent, writes the firmware
// binary (always, overwriting any previous one; last write wins) and
// writes the two build templates only if they do not already exist, so
// user-edited configuration is never clobbered. A nil binary scaffolds
// the templates alone.
//
// Re-running against a fully populated directory is a successful
// no-op for the templates.
func (s *Scaffolder) Scaffold(chipID, versionID string, bin *acquire.AcquiredBinary) (*Result, error) {
	if err := catalog.ValidateChipID(chipID); err != nil {
		return nil, err
	}
	if versionID == "" {
		return nil, fmt.Errorf("version id must not be empty")
	}

	dir := filepath.Join(s.outputRoot, chipID, versionID)
	result := &Result{
		ChipID:    chipID,
		VersionID: versionID,
		OutputDir: dir,
		Status:    StatusSuccess,
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		result.Status = StatusPartialFailure
		return result, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	binaryName := ""
	if bin != nil {
		binaryName = bin.Filename
		path := filepath.Join(dir, bin.Filename)
		if err := os.WriteFile(path, bin.Data, 0o644); err != nil {
			result.Status = StatusPartialFailure
			return result, fmt.Errorf("failed to write firmware binary %s: %w", path, err)
		}
		result.FilesWritten = append(result.FilesWritten, bin.Filename)
		s.logger.Debug("wrote firmware binary",
			zap.String("path", path),
			zap.Int("size", len(bin.Data)),
		)
	}

	templates := []struct {
		name    string
		content string
	}{
		{ConfigFileName, renderDefinitions(chipID, versionID, binaryName)},
		{BuildFileName, renderBuildFile()},
	}
	for _, tmpl := range templates {
		written, err := writeIfAbsent(filepath.Join(dir, tmpl.name), tmpl.content)
		if err != nil {
			result.Status = StatusPartialFailure
			return result, fmt.Errorf("failed to write %s: %w", tmpl.name, err)
		}
		if written {
			result.FilesWritten = append(result.FilesWritten, tmpl.name)
			s.logger.Debug("wrote build template", zap.String("file", tmpl.name))
		}
	}

	return result, nil
}

// writeIfAbsent writes content to path unless a file already exists
// there. Returns whether a write happened.
func writeIfAbsent(path, content string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
