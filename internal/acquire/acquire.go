package acquire

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// SourceKind selects which acquisition strategy runs.
type SourceKind int

const (
	// SourceBridge acquires from a connected device via the adb bridge
	SourceBridge SourceKind = iota
	// SourceFilesystem acquires from a local directory tree
	SourceFilesystem
	// SourceImage acquires from a mounted/extracted firmware image root
	SourceImage
)

// String returns the kind name used in diagnostics.
func (k SourceKind) String() string {
	switch k {
	case SourceBridge:
		return "adb bridge"
	case SourceFilesystem:
		return "filesystem"
	case SourceImage:
		return "firmware image"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Source describes where firmware binaries are acquired from. Bridge
// sources have no path; filesystem and image sources carry the local
// root directory.
type Source struct {
	Kind SourceKind
	Path string
}

// ParseSource interprets a CLI --source value. The literal "adb"
// selects the bridge strategy; anything else is taken as a local
// directory path (existence is checked by the acquirer, not here).
func ParseSource(value string) (Source, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Source{}, fmt.Errorf("source must be \"adb\" or a directory path")
	}
	if value == "adb" {
		return Source{Kind: SourceBridge}, nil
	}
	return Source{Kind: SourceFilesystem, Path: value}, nil
}

// String returns a human-readable source description.
func (s Source) String() string {
	if s.Kind == SourceBridge {
		return s.Kind.String()
	}
	return fmt.Sprintf("%s %s", s.Kind, s.Path)
}

// AcquiredBinary is one firmware binary pulled from a source. The
// acquisition step owns the bytes until they are handed to the
// scaffolder, which persists them.
type AcquiredBinary struct {
	// Filename is the original firmware filename (e.g. "fw_bcm43455c0.bin")
	Filename string

	// OriginPath is where the binary came from (local path or remote
	// device path)
	OriginPath string

	// Data is the binary content
	Data []byte
}

// TransferFailure records one file that matched but could not be
// transferred. Failures never abort the remaining transfers.
type TransferFailure struct {
	OriginPath string
	Err        error
}

// Acquisition is the outcome of one acquire run. Binaries are ordered
// lexicographically by filename so downstream pick-first logic is
// reproducible across runs.
type Acquisition struct {
	Source   Source
	Binaries []AcquiredBinary
	Failures []TransferFailure
}

// Partial reports whether some matched files failed to transfer while
// at least one succeeded.
func (a *Acquisition) Partial() bool {
	return len(a.Binaries) > 0 && len(a.Failures) > 0
}

// Acquirer yields firmware binaries from one source kind.
type Acquirer interface {
	// Acquire locates and transfers matching firmware binaries.
	// It fails with a SourceUnavailableError when the source cannot be
	// reached at all and a NoFilesFoundError when it is reachable but
	// holds no matching files.
	Acquire(ctx context.Context) (*Acquisition, error)
}

// Options carries the collaborators an acquirer may need.
type Options struct {
	// Bridge runs adb commands; required for SourceBridge
	Bridge BridgeRunner

	// StagingDir receives bridge transfers before they are read into
	// memory. Defaults to a fresh temporary directory.
	StagingDir string

	// Logger defaults to a nop logger
	Logger *zap.Logger
}

// New returns the acquirer for the given source.
func New(source Source, opts Options) (Acquirer, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	switch source.Kind {
	case SourceBridge:
		if opts.Bridge == nil {
			return nil, fmt.Errorf("bridge source requires an adb runner")
		}
		return &BridgeAcquirer{runner: opts.Bridge, stagingDir: opts.StagingDir, logger: logger}, nil
	case SourceFilesystem:
		return &FilesystemAcquirer{root: source.Path, logger: logger}, nil
	case SourceImage:
		return &ImageAcquirer{fs: &FilesystemAcquirer{root: source.Path, kind: SourceImage, logger: logger}}, nil
	default:
		return nil, fmt.Errorf("unsupported source kind %d", source.Kind)
	}
}
