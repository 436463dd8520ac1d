package acquire

import (
	"errors"
	"fmt"
	"strings"
)

// SourceUnavailableError reports that a source could not be reached at
// all: the bridge tool is missing, no authorized device is connected,
// or a given path does not exist. Extraction aborts for that source.
type SourceUnavailableError struct {
	// Source describes the unreachable source
	Source Source
	// Reason says what exactly is missing (tool, device, path)
	Reason string
	// Underlying error if any
	Err error
}

func (e *SourceUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("source unavailable (%s): %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("source unavailable (%s): %s", e.Source, e.Reason)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// NoFilesFoundError reports that a source was reachable but held no
// firmware files matching the known naming conventions.
type NoFilesFoundError struct {
	// Source describes the searched source
	Source Source
	// Searched lists the locations that were probed
	Searched []string
	// Patterns lists the filename patterns that were tried
	Patterns []string
}

func (e *NoFilesFoundError) Error() string {
	return fmt.Sprintf("no firmware files found (%s): searched %s for %s",
		e.Source,
		strings.Join(e.Searched, ", "),
		strings.Join(e.Patterns, ", "))
}

// IsSourceUnavailable reports whether err is a SourceUnavailableError.
func IsSourceUnavailable(err error) bool {
	var e *SourceUnavailableError
	return errors.As(err, &e)
}

// IsNoFilesFound reports whether err is a NoFilesFoundError.
func IsNoFilesFound(err error) bool {
	var e *NoFilesFoundError
	return errors.As(err, &e)
}
