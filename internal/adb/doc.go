// Package adb wraps the Android Debug Bridge executable.
//
// The bridge is an external collaborator: this package only checks for
// its presence, enumerates authorized devices, lists remote directories
// and pulls files. Every invocation runs with a timeout and captured
// output; a missing adb binary is reported as ErrBridgeMissing so the
// acquisition layer can translate it into a source-unavailable
// diagnostic instead of crashing.
//
// NewRunner(Config{}, logger) uses "adb" from PATH with a 2 minute
// per-invocation timeout.
package adb
