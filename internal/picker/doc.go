// Package picker implements the interactive selection lists used when
// identification is ambiguous: choosing among multiple detected chips
// and choosing a firmware version from the catalog. Single-option
// choices resolve without showing the TUI.
package picker
