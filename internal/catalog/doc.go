// Package catalog holds the static chip and firmware knowledge base.
//
// The catalog maps three kinds of device signatures to chip profiles:
//
//   - device-tree board model strings (substring match, table order)
//   - Android platform property triples (exact match)
//   - chip-family numeric fragments found in kernel logs and firmware
//     filenames (longest fragment wins)
//
// Each chip profile carries an ordered list of known firmware versions
// with their patch directories. Candidates are ranked; lower rank is
// preferred and ties are broken by catalog declaration order.
//
// The data lives in catalog.yaml, embedded into the binary. Lookup
// tables are first-class data rather than switch statements so the
// match priority itself is visible and testable.
package catalog
