// Package detect identifies the Broadcom WiFi chip present on a host.
//
// # Strategy Chain
//
// Detection runs an ordered chain of strategies, each consuming a
// different signal source, stopping at the first success:
//
//  1. Device-tree board model string (exact hardware identity)
//  2. Android platform property triple (exact hardware identity)
//  3. Kernel log scan for Broadcom driver lines (best-effort guess)
//  4. Firmware blob filenames on the local filesystem (best-effort
//     guess; may report multiple candidate chips)
//
// The priority order is part of the correctness contract: strategies
// run strictly sequentially and a later strategy never runs when an
// earlier one succeeds.
//
// # Probes
//
// Strategies read the environment only through the narrow probe
// interfaces in probes.go. A probe that cannot reach its signal source
// (no device tree, no getprop binary) makes the strategy decline; a
// decline is never an error. HostProbes returns the real host
// implementations; tests supply fakes.
//
// # Confidence
//
// Exact results come from trusted hardware identity and can be acted
// on directly. Likely results are guesses and must be reported as
// such. An empty result set means detection was inconclusive, which is
// a valid reportable outcome, not a failure.
package detect
