// Package acquire pulls Broadcom WiFi firmware binaries out of a
// source and into memory, ready for scaffolding.
//
// Three acquisition strategies exist behind the Acquirer interface,
// selected by the Source descriptor:
//
//   - adb bridge: probes an ordered list of known vendor firmware
//     directories on a connected device and pulls all matches from the
//     first directory that has any
//   - filesystem: recursively scans a local directory tree
//   - firmware image: the filesystem scan applied to a mounted or
//     extracted image root
//
// Filenames are matched against the two vendor naming conventions
// (fw_bcm*.bin, brcmfmac*.bin) and results are ordered
// lexicographically by filename, so "pick first match" downstream is
// reproducible across runs.
//
// Error taxonomy: SourceUnavailableError means the source could not be
// reached at all (missing tool, no authorized device, missing path);
// NoFilesFoundError means it was reachable but empty. A failure to
// transfer an individual file is recorded on the Acquisition and never
// aborts the remaining transfers; one successful file keeps the run
// alive, with Acquisition.Partial reporting the degraded outcome.
package acquire
