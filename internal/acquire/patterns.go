package acquire

import "path/filepath"

// firmwarePatterns are the two vendor naming conventions for Broadcom
// WiFi firmware blobs: the fullmac "fw_bcm*.bin" convention used on
// Android vendor partitions and the "brcmfmac*.bin" convention used by
// the Linux brcmfmac driver.
var firmwarePatterns = []string{
	"fw_bcm*.bin",
	"brcmfmac*.bin",
}

// FirmwarePatterns returns the filename patterns used to recognize
// firmware binaries, for use in diagnostics.
func FirmwarePatterns() []string {
	patterns := make([]string, len(firmwarePatterns))
	copy(patterns, firmwarePatterns)
	return patterns
}

// MatchesFirmwareName reports whether a filename (base name, not a
// path) looks like a Broadcom WiFi firmware binary.
func MatchesFirmwareName(name string) bool {
	for _, pattern := range firmwarePatterns {
		// Patterns are static and valid; Match cannot fail on them
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
