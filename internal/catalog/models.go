package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// chipIDPattern is the naming convention for chip identifiers:
// "bcm" followed by the model number and an optional revision suffix,
// all lowercase alphanumeric (e.g. "bcm43455c0", "bcm4339").
var chipIDPattern = regexp.MustCompile(`^bcm[0-9]+([a-z][0-9]+)?$`)

// ChipProfile describes one Broadcom WiFi chip model and its known
// firmware-patch candidates. Profiles are static catalog data and are
// never mutated at runtime.
type ChipProfile struct {
	// ChipID is the canonical identifier (e.g. "bcm43455c0")
	ChipID string `yaml:"chip_id"`

	// DisplayName is the human-readable chip name (e.g. "BCM43455C0")
	DisplayName string `yaml:"display_name"`

	// Candidates lists known firmware versions in catalog declaration order.
	// Use RankedCandidates for the recommendation order.
	Candidates []FirmwareCandidate `yaml:"candidates"`
}

// FirmwareCandidate is one known firmware version for a chip, with its
// patch directory and a recommendation rank (lower = preferred).
type FirmwareCandidate struct {
	// VersionID is the firmware version tag (e.g. "7_45_206")
	VersionID string `yaml:"version_id"`

	// PatchPath is the patch directory relative to the patches root
	// (e.g. "bcm43455c0/7_45_206")
	PatchPath string `yaml:"patch_path"`

	// Rank is the recommendation order; lower is preferred. Ties are
	// broken by catalog declaration order.
	Rank int `yaml:"rank"`

	// Note is free-form guidance shown to the operator
	Note string `yaml:"note,omitempty"`
}

// ValidateChipID checks that id follows the bcm<model><revision> naming
// convention used throughout the catalog and the output directory layout.
func ValidateChipID(id string) error {
	if !chipIDPattern.MatchString(id) {
		return fmt.Errorf("invalid chip id %q: expected bcm<model><revision> (lowercase alphanumeric, e.g. bcm43455c0)", id)
	}
	return nil
}

// ChipNum returns the numeric chip identifier embedded in the chip id,
// e.g. "43455" for "bcm43455c0". Returns an empty string if the id does
// not follow the naming convention.
func ChipNum(chipID string) string {
	if !strings.HasPrefix(chipID, "bcm") {
		return ""
	}
	rest := chipID[len("bcm"):]
	for i, r := range rest {
		if r < '0' || r > '9' {
			return rest[:i]
		}
	}
	return rest
}

// RankedCandidates returns the firmware candidates in recommendation
// order: rank ascending, declaration order as tiebreak.
func (p *ChipProfile) RankedCandidates() []FirmwareCandidate {
	ranked := make([]FirmwareCandidate, len(p.Candidates))
	copy(ranked, p.Candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rank < ranked[j].Rank
	})
	return ranked
}

// Recommended returns the preferred firmware candidate, or false if the
// profile has no candidates.
func (p *ChipProfile) Recommended() (FirmwareCandidate, bool) {
	ranked := p.RankedCandidates()
	if len(ranked) == 0 {
		return FirmwareCandidate{}, false
	}
	return ranked[0], true
}

// Candidate looks up a candidate by version id.
func (p *ChipProfile) Candidate(versionID string) (FirmwareCandidate, bool) {
	for _, c := range p.Candidates {
		if c.VersionID == versionID {
			return c, true
		}
	}
	return FirmwareCandidate{}, false
}

// String returns a short human-readable description of the profile.
func (p *ChipProfile) String() string {
	return fmt.Sprintf("%s (%s, %d firmware candidate(s))", p.DisplayName, p.ChipID, len(p.Candidates))
}
