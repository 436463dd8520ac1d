package picker

import (
	"testing"

	"github.com/fwkit/bcmfw/internal/catalog"
)

func TestChoose_SingleOptionSkipsTUI(t *testing.T) {
	idx, err := Choose("pick", []Option{{Label: "only"}})
	if err != nil {
		t.Fatalf("Choose() error = %v", err)
	}
	if idx != 0 {
		t.Errorf("Choose() = %d, want 0", idx)
	}
}

func TestChoose_NoOptions(t *testing.T) {
	if _, err := Choose("pick", nil); err == nil {
		t.Error("Choose() error = nil, want error")
	}
}

func TestChooseCandidate_SingleVersion(t *testing.T) {
	profile := &catalog.ChipProfile{
		ChipID: "bcm4339",
		Candidates: []catalog.FirmwareCandidate{
			{VersionID: "6_37_34_43", Rank: 1},
		},
	}

	got, err := ChooseCandidate(profile)
	if err != nil {
		t.Fatalf("ChooseCandidate() error = %v", err)
	}
	if got.VersionID != "6_37_34_43" {
		t.Errorf("VersionID = %s, want 6_37_34_43", got.VersionID)
	}
}

func TestChooseCandidate_NoVersions(t *testing.T) {
	if _, err := ChooseCandidate(&catalog.ChipProfile{ChipID: "bcm4339"}); err == nil {
		t.Error("ChooseCandidate() error = nil, want error")
	}
}

func TestChipLabel(t *testing.T) {
	tests := []struct {
		name    string
		profile catalog.ChipProfile
		want    string
	}{
		{
			name:    "with display name",
			profile: catalog.ChipProfile{ChipID: "bcm43430a1", DisplayName: "BCM43430/1"},
			want:    "bcm43430a1 (BCM43430/1)",
		},
		{
			name:    "without display name",
			profile: catalog.ChipProfile{ChipID: "bcm4339"},
			want:    "bcm4339",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := chipLabel(&tt.profile); got != tt.want {
				t.Errorf("chipLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}
