package catalog

import (
	"reflect"
	"testing"
)

func TestValidateChipID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "with revision", id: "bcm43455c0", wantErr: false},
		{name: "without revision", id: "bcm4339", wantErr: false},
		{name: "uppercase", id: "BCM43455C0", wantErr: true},
		{name: "missing prefix", id: "43455c0", wantErr: true},
		{name: "empty", id: "", wantErr: true},
		{name: "revision without digit", id: "bcm43455c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChipID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateChipID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestChipNum(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{id: "bcm43455c0", want: "43455"},
		{id: "bcm4339", want: "4339"},
		{id: "bcm43430a1", want: "43430"},
		{id: "not-a-chip", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := ChipNum(tt.id); got != tt.want {
				t.Errorf("ChipNum(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestRankedCandidates(t *testing.T) {
	profile := &ChipProfile{
		ChipID:      "bcm43455c0",
		DisplayName: "BCM43455C0",
		Candidates: []FirmwareCandidate{
			{VersionID: "v1", Rank: 2},
			{VersionID: "v2", Rank: 1},
			{VersionID: "v3", Rank: 1},
		},
	}

	ranked := profile.RankedCandidates()

	var order []string
	for _, c := range ranked {
		order = append(order, c.VersionID)
	}

	// Rank ascending, declaration order as tiebreak
	want := []string{"v2", "v3", "v1"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("RankedCandidates() order = %v, want %v", order, want)
	}

	// Original declaration order must not be disturbed
	if profile.Candidates[0].VersionID != "v1" {
		t.Error("RankedCandidates() mutated the profile's candidate order")
	}
}

func TestRecommended(t *testing.T) {
	t.Run("picks lowest rank", func(t *testing.T) {
		profile := &ChipProfile{
			Candidates: []FirmwareCandidate{
				{VersionID: "old", Rank: 3},
				{VersionID: "best", Rank: 1},
			},
		}
		got, ok := profile.Recommended()
		if !ok {
			t.Fatal("Recommended() ok = false, want true")
		}
		if got.VersionID != "best" {
			t.Errorf("Recommended() = %s, want best", got.VersionID)
		}
	})

	t.Run("empty profile", func(t *testing.T) {
		profile := &ChipProfile{}
		if _, ok := profile.Recommended(); ok {
			t.Error("Recommended() ok = true for empty profile, want false")
		}
	})
}

func TestCandidate(t *testing.T) {
	profile := &ChipProfile{
		Candidates: []FirmwareCandidate{
			{VersionID: "7_45_206", PatchPath: "bcm43455c0/7_45_206", Rank: 1},
		},
	}

	if _, ok := profile.Candidate("7_45_206"); !ok {
		t.Error("Candidate(7_45_206) not found")
	}
	if _, ok := profile.Candidate("0_0_0"); ok {
		t.Error("Candidate(0_0_0) found, want missing")
	}
}
