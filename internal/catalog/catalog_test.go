package catalog

import (
	"testing"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	if len(c.Chips) == 0 {
		t.Fatal("embedded catalog has no chips")
	}
	if len(c.Boards) == 0 {
		t.Error("embedded catalog has no board table")
	}
	if len(c.Devices) == 0 {
		t.Error("embedded catalog has no device table")
	}
	if len(c.Fragments) == 0 {
		t.Error("embedded catalog has no fragment table")
	}

	// Every chip must have at least one firmware candidate
	for _, chip := range c.Chips {
		if len(chip.Candidates) == 0 {
			t.Errorf("chip %s has no firmware candidates", chip.ChipID)
		}
	}
}

func TestByBoardModel(t *testing.T) {
	c := MustDefault()

	tests := []struct {
		name     string
		model    string
		wantChip string
		wantOK   bool
	}{
		{
			name:     "Pi 3B+ matches before Pi 3B",
			model:    "Raspberry Pi 3 Model B Plus Rev 1.3",
			wantChip: "bcm43455c0",
			wantOK:   true,
		},
		{
			name:     "Pi 3B",
			model:    "Raspberry Pi 3 Model B Rev 1.2",
			wantChip: "bcm43430a1",
			wantOK:   true,
		},
		{
			name:     "Pi 4B",
			model:    "Raspberry Pi 4 Model B Rev 1.4",
			wantChip: "bcm43455c0",
			wantOK:   true,
		},
		{
			name:     "Zero 2 W matches before Zero W",
			model:    "Raspberry Pi Zero 2 W Rev 1.0",
			wantChip: "bcm43436b0",
			wantOK:   true,
		},
		{
			name:     "Zero W",
			model:    "Raspberry Pi Zero W Rev 1.1",
			wantChip: "bcm43430a1",
			wantOK:   true,
		},
		{
			name:   "unknown board",
			model:  "BeagleBone Black",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, ok := c.ByBoardModel(tt.model)
			if ok != tt.wantOK {
				t.Fatalf("ByBoardModel(%q) ok = %v, want %v", tt.model, ok, tt.wantOK)
			}
			if ok && profile.ChipID != tt.wantChip {
				t.Errorf("ByBoardModel(%q) = %s, want %s", tt.model, profile.ChipID, tt.wantChip)
			}
		})
	}
}

func TestByDeviceTriple(t *testing.T) {
	c := MustDefault()

	tests := []struct {
		name                        string
		manufacturer, model, device string
		wantChip                    string
		wantOK                      bool
	}{
		{
			name:         "Nexus 5",
			manufacturer: "LGE",
			model:        "Nexus 5",
			device:       "hammerhead",
			wantChip:     "bcm4339",
			wantOK:       true,
		},
		{
			name:         "case insensitive",
			manufacturer: "lge",
			model:        "nexus 5",
			device:       "HAMMERHEAD",
			wantChip:     "bcm4339",
			wantOK:       true,
		},
		{
			name:         "partial triple does not match",
			manufacturer: "LGE",
			model:        "Nexus 5",
			device:       "unknown",
			wantOK:       false,
		},
		{
			name:         "unknown device",
			manufacturer: "Sony",
			model:        "Xperia Z3",
			device:       "leo",
			wantOK:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, ok := c.ByDeviceTriple(tt.manufacturer, tt.model, tt.device)
			if ok != tt.wantOK {
				t.Fatalf("ByDeviceTriple() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && profile.ChipID != tt.wantChip {
				t.Errorf("ByDeviceTriple() = %s, want %s", profile.ChipID, tt.wantChip)
			}
		})
	}
}

func TestByFragment(t *testing.T) {
	c := MustDefault()

	tests := []struct {
		name     string
		text     string
		wantChip string
		wantOK   bool
	}{
		{
			name:     "dmesg line",
			text:     "brcmfmac: brcmf_c_preinit_dcmds: Firmware: BCM43455/9 wl0: Feb 27 2018",
			wantChip: "bcm43455c0",
			wantOK:   true,
		},
		{
			name:     "firmware filename",
			text:     "fw_bcm43436b0.bin",
			wantChip: "bcm43436b0",
			wantOK:   true,
		},
		{
			name:     "short family number",
			text:     "bcmdhd 4339 driver loaded",
			wantChip: "bcm4339",
			wantOK:   true,
		},
		{
			name:   "no fragment",
			text:   "ath9k: loaded",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, ok := c.ByFragment(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ByFragment(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if ok && profile.ChipID != tt.wantChip {
				t.Errorf("ByFragment(%q) = %s, want %s", tt.text, profile.ChipID, tt.wantChip)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "malformed yaml",
			data: "chips: [",
		},
		{
			name: "bad chip id",
			data: `
chips:
  - chip_id: BCM43455
    display_name: BCM43455
    candidates:
      - version_id: 1_0
        patch_path: x/1_0
        rank: 1
`,
		},
		{
			name: "duplicate chip",
			data: `
chips:
  - chip_id: bcm4339
    display_name: BCM4339
    candidates: []
  - chip_id: bcm4339
    display_name: BCM4339
    candidates: []
`,
		},
		{
			name: "board references unknown chip",
			data: `
chips:
  - chip_id: bcm4339
    display_name: BCM4339
    candidates: []
boards:
  - model: Some Board
    chip_id: bcm9999
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("Parse() expected error, got nil")
			}
		})
	}
}
