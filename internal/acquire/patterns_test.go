package acquire

import "testing"

func TestMatchesFirmwareName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{name: "fw_bcm43455c0.bin", want: true},
		{name: "fw_bcm4339.bin", want: true},
		{name: "brcmfmac43430-sdio.bin", want: true},
		{name: "brcmfmac43455-sdio.raspberrypi,4-model-b.bin", want: true},
		{name: "unrelated.txt", want: false},
		{name: "fw_bcm43455c0.txt", want: false},
		{name: "nvram_bcm43455c0.txt", want: false},
		{name: "brcmfmac43430-sdio.clm_blob", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesFirmwareName(tt.name); got != tt.want {
				t.Errorf("MatchesFirmwareName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		wantKind SourceKind
		wantPath string
		wantErr  bool
	}{
		{name: "adb literal", value: "adb", wantKind: SourceBridge},
		{name: "directory path", value: "/tmp/fw", wantKind: SourceFilesystem, wantPath: "/tmp/fw"},
		{name: "relative path", value: "firmware", wantKind: SourceFilesystem, wantPath: "firmware"},
		{name: "empty", value: "", wantErr: true},
		{name: "whitespace", value: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := ParseSource(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSource(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if src.Kind != tt.wantKind {
				t.Errorf("ParseSource(%q).Kind = %v, want %v", tt.value, src.Kind, tt.wantKind)
			}
			if src.Path != tt.wantPath {
				t.Errorf("ParseSource(%q).Path = %q, want %q", tt.value, src.Path, tt.wantPath)
			}
		})
	}
}
