package adb

import (
	"reflect"
	"testing"
	"time"
)

func TestParseDeviceList(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{
			name:   "single device",
			output: "List of devices attached\n0a3b1c2d\tdevice\n\n",
			want:   []string{"0a3b1c2d"},
		},
		{
			name:   "unauthorized excluded",
			output: "List of devices attached\n0a3b1c2d\tunauthorized\n\n",
			want:   nil,
		},
		{
			name:   "offline excluded",
			output: "List of devices attached\nemulator-5554\toffline\n9f8e7d6c\tdevice\n",
			want:   []string{"9f8e7d6c"},
		},
		{
			name:   "no devices",
			output: "List of devices attached\n\n",
			want:   nil,
		},
		{
			name:   "windows line endings",
			output: "List of devices attached\r\n0a3b1c2d\tdevice\r\n\r\n",
			want:   []string{"0a3b1c2d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseDeviceList(tt.output); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseDeviceList() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewRunner_Defaults(t *testing.T) {
	r := NewRunner(Config{}, nil)

	if r.config.ADBPath != "adb" {
		t.Errorf("default ADBPath = %q, want adb", r.config.ADBPath)
	}
	if r.config.Timeout != 2*time.Minute {
		t.Errorf("default Timeout = %v, want 2m", r.config.Timeout)
	}
}
