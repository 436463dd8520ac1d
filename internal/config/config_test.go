package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFrom_MissingFile(t *testing.T) {
	prefs, err := loadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}
	if prefs.OutputRoot != "" || prefs.LastDetection != nil {
		t.Errorf("loadFrom() = %+v, want empty preferences", prefs)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	want := &Preferences{
		OutputRoot: "/data/firmwares",
		ADBPath:    "/opt/platform-tools/adb",
		NoColor:    true,
		LastDetection: &LastDetection{
			ChipID:     "bcm43455c0",
			VersionID:  "7_45_206",
			Strategy:   "device-tree board model",
			DetectedAt: time.Date(2024, 11, 3, 9, 30, 0, 0, time.UTC),
		},
	}
	if err := saveTo(path, want); err != nil {
		t.Fatalf("saveTo() error = %v", err)
	}

	got, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}
	if got.OutputRoot != want.OutputRoot || got.ADBPath != want.ADBPath || got.NoColor != want.NoColor {
		t.Errorf("loadFrom() = %+v, want %+v", got, want)
	}
	if got.LastDetection == nil {
		t.Fatal("LastDetection not persisted")
	}
	if got.LastDetection.ChipID != "bcm43455c0" || !got.LastDetection.DetectedAt.Equal(want.LastDetection.DetectedAt) {
		t.Errorf("LastDetection = %+v, want %+v", got.LastDetection, want.LastDetection)
	}
}

func TestSaveTo_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := saveTo(path, &Preferences{OutputRoot: "old"}); err != nil {
		t.Fatal(err)
	}
	if err := saveTo(path, &Preferences{OutputRoot: "new"}); err != nil {
		t.Fatal(err)
	}

	got, err := loadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.OutputRoot != "new" {
		t.Errorf("OutputRoot = %q, want %q", got.OutputRoot, "new")
	}

	// No stray temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("config dir has %d entries, want 1", len(entries))
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("output_root: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadFrom(path); err == nil {
		t.Error("loadFrom() error = nil, want parse error")
	}
}
