package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwkit/bcmfw/internal/acquire"
	"github.com/fwkit/bcmfw/internal/scaffold"
)

func writeFirmware(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte{0xaa, 0xbb}, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRun_EndToEnd(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeFirmware(t, src, "fw_bcm43455c0.bin")

	report, err := Run(context.Background(), Options{
		Source:     acquire.Source{Kind: acquire.SourceFilesystem, Path: src},
		ChipID:     "bcm43455c0",
		VersionID:  "7_45_206",
		OutputRoot: out,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Result.Status != scaffold.StatusSuccess {
		t.Errorf("Status = %v, want success", report.Result.Status)
	}

	dir := filepath.Join(out, "bcm43455c0", "7_45_206")
	for _, name := range []string{"fw_bcm43455c0.bin", "definitions.mk", "Makefile"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected output file %s missing: %v", name, err)
		}
	}
}

func TestRun_EmptySourceWritesNothing(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()

	_, err := Run(context.Background(), Options{
		Source:     acquire.Source{Kind: acquire.SourceFilesystem, Path: src},
		ChipID:     "bcm43455c0",
		VersionID:  "7_45_206",
		OutputRoot: out,
	})
	if !acquire.IsNoFilesFound(err) {
		t.Fatalf("Run() error = %v, want NoFilesFoundError", err)
	}

	// No directory may be created before acquisition succeeds
	if _, statErr := os.Stat(filepath.Join(out, "bcm43455c0")); !os.IsNotExist(statErr) {
		t.Error("Run() created output directories despite empty source")
	}
}

func TestRun_MissingSourcePath(t *testing.T) {
	out := t.TempDir()

	_, err := Run(context.Background(), Options{
		Source:     acquire.Source{Kind: acquire.SourceFilesystem, Path: filepath.Join(out, "nope")},
		ChipID:     "bcm43455c0",
		VersionID:  "7_45_206",
		OutputRoot: out,
	})
	if !acquire.IsSourceUnavailable(err) {
		t.Errorf("Run() error = %v, want SourceUnavailableError", err)
	}
}

func TestRun_SelectsBinaryMatchingChip(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	// Lexicographically the bcm4339 binary comes first; the chip hint
	// must still win.
	writeFirmware(t, src, "fw_bcm4339.bin")
	writeFirmware(t, src, "fw_bcm43455c0.bin")

	report, err := Run(context.Background(), Options{
		Source:     acquire.Source{Kind: acquire.SourceFilesystem, Path: src},
		ChipID:     "bcm43455c0",
		VersionID:  "7_45_206",
		OutputRoot: out,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Selected.Filename != "fw_bcm43455c0.bin" {
		t.Errorf("Selected = %s, want fw_bcm43455c0.bin", report.Selected.Filename)
	}
	if len(report.Skipped) != 1 || report.Skipped[0] != "fw_bcm4339.bin" {
		t.Errorf("Skipped = %v, want [fw_bcm4339.bin]", report.Skipped)
	}
}

func TestRun_ValidatesInputs(t *testing.T) {
	src := t.TempDir()

	tests := []struct {
		name string
		opts Options
	}{
		{
			name: "bad chip id",
			opts: Options{
				Source:     acquire.Source{Kind: acquire.SourceFilesystem, Path: src},
				ChipID:     "not-a-chip",
				VersionID:  "7_45_206",
				OutputRoot: t.TempDir(),
			},
		},
		{
			name: "missing version",
			opts: Options{
				Source:     acquire.Source{Kind: acquire.SourceFilesystem, Path: src},
				ChipID:     "bcm43455c0",
				OutputRoot: t.TempDir(),
			},
		},
		{
			name: "missing output root",
			opts: Options{
				Source:    acquire.Source{Kind: acquire.SourceFilesystem, Path: src},
				ChipID:    "bcm43455c0",
				VersionID: "7_45_206",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Run(context.Background(), tt.opts); err == nil {
				t.Error("Run() error = nil, want validation error")
			}
		})
	}
}
