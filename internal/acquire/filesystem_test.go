package acquire

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFilesystemAcquirer_MatchesOnlyFirmware(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "fw_bcm43455c0.bin", []byte{0xde, 0xad})
	writeFile(t, dir, "unrelated.txt", []byte("nope"))

	acquirer, err := New(Source{Kind: SourceFilesystem, Path: dir}, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	acq, err := acquirer.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	if len(acq.Binaries) != 1 {
		t.Fatalf("Acquire() returned %d binaries, want 1", len(acq.Binaries))
	}
	if acq.Binaries[0].Filename != "fw_bcm43455c0.bin" {
		t.Errorf("acquired %s, want fw_bcm43455c0.bin", acq.Binaries[0].Filename)
	}
	if len(acq.Binaries[0].Data) != 2 {
		t.Errorf("acquired %d bytes, want 2", len(acq.Binaries[0].Data))
	}
	if acq.Partial() {
		t.Error("Partial() = true, want false")
	}
}

func TestFilesystemAcquirer_MissingPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	acquirer, err := New(Source{Kind: SourceFilesystem, Path: missing}, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = acquirer.Acquire(context.Background())
	if !IsSourceUnavailable(err) {
		t.Errorf("Acquire(missing path) error = %v, want SourceUnavailableError", err)
	}
}

func TestFilesystemAcquirer_PathIsFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fw_bcm43455c0.bin", []byte{1})

	acquirer, err := New(Source{Kind: SourceFilesystem, Path: path}, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = acquirer.Acquire(context.Background())
	if !IsSourceUnavailable(err) {
		t.Errorf("Acquire(file path) error = %v, want SourceUnavailableError", err)
	}
}

func TestFilesystemAcquirer_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "readme.md", []byte("x"))

	acquirer, err := New(Source{Kind: SourceFilesystem, Path: dir}, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = acquirer.Acquire(context.Background())
	if !IsNoFilesFound(err) {
		t.Errorf("Acquire(empty dir) error = %v, want NoFilesFoundError", err)
	}
}

func TestFilesystemAcquirer_RecursiveAndOrdered(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sub/brcmfmac43430-sdio.bin", []byte{2})
	writeFile(t, dir, "fw_bcm43455c0.bin", []byte{1})
	writeFile(t, dir, "sub/deeper/brcmfmac43455-sdio.bin", []byte{3})

	acquirer, err := New(Source{Kind: SourceFilesystem, Path: dir}, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	acq, err := acquirer.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	if len(acq.Binaries) != 3 {
		t.Fatalf("Acquire() returned %d binaries, want 3", len(acq.Binaries))
	}

	// Lexicographic by filename, regardless of directory depth
	want := []string{"brcmfmac43430-sdio.bin", "brcmfmac43455-sdio.bin", "fw_bcm43455c0.bin"}
	for i, name := range want {
		if acq.Binaries[i].Filename != name {
			t.Errorf("Binaries[%d] = %s, want %s", i, acq.Binaries[i].Filename, name)
		}
	}
}

func TestImageAcquirer_DelegatesToScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "system/etc/wifi/fw_bcm4339.bin", []byte{9})

	acquirer, err := New(Source{Kind: SourceImage, Path: dir}, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	acq, err := acquirer.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	if len(acq.Binaries) != 1 {
		t.Fatalf("Acquire() returned %d binaries, want 1", len(acq.Binaries))
	}
	if acq.Source.Kind != SourceImage {
		t.Errorf("Source.Kind = %v, want SourceImage", acq.Source.Kind)
	}
}
