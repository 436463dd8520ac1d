package detect

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fwkit/bcmfw/internal/acquire"
)

// probeTimeout bounds each external probe invocation (getprop, dmesg).
const probeTimeout = 10 * time.Second

// localFirmwareDirs are the known firmware blob locations on Linux and
// Android hosts, probed in order.
var localFirmwareDirs = []string{
	"/lib/firmware/brcm",
	"/lib/firmware/cypress",
	"/lib/firmware",
	"/vendor/firmware",
	"/system/vendor/firmware",
	"/system/etc/wifi",
}

// HostProbes returns the real host implementations of the probe
// interfaces, reading /proc/device-tree, getprop, dmesg and the known
// firmware directories.
func HostProbes() Probes {
	return Probes{
		Board:        deviceTreeProbe{path: "/proc/device-tree/model"},
		Properties:   getpropProbe{},
		KernelLog:    dmesgProbe{},
		FirmwareDirs: firmwareDirProbe{dirs: localFirmwareDirs},
	}
}

// deviceTreeProbe reads the board model from the device tree.
type deviceTreeProbe struct {
	path string
}

func (p deviceTreeProbe) ModelString() (string, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return "", err
	}
	// The device-tree model string is NUL-terminated
	return strings.TrimRight(string(data), "\x00\n"), nil
}

// getpropProbe reads the Android property store via the getprop tool.
type getpropProbe struct{}

func (p getpropProbe) Properties() (map[string]string, error) {
	path, err := exec.LookPath("getprop")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, path)
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, err
	}

	return parseProperties(stdout.String()), nil
}

// parseProperties parses getprop output of the form
//
//	[ro.product.device]: [hammerhead]
func parseProperties(output string) map[string]string {
	props := make(map[string]string)
	for _, line := range strings.Split(output, "\n") {
		if !strings.HasPrefix(line, "[") {
			continue
		}
		keyEnd := strings.Index(line, "]")
		if keyEnd < 0 {
			continue
		}
		key := line[1:keyEnd]
		rest := line[keyEnd+1:]
		valStart := strings.Index(rest, "[")
		valEnd := strings.LastIndex(rest, "]")
		if valStart < 0 || valEnd <= valStart {
			continue
		}
		props[key] = rest[valStart+1 : valEnd]
	}
	return props
}

// dmesgProbe reads the kernel log buffer via dmesg.
type dmesgProbe struct{}

func (p dmesgProbe) Lines() ([]string, error) {
	path, err := exec.LookPath("dmesg")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, path)
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, err
	}

	return strings.Split(stdout.String(), "\n"), nil
}

// firmwareDirProbe lists firmware binaries in the known blob
// directories. Missing directories are simply skipped; the probe only
// errors when no directory could be read at all.
type firmwareDirProbe struct {
	dirs []string
}

func (p firmwareDirProbe) ListFirmwareFiles() ([]string, error) {
	var files []string
	var firstErr error
	readable := false

	for _, dir := range p.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		readable = true
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if acquire.MatchesFirmwareName(entry.Name()) {
				files = append(files, filepath.Join(dir, entry.Name()))
			}
		}
	}

	if !readable {
		return nil, firstErr
	}

	sort.Strings(files)
	return files, nil
}
