package adb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Config holds the configuration for adb invocations.
type Config struct {
	// ADBPath is the path to the adb binary.
	// Default: "adb" (searches PATH)
	ADBPath string

	// Timeout is the maximum time to wait for a single adb invocation.
	// Default: 2 minutes
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ADBPath: "adb",
		Timeout: 2 * time.Minute,
	}
}

// Runner invokes the adb bridge tool via os/exec.
type Runner struct {
	config Config
	logger *zap.Logger
}

// NewRunner creates a new adb runner with the given configuration.
func NewRunner(config Config, logger *zap.Logger) *Runner {
	if config.ADBPath == "" {
		config.ADBPath = "adb"
	}
	if config.Timeout == 0 {
		config.Timeout = 2 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{config: config, logger: logger}
}

// ErrBridgeMissing reports that the adb binary is not installed.
var ErrBridgeMissing = errors.New("adb binary not found in PATH")

// Available reports whether the adb binary can be found.
func (r *Runner) Available() bool {
	_, err := exec.LookPath(r.config.ADBPath)
	return err == nil
}

// run executes one adb invocation with the configured timeout, capturing
// stdout and stderr separately.
func (r *Runner) run(ctx context.Context, args ...string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.config.ADBPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	r.logger.Debug("adb invocation",
		zap.Strings("args", args),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err),
	)

	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrBridgeMissing
		}
		return stdout.String(), stderr.String(), fmt.Errorf("adb %s: %w (stderr: %s)",
			args[0], err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), stderr.String(), nil
}

// Devices returns the serial numbers of connected, authorized devices.
// Unauthorized and offline devices are excluded.
func (r *Runner) Devices(ctx context.Context) ([]string, error) {
	stdout, _, err := r.run(ctx, "devices")
	if err != nil {
		return nil, err
	}
	return parseDeviceList(stdout), nil
}

// ListDir lists the entries of a directory on the device. A missing
// directory is reported as an error by adb; callers treat that as
// "nothing here" and move on to the next probe directory.
func (r *Runner) ListDir(ctx context.Context, dir string) ([]string, error) {
	stdout, _, err := r.run(ctx, "shell", "ls", "-1", dir)
	if err != nil {
		return nil, err
	}

	// Some adb shells report missing paths on stdout with exit code 0
	if strings.Contains(stdout, "No such file or directory") {
		return nil, fmt.Errorf("no such directory on device: %s", dir)
	}

	var entries []string
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			entries = append(entries, line)
		}
	}
	return entries, nil
}

// Pull transfers a single file from the device to a local path.
func (r *Runner) Pull(ctx context.Context, remote, local string) error {
	_, _, err := r.run(ctx, "pull", remote, local)
	return err
}

// parseDeviceList extracts authorized device serials from `adb devices`
// output:
//
//	List of devices attached
//	0a3b1c2d	device
//	emulator-5554	offline
func parseDeviceList(output string) []string {
	var serials []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "List of devices") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == "device" {
			serials = append(serials, fields[0])
		}
	}
	return serials
}
