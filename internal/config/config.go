package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// fileName is the preferences file under the bcmfw config directory.
const fileName = "config.yaml"

// Preferences holds user defaults shared by the bcmfw CLIs. All fields
// are optional; zero values mean "no preference".
type Preferences struct {
	// OutputRoot is the default root for scaffolded patch directories.
	OutputRoot string `yaml:"output_root,omitempty"`
	// ADBPath overrides the adb binary used for bridge sources.
	ADBPath string `yaml:"adb_path,omitempty"`
	// NoColor disables styled output when true.
	NoColor bool `yaml:"no_color,omitempty"`
	// LastDetection caches the most recent identification result so
	// bcmfw-extract --detect can offer it as a default.
	LastDetection *LastDetection `yaml:"last_detection,omitempty"`
}

// LastDetection is a cached identification result.
type LastDetection struct {
	ChipID     string    `yaml:"chip_id"`
	VersionID  string    `yaml:"version_id,omitempty"`
	Strategy   string    `yaml:"strategy,omitempty"`
	DetectedAt time.Time `yaml:"detected_at"`
}

// GetConfigDir returns the platform-appropriate config directory for
// bcmfw, creating it if needed.
func GetConfigDir() (string, error) {
	var base string

	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to determine home directory: %w", err)
			}
			base = filepath.Join(home, "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine home directory: %w", err)
		}
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to determine home directory: %w", err)
			}
			base = filepath.Join(home, ".config")
		}
	}

	dir := filepath.Join(base, "bcmfw")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// Path returns the full path of the preferences file.
func Path() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the preferences file. A missing file is not an error and
// yields empty preferences.
func Load() (*Preferences, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return loadFrom(path)
}

func loadFrom(path string) (*Preferences, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Preferences{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var prefs Preferences
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &prefs, nil
}

// Save writes the preferences file atomically (temp file + rename).
func Save(prefs *Preferences) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return saveTo(path, prefs)
}

func saveTo(path string, prefs *Preferences) error {
	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), fileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp config: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp config: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}

// RememberDetection updates the cached last detection, leaving other
// preferences untouched. Errors are returned but callers typically
// treat the cache as best effort.
func RememberDetection(chipID, versionID, strategy string) error {
	prefs, err := Load()
	if err != nil {
		return err
	}
	prefs.LastDetection = &LastDetection{
		ChipID:     chipID,
		VersionID:  versionID,
		Strategy:   strategy,
		DetectedAt: time.Now().UTC(),
	}
	return Save(prefs)
}
