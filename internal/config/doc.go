// Package config persists user preferences for the bcmfw CLIs in a
// YAML file under the platform config directory (~/.config/bcmfw on
// Linux). Besides defaults like the output root and adb path it caches
// the last successful chip identification so later extract runs can
// offer it without re-probing.
package config
