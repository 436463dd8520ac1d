// Package logging provides structured logging for the bcmfw tools.
//
// Logging is silent by default so that the human-readable reports printed
// by the CLIs are the only output. Set the BCMFW_LOG_LEVEL environment
// variable (debug, info, warn, error) to enable zap console logging on
// stderr, e.g. for debugging detection strategies or adb transfers:
//
//	BCMFW_LOG_LEVEL=debug bcmfw-detect
package logging
