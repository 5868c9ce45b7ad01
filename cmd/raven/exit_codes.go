package main

import (
	"context"
	"errors"
	"os"

	raven "github.com/alnah/go-raven"
)

// Exit codes for the raven CLI, taken from sysexits(3).
const (
	ExitSuccess     = 0   // Build or command completed
	ExitUsage       = 64  // Bad arguments and every other fatal error
	ExitIO          = 74  // File not found, permission denied, no sources
	ExitConfig      = 78  // Configuration could not be parsed or is invalid
	ExitInterrupted = 130 // Canceled by SIGINT/SIGTERM
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}

	// Configuration errors (exit 78)
	if errors.Is(err, raven.ErrConfigParse) ||
		errors.Is(err, raven.ErrInvalidConfig) {
		return ExitConfig
	}

	// I/O errors (exit 74)
	if errors.Is(err, raven.ErrIO) ||
		errors.Is(err, raven.ErrNoSourceFiles) ||
		errors.Is(err, raven.ErrConfigNotFound) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	return ExitUsage
}
