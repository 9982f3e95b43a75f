// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     version
// Description: Build and version information
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Version is the release version
const Version = "1.0.0"

// Set at build time via -ldflags "-X .../version.GitCommit=..."
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

// UserAgent is sent with every API request
func UserAgent() string {
	return fmt.Sprintf("transkriptor/%s (%s/%s)", Version, runtime.GOOS, runtime.GOARCH)
}

// Info returns the multi-line version report
func Info() string {
	var s strings.Builder
	fmt.Fprintf(&s, "Lemonfox Transkriptor v%s\n", Version)
	fmt.Fprintf(&s, "  Git Commit: %s\n", GitCommit)
	fmt.Fprintf(&s, "  Build Date: %s\n", BuildDate)
	fmt.Fprintf(&s, "  Go Version: %s\n", runtime.Version())
	fmt.Fprintf(&s, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	return s.String()
}
