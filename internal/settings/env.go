// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     settings
// Description: Environment overrides for the in-memory settings snapshot
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package settings

import (
	"os"
	"strings"
)

// EnvAPIToken supplies the token when none is stored
const EnvAPIToken = "TRANSKRIPTOR_API_TOKEN"

// WithEnvToken returns s with the token taken from the environment if s has
// none. The result is meant for in-memory use only; it is never saved.
func WithEnvToken(s Settings) Settings {
	if strings.TrimSpace(s.APIToken) != "" {
		return s
	}
	if token := strings.TrimSpace(os.Getenv(EnvAPIToken)); token != "" {
		s.APIToken = token
	}
	return s
}
