// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     hotkey
// Description: Global press-and-hold recording hotkey
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package hotkey maps a global shortcut to hold recordings. The X11 backend
// of golang.design/x/hotkey needs a display at program start; build with
// -tags nohotkey for headless machines.
package hotkey

import (
	"strings"

	"github.com/msto63/transkriptor/internal/coordinator"
)

// Target receives hold gestures
type Target interface {
	StartRecording(mode coordinator.TriggerMode) error
	StopRecording(mode coordinator.TriggerMode) error
}

// Describe formats a shortcut for display, e.g. "Ctrl+Shift+Space"
func Describe(modifiers []string, key string) string {
	parts := make([]string, 0, len(modifiers)+1)
	for _, m := range append(append([]string{}, modifiers...), key) {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		parts = append(parts, strings.ToUpper(m[:1])+strings.ToLower(m[1:]))
	}
	return strings.Join(parts, "+")
}
