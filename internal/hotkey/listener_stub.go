//go:build nohotkey

// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     hotkey
// Description: Listener stand-in for builds without a global hotkey
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package hotkey

import (
	"github.com/msto63/transkriptor/pkg/core/config"
	"github.com/msto63/transkriptor/pkg/core/logging"
)

// Listener does nothing in builds tagged nohotkey
type Listener struct {
	cfg    config.HotkeyConfig
	logger *logging.Logger
}

// New creates a listener; target and onError are unused
func New(cfg config.HotkeyConfig, target Target, onError func(error)) *Listener {
	return &Listener{cfg: cfg, logger: logging.New("hotkey")}
}

// Shortcut is empty since no shortcut is registered
func (l *Listener) Shortcut() string {
	return ""
}

// Start logs that the hotkey is unavailable
func (l *Listener) Start() error {
	if l.cfg.Enabled {
		l.logger.Info("Hotkey not available in this build", "shortcut", Describe(l.cfg.Modifiers, l.cfg.Key))
	}
	return nil
}

// Stop is a no-op
func (l *Listener) Stop() error {
	return nil
}
