//go:build !nohotkey

// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     hotkey
// Description: Global shortcut listener backed by golang.design/x/hotkey
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package hotkey

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"golang.design/x/hotkey"

	"github.com/msto63/transkriptor/internal/coordinator"
	"github.com/msto63/transkriptor/pkg/core/config"
	"github.com/msto63/transkriptor/pkg/core/logging"
)

var modifierNames = map[string]hotkey.Modifier{
	"ctrl":    hotkey.ModCtrl,
	"control": hotkey.ModCtrl,
	"shift":   hotkey.ModShift,
}

var keyNames = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3, "f4": hotkey.KeyF4,
	"f5": hotkey.KeyF5, "f6": hotkey.KeyF6, "f7": hotkey.KeyF7, "f8": hotkey.KeyF8,
	"f9": hotkey.KeyF9, "f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,

	"space": hotkey.KeySpace,
}

// Parse resolves configured modifier and key names
func Parse(modifiers []string, key string) ([]hotkey.Modifier, hotkey.Key, error) {
	mods := make([]hotkey.Modifier, 0, len(modifiers))
	for _, name := range modifiers {
		mod, ok := modifierNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, 0, fmt.Errorf("unsupported modifier %q (use ctrl or shift)", name)
		}
		mods = append(mods, mod)
	}

	k, ok := keyNames[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return nil, 0, fmt.Errorf("unsupported key %q", key)
	}
	return mods, k, nil
}

// Listener turns key down/up events into hold recordings
type Listener struct {
	mu      sync.Mutex
	cfg     config.HotkeyConfig
	target  Target
	hk      *hotkey.Hotkey
	done    chan struct{}
	onError func(error)
	logger  *logging.Logger
}

// New creates a listener; onError may be nil
func New(cfg config.HotkeyConfig, target Target, onError func(error)) *Listener {
	return &Listener{
		cfg:     cfg,
		target:  target,
		onError: onError,
		logger:  logging.New("hotkey"),
	}
}

// Shortcut returns the configured shortcut for display
func (l *Listener) Shortcut() string {
	return Describe(l.cfg.Modifiers, l.cfg.Key)
}

// Start registers the hotkey. It is skipped on macOS, where registration
// outside the main thread crashes.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.hk != nil || !l.cfg.Enabled {
		return nil
	}
	if runtime.GOOS == "darwin" {
		l.logger.Info("Hotkey disabled on macOS")
		return nil
	}

	mods, key, err := Parse(l.cfg.Modifiers, l.cfg.Key)
	if err != nil {
		return err
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("failed to register hotkey: %w", err)
	}

	l.hk = hk
	l.done = make(chan struct{})
	go l.run(hk.Keydown(), hk.Keyup(), l.done)

	l.logger.Info("Hotkey registered", "shortcut", l.Shortcut())
	return nil
}

// Stop unregisters the hotkey
func (l *Listener) Stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.hk == nil {
		return nil
	}
	close(l.done)
	err := l.hk.Unregister()
	l.hk = nil
	return err
}

// run forwards events until done is closed
func (l *Listener) run(keydown, keyup <-chan hotkey.Event, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case _, ok := <-keydown:
			if !ok {
				return
			}
			l.logger.Debug("Hotkey pressed")
			l.report(l.target.StartRecording(coordinator.ModeHold))
		case _, ok := <-keyup:
			if !ok {
				return
			}
			l.logger.Debug("Hotkey released")
			l.report(l.target.StopRecording(coordinator.ModeHold))
		}
	}
}

func (l *Listener) report(err error) {
	if err == nil {
		return
	}
	l.logger.Warn("Hotkey action failed", "error", err)
	if l.onError != nil {
		l.onError(err)
	}
}
