// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     tui
// Description: Message types for the transcriber TUI
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package tui

import (
	"time"
)

// pollMsg drives the outcome poll loop
type pollMsg time.Time

// NotifyMsg shows an error raised outside the event loop (e.g. by the hotkey)
type NotifyMsg struct {
	Err error
}

// entry is one rendered item in the transcript log
type entry struct {
	at      time.Time
	ok      bool
	title   string
	content string
}
