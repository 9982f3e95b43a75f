// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     coordinator
// Description: Recording/processing state machine
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package coordinator

import (
	"sync"
	"time"
)

// State represents the current state of the coordinator
type State int

const (
	// StateIdle - Waiting for a recording or a submitted source
	StateIdle State = iota

	// StateRecording - Capturing audio
	StateRecording

	// StateProcessing - A worker is transcribing
	StateProcessing
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Bereit"
	case StateRecording:
		return "Aufnahme..."
	case StateProcessing:
		return "Verarbeite..."
	default:
		return "Unbekannt"
	}
}

// Icon returns an icon for the state
func (s State) Icon() string {
	switch s {
	case StateIdle:
		return "⏸"
	case StateRecording:
		return "🎤"
	case StateProcessing:
		return "⚙️"
	default:
		return "?"
	}
}

// TriggerMode is the gesture that owns the active recording
type TriggerMode int

const (
	// ModeNone - No recording active
	ModeNone TriggerMode = iota

	// ModeHold - Press-and-hold; ends on release
	ModeHold

	// ModeToggle - Click to start, click again to stop
	ModeToggle
)

// String returns the string representation of the mode
func (m TriggerMode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeHold:
		return "hold"
	case ModeToggle:
		return "toggle"
	default:
		return "unknown"
	}
}

// StateMachine manages state transitions
type StateMachine struct {
	mu           sync.RWMutex
	currentState State
	mode         TriggerMode
	stateTime    time.Time
	listeners    []StateChangeListener
}

// StateChangeListener is called when state changes
type StateChangeListener func(oldState, newState State)

// NewStateMachine creates a new state machine
func NewStateMachine() *StateMachine {
	return &StateMachine{
		currentState: StateIdle,
		stateTime:    time.Now(),
		listeners:    make([]StateChangeListener, 0),
	}
}

// Current returns the current state
func (sm *StateMachine) Current() State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentState
}

// Mode returns the trigger mode of the active recording
func (sm *StateMachine) Mode() TriggerMode {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.mode
}

// StateDuration returns how long we've been in the current state
func (sm *StateMachine) StateDuration() time.Duration {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return time.Since(sm.stateTime)
}

// Transition moves from -> to if the machine is in from and the edge is
// valid. mode is kept only when entering StateRecording.
func (sm *StateMachine) Transition(from, to State, mode TriggerMode) bool {
	sm.mu.Lock()
	if sm.currentState != from || !isValidTransition(from, to) {
		sm.mu.Unlock()
		return false
	}

	sm.currentState = to
	sm.stateTime = time.Now()
	if to == StateRecording {
		sm.mode = mode
	} else {
		sm.mode = ModeNone
	}
	listeners := sm.listeners
	sm.mu.Unlock()

	for _, listener := range listeners {
		listener(from, to)
	}

	return true
}

// AddListener adds a state change listener
func (sm *StateMachine) AddListener(listener StateChangeListener) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.listeners = append(sm.listeners, listener)
}

// isValidTransition checks if a state transition is valid
func isValidTransition(from, to State) bool {
	validTransitions := map[State][]State{
		StateIdle:       {StateRecording, StateProcessing},
		StateRecording:  {StateProcessing, StateIdle},
		StateProcessing: {StateIdle},
	}

	for _, valid := range validTransitions[from] {
		if valid == to {
			return true
		}
	}

	return false
}
