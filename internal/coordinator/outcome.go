// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     coordinator
// Description: Terminal job results delivered through the queue
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package coordinator

import "time"

// OutcomeKind tells success from failure. The zero value is neither.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota + 1
	OutcomeFailure
)

// String returns the string representation of the kind
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of one transcription job
type Outcome struct {
	JobID string
	Kind  OutcomeKind

	// DisplayText is the rendered transcript (success only)
	DisplayText string

	// SavedPath is the transcript JSON file (success only)
	SavedPath string

	// AudioPath is the stored recording or copied input, if any
	AudioPath string

	// Message is a human readable status or error text
	Message string

	// Source describes the transcribed input, e.g. "file:/path"
	Source string

	Duration   time.Duration
	FinishedAt time.Time
}

// Succeeded reports whether the job succeeded
func (o Outcome) Succeeded() bool {
	return o.Kind == OutcomeSuccess
}
