// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     coordinator
// Description: Outcome delivery queue
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package coordinator

import "sync"

// Queue is an unbounded FIFO of outcomes shared between workers and the
// polling presentation layer. Push never blocks.
type Queue struct {
	mu    sync.Mutex
	items []Outcome
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an outcome
func (q *Queue) Push(o Outcome) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, o)
}

// TryPop removes the oldest outcome; ok is false when the queue is empty
func (q *Queue) TryPop() (o Outcome, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return Outcome{}, false
	}
	o = q.items[0]
	q.items[0] = Outcome{}
	q.items = q.items[1:]
	return o, true
}

// Len returns the number of queued outcomes
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
