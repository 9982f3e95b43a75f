// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     audio
// Description: Block buffer for one recording session
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package audio

import (
	"sync"
)

// AudioBuffer collects the sample blocks delivered by the capture callback
// during one recording session. Blocks hold interleaved frames.
type AudioBuffer struct {
	mu      sync.Mutex
	blocks  [][]float32
	samples int
	sealed  bool
}

// NewAudioBuffer creates an empty buffer
func NewAudioBuffer() *AudioBuffer {
	return &AudioBuffer{
		blocks: make([][]float32, 0, 64),
	}
}

// Append copies a block into the buffer. Blocks arriving after Drain are dropped.
func (ab *AudioBuffer) Append(block []float32) {
	if len(block) == 0 {
		return
	}
	cp := make([]float32, len(block))
	copy(cp, block)

	ab.mu.Lock()
	defer ab.mu.Unlock()
	if ab.sealed {
		return
	}
	ab.blocks = append(ab.blocks, cp)
	ab.samples += len(cp)
}

// Drain concatenates all blocks, releases them and seals the buffer.
// Returns nil if nothing was captured.
func (ab *AudioBuffer) Drain() []float32 {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	ab.sealed = true
	if ab.samples == 0 {
		ab.blocks = nil
		return nil
	}

	out := make([]float32, 0, ab.samples)
	for _, b := range ab.blocks {
		out = append(out, b...)
	}
	ab.blocks = nil
	ab.samples = 0
	return out
}

// Len returns the number of samples (not frames)
func (ab *AudioBuffer) Len() int {
	ab.mu.Lock()
	defer ab.mu.Unlock()
	return ab.samples
}

// Blocks returns the number of appended blocks
func (ab *AudioBuffer) Blocks() int {
	ab.mu.Lock()
	defer ab.mu.Unlock()
	return len(ab.blocks)
}

// DurationSeconds returns the captured duration for the given stream format
func (ab *AudioBuffer) DurationSeconds(sampleRate, channels int) float64 {
	if sampleRate <= 0 || channels <= 0 {
		return 0
	}
	return float64(ab.Len()) / float64(channels) / float64(sampleRate)
}
