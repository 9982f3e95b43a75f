// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     audio
// Description: Audio capture over a pluggable input driver
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package audio

import (
	"errors"
	"fmt"
	"sync"

	"github.com/msto63/transkriptor/pkg/core/logging"
)

const (
	// DefaultSampleRate is the default sample rate for audio capture
	DefaultSampleRate = 16000

	// DefaultFramesPerBuffer is the default block size of the input stream
	DefaultFramesPerBuffer = 512

	// DefaultChannels is mono audio
	DefaultChannels = 1
)

// StreamConfig describes an input stream
type StreamConfig struct {
	SampleRate      int
	Channels        int
	FramesPerBuffer int
}

// Stream is an opened input stream
type Stream interface {
	Start() error
	Stop() error
	Close() error
}

// Driver opens input streams. The callback runs on a driver-owned thread and
// receives interleaved float32 frames; the slice is reused after it returns.
type Driver interface {
	Open(cfg StreamConfig, callback func(in []float32)) (Stream, error)
	Terminate() error
}

// Capture records one session at a time from the input device
type Capture struct {
	mu     sync.Mutex
	driver Driver
	stream Stream
	buffer *AudioBuffer
	active bool

	framesPerBuffer int
	logger          *logging.Logger
}

// NewCapture creates a capture on top of the given driver
func NewCapture(driver Driver) *Capture {
	return &Capture{
		driver:          driver,
		framesPerBuffer: DefaultFramesPerBuffer,
		logger:          logging.New("audio-capture"),
	}
}

// Start begins a capture session. It is a no-op while a session is active.
func (c *Capture) Start(sampleRate, channels int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active {
		return nil
	}

	buffer := NewAudioBuffer()
	stream, err := c.driver.Open(StreamConfig{
		SampleRate:      sampleRate,
		Channels:        channels,
		FramesPerBuffer: c.framesPerBuffer,
	}, buffer.Append)
	if err != nil {
		return fmt.Errorf("failed to open audio stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("failed to start audio stream: %w", err)
	}

	c.stream = stream
	c.buffer = buffer
	c.active = true

	c.logger.Debug("Capture started", "sample_rate", sampleRate, "channels", channels)
	return nil
}

// Stop ends the session and returns the concatenated samples, or nil if
// nothing was captured. The stream is closed even if stopping it fails.
// Returns nil, nil when no session is active.
func (c *Capture) Stop() ([]float32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return nil, nil
	}
	c.active = false

	var errs []error
	if c.stream != nil {
		if err := c.stream.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop audio stream: %w", err))
		}
		if err := c.stream.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close audio stream: %w", err))
		}
		c.stream = nil
	}

	samples := c.buffer.Drain()
	c.buffer = nil

	c.logger.Debug("Capture stopped", "samples", len(samples))
	return samples, errors.Join(errs...)
}

// IsActive reports whether a session is running
func (c *Capture) IsActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Close stops an active session and releases the driver
func (c *Capture) Close() error {
	_, stopErr := c.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	return errors.Join(stopErr, c.driver.Terminate())
}
