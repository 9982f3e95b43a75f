// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     audio
// Description: 16-bit PCM WAV writer
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package audio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const bitsPerSample = 16

// WriteWAV writes interleaved float32 samples as a 16-bit PCM WAV stream.
// Samples outside [-1, 1] are clamped.
func WriteWAV(w io.Writer, samples []float32, sampleRate, channels int) error {
	if sampleRate <= 0 || channels <= 0 {
		return fmt.Errorf("invalid stream format: %d Hz, %d channels", sampleRate, channels)
	}
	if len(samples)%channels != 0 {
		return fmt.Errorf("sample count %d is not a multiple of %d channels", len(samples), channels)
	}

	blockAlign := uint16(channels * bitsPerSample / 8)
	byteRate := uint32(sampleRate) * uint32(blockAlign)
	dataSize := uint32(len(samples) * bitsPerSample / 8)

	bw := bufio.NewWriter(w)

	header := []interface{}{
		[4]byte{'R', 'I', 'F', 'F'},
		uint32(36 + dataSize),
		[4]byte{'W', 'A', 'V', 'E'},

		// fmt chunk
		[4]byte{'f', 'm', 't', ' '},
		uint32(16),
		uint16(1), // PCM
		uint16(channels),
		uint32(sampleRate),
		byteRate,
		blockAlign,
		uint16(bitsPerSample),

		// data chunk
		[4]byte{'d', 'a', 't', 'a'},
		dataSize,
	}
	for _, field := range header {
		if err := binary.Write(bw, binary.LittleEndian, field); err != nil {
			return fmt.Errorf("failed to write WAV header: %w", err)
		}
	}

	pcm := make([]byte, 2)
	for _, s := range samples {
		binary.LittleEndian.PutUint16(pcm, uint16(toPCM16(s)))
		if _, err := bw.Write(pcm); err != nil {
			return fmt.Errorf("failed to write WAV data: %w", err)
		}
	}

	return bw.Flush()
}

func toPCM16(s float32) int16 {
	if s > 1.0 {
		s = 1.0
	}
	if s < -1.0 {
		s = -1.0
	}
	return int16(s * 32767)
}

// SaveWAV writes samples to a WAV file at path
func SaveWAV(path string, samples []float32, sampleRate, channels int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return WriteWAV(f, samples, sampleRate, channels)
}
