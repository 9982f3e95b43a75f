// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     store
// Description: Persistence of recordings, copied inputs and transcripts
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/msto63/transkriptor/internal/apperr"
	"github.com/msto63/transkriptor/internal/audio"
	"github.com/msto63/transkriptor/internal/jsonutil"
	"github.com/msto63/transkriptor/internal/settings"
	"github.com/msto63/transkriptor/pkg/core/logging"
)

// TimestampLayout is used in file names and the saved_at field
const TimestampLayout = "20060102_150405"

// Transcript is the record written to transcript_<timestamp>.json
type Transcript struct {
	SavedAt        string                 `json:"saved_at"`
	ResponseFormat string                 `json:"response_format"`
	Data           map[string]interface{} `json:"data"`
	Text           string                 `json:"text"`
}

// Options configures a Store
type Options struct {
	// Now returns the wall clock (default time.Now)
	Now func() time.Time

	Logger *logging.Logger
}

// Store writes artifacts below the directories named in the settings.
// File names have second resolution; two writes within the same second
// target the same file and the later one wins.
type Store struct {
	now    func() time.Time
	logger *logging.Logger
}

// New creates a result store
func New(opts Options) *Store {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.New("store")
	}
	return &Store{now: now, logger: logger}
}

func (s *Store) timestamp() string {
	return s.now().Local().Format(TimestampLayout)
}

// SaveAudio writes samples as recording_<timestamp>.wav into the audio directory
func (s *Store) SaveAudio(samples []float32, st settings.Settings) (string, error) {
	sampleRate, channels, err := st.AudioParams()
	if err != nil {
		return "", err
	}

	dir := st.ResolvedAudioDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", apperr.IO("failed to create audio directory", err)
	}

	path := filepath.Join(dir, "recording_"+s.timestamp()+".wav")
	if err := audio.SaveWAV(path, samples, sampleRate, channels); err != nil {
		return "", apperr.IO("failed to write recording", err)
	}

	s.logger.Debug("Recording saved", "path", path, "samples", len(samples))
	return path, nil
}

// CopyFile copies src into the audio directory as <stem>_<timestamp><ext>.
// Nothing is copied when src already is the target.
func (s *Store) CopyFile(src string, st settings.Settings) (string, error) {
	dir := st.ResolvedAudioDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", apperr.IO("failed to create audio directory", err)
	}

	base := filepath.Base(src)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	target := filepath.Join(dir, fmt.Sprintf("%s_%s%s", stem, s.timestamp(), ext))

	if samePath(src, target) {
		return target, nil
	}

	if err := copyFile(src, target); err != nil {
		return "", apperr.IO("failed to copy audio file", err)
	}

	s.logger.Debug("Audio file copied", "source", src, "target", target)
	return target, nil
}

// SaveTranscript writes transcript_<timestamp>.json into the text directory.
// The text field holds displayText, or rawText when displayText is empty.
func (s *Store) SaveTranscript(payload map[string]interface{}, rawText *string, displayText, format string, st settings.Settings) (string, error) {
	dir := st.ResolvedTextDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", apperr.IO("failed to create text directory", err)
	}

	ts := s.timestamp()
	record := Transcript{
		SavedAt:        ts,
		ResponseFormat: format,
		Data:           payload,
		Text:           displayText,
	}
	if record.Text == "" && rawText != nil {
		record.Text = *rawText
	}

	data, err := jsonutil.MarshalIndentASCII(record)
	if err != nil {
		return "", fmt.Errorf("failed to encode transcript: %w", err)
	}

	path := filepath.Join(dir, "transcript_"+ts+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", apperr.IO("failed to write transcript", err)
	}

	s.logger.Debug("Transcript saved", "path", path, "format", format)
	return path, nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return false
	}
	if resolved, err := filepath.EvalSymlinks(absA); err == nil {
		absA = resolved
	}
	if resolved, err := filepath.EvalSymlinks(absB); err == nil {
		absB = resolved
	}
	return absA == absB
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
