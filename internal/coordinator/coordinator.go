// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     coordinator
// Description: Capture -> transcription -> delivery pipeline
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package coordinator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/msto63/transkriptor/internal/apperr"
	"github.com/msto63/transkriptor/internal/settings"
	"github.com/msto63/transkriptor/internal/store"
	"github.com/msto63/transkriptor/internal/transcription"
	"github.com/msto63/transkriptor/pkg/core/logging"
)

// Status texts shown by the presentation layer
const (
	StatusReady      = "Bereit"
	StatusRecording  = "Aufnahme..."
	StatusProcessing = "Verarbeite Audio..."
	StatusSending    = "Sende an API..."
	StatusNoAudio    = "Kein Audio aufgenommen."
	StatusNoToken    = "API-Token fehlt."
)

// Recorder captures audio between Start and Stop
type Recorder interface {
	Start(sampleRate, channels int) error
	Stop() ([]float32, error)
	Close() error
}

// Transcriber sends one transcription request
type Transcriber interface {
	Transcribe(ctx context.Context, s settings.Settings, source transcription.Source) (transcription.Result, error)
}

// ResultStore persists audio and transcripts
type ResultStore interface {
	SaveAudio(samples []float32, s settings.Settings) (string, error)
	CopyFile(src string, s settings.Settings) (string, error)
	SaveTranscript(payload map[string]interface{}, rawText *string, displayText, format string, s settings.Settings) (string, error)
}

// Indexer records finished transcripts
type Indexer interface {
	Record(ctx context.Context, e store.Entry) error
}

// Options configures a Coordinator
type Options struct {
	Recorder    Recorder
	Transcriber Transcriber
	Store       ResultStore

	// Settings returns the current settings; it is called once per operation
	// and the returned value is the snapshot a job runs with.
	Settings func() settings.Settings

	// History is optional
	History Indexer

	Logger *logging.Logger
}

// Coordinator drives the Idle/Recording/Processing state machine. All
// methods are safe for concurrent use; none of them block on network I/O.
type Coordinator struct {
	mu sync.Mutex // serializes transitions started by the caller

	recorder    Recorder
	transcriber Transcriber
	store       ResultStore
	history     Indexer
	settings    func() settings.Settings
	logger      *logging.Logger

	state *StateMachine
	queue *Queue

	statusMu sync.RWMutex
	status   string

	wg sync.WaitGroup
}

// job is one unit of background work
type job struct {
	id       string
	settings settings.Settings
	samples  []float32
	path     string
	url      string
	started  time.Time
}

func (j job) describe() string {
	switch {
	case j.url != "":
		return transcription.RemoteURL(j.url).String()
	case j.path != "":
		return transcription.LocalFile(j.path).String()
	default:
		return "recording"
	}
}

// New creates a coordinator
func New(opts Options) *Coordinator {
	logger := opts.Logger
	if logger == nil {
		logger = logging.New("coordinator")
	}
	settingsFn := opts.Settings
	if settingsFn == nil {
		settingsFn = settings.Defaults
	}

	c := &Coordinator{
		recorder:    opts.Recorder,
		transcriber: opts.Transcriber,
		store:       opts.Store,
		history:     opts.History,
		settings:    settingsFn,
		logger:      logger,
		state:       NewStateMachine(),
		queue:       NewQueue(),
		status:      StatusReady,
	}

	c.state.AddListener(func(oldState, newState State) {
		c.logger.Debug("State transition", "from", oldState.String(), "to", newState.String())
	})

	return c
}

// State returns the current state
func (c *Coordinator) State() State {
	return c.state.Current()
}

// Mode returns the trigger mode owning the active recording
func (c *Coordinator) Mode() TriggerMode {
	return c.state.Mode()
}

// Status returns the last human readable status
func (c *Coordinator) Status() string {
	c.statusMu.RLock()
	defer c.statusMu.RUnlock()
	return c.status
}

func (c *Coordinator) setStatus(format string, args ...interface{}) {
	c.statusMu.Lock()
	defer c.statusMu.Unlock()
	c.status = fmt.Sprintf(format, args...)
}

// StartRecording starts capturing audio on behalf of mode. It is a no-op
// unless the coordinator is idle.
func (c *Coordinator) StartRecording(mode TriggerMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startLocked(mode)
}

func (c *Coordinator) startLocked(mode TriggerMode) error {
	if c.state.Current() != StateIdle {
		return nil
	}
	if mode == ModeNone {
		return apperr.Validation("recording needs a trigger mode")
	}
	if c.recorder == nil {
		return apperr.Validation("no audio input available")
	}

	s := c.settings()
	if strings.TrimSpace(s.APIToken) == "" {
		c.setStatus(StatusNoToken)
		return apperr.Validation("API-Token fehlt. Bitte in den Einstellungen setzen.")
	}
	sampleRate, channels, err := s.AudioParams()
	if err != nil {
		c.setStatus("Ungültige Audioeinstellungen.")
		return err
	}

	if err := c.recorder.Start(sampleRate, channels); err != nil {
		c.setStatus("Aufnahme fehlgeschlagen.")
		return apperr.IO("failed to start recording", err)
	}

	c.state.Transition(StateIdle, StateRecording, mode)
	c.setStatus(StatusRecording)
	c.logger.Info("Recording started", "mode", mode.String(), "sample_rate", sampleRate, "channels", channels)
	return nil
}

// StopRecording ends the recording if mode owns it. An empty capture returns
// to idle without a transcription; otherwise a worker takes over.
func (c *Coordinator) StopRecording(mode TriggerMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopLocked(mode)
}

func (c *Coordinator) stopLocked(mode TriggerMode) error {
	if c.state.Current() != StateRecording || c.state.Mode() != mode {
		return nil
	}

	samples, err := c.recorder.Stop()
	if err != nil {
		if len(samples) == 0 {
			c.state.Transition(StateRecording, StateIdle, ModeNone)
			c.setStatus("Aufnahme fehlgeschlagen.")
			return apperr.IO("failed to stop recording", err)
		}
		c.logger.Warn("Recorder did not stop cleanly", "error", err)
	}

	if len(samples) == 0 {
		c.state.Transition(StateRecording, StateIdle, ModeNone)
		c.setStatus(StatusNoAudio)
		c.logger.Info("Recording stopped without audio", "mode", mode.String())
		return nil
	}

	s := c.settings()
	if strings.TrimSpace(s.APIToken) == "" {
		c.state.Transition(StateRecording, StateIdle, ModeNone)
		c.keepRecording(samples, s)
		return apperr.Validation("API-Token fehlt. Bitte in den Einstellungen setzen.")
	}

	c.state.Transition(StateRecording, StateProcessing, ModeNone)
	c.setStatus(StatusProcessing)
	c.logger.Info("Recording stopped", "mode", mode.String(), "samples", len(samples))

	c.dispatch(job{settings: s, samples: samples})
	return nil
}

// keepRecording stores a recording that cannot be transcribed so the audio
// is not lost.
func (c *Coordinator) keepRecording(samples []float32, s settings.Settings) {
	if c.store == nil {
		c.setStatus(StatusNoToken)
		return
	}
	path, err := c.store.SaveAudio(samples, s)
	if err != nil {
		c.logger.Warn("Failed to keep recording", "error", err)
		c.setStatus(StatusNoToken)
		return
	}
	c.logger.Info("Recording kept without transcription", "path", path)
	c.setStatus("%s Aufnahme gespeichert unter %s", StatusNoToken, path)
}

// Toggle starts a toggle recording when idle and stops it when the toggle
// owns the recording. A hold recording is left alone.
func (c *Coordinator) Toggle() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state.Current() {
	case StateIdle:
		return c.startLocked(ModeToggle)
	case StateRecording:
		return c.stopLocked(ModeToggle)
	default:
		return nil
	}
}

// SubmitFile transcribes a local file. The file is copied into the audio
// directory by the worker before upload. No-op unless idle.
func (c *Coordinator) SubmitFile(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Current() != StateIdle {
		return nil
	}

	s := c.settings()
	if err := c.checkToken(s); err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" {
		return apperr.Validation("Bitte eine Datei auswählen.")
	}

	return c.submit(job{settings: s, path: path})
}

// SubmitURL transcribes a publicly reachable URL. No-op unless idle.
func (c *Coordinator) SubmitURL(url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Current() != StateIdle {
		return nil
	}

	s := c.settings()
	if err := c.checkToken(s); err != nil {
		return err
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return apperr.Validation("Bitte eine URL eingeben.")
	}

	return c.submit(job{settings: s, url: url})
}

func (c *Coordinator) checkToken(s settings.Settings) error {
	if strings.TrimSpace(s.APIToken) == "" {
		c.setStatus(StatusNoToken)
		return apperr.Validation("API-Token fehlt. Bitte in den Einstellungen setzen.")
	}
	return nil
}

func (c *Coordinator) submit(j job) error {
	if !c.state.Transition(StateIdle, StateProcessing, ModeNone) {
		return nil
	}
	c.setStatus(StatusSending)
	c.dispatch(j)
	return nil
}

// Poll returns the oldest undelivered outcome without blocking
func (c *Coordinator) Poll() (Outcome, bool) {
	return c.queue.TryPop()
}

// Pending returns the number of undelivered outcomes
func (c *Coordinator) Pending() int {
	return c.queue.Len()
}

// Close waits for an in-flight job and releases the recorder
func (c *Coordinator) Close() error {
	c.wg.Wait()
	if c.recorder == nil {
		return nil
	}
	return c.recorder.Close()
}

func (c *Coordinator) dispatch(j job) {
	j.id = uuid.NewString()
	j.started = time.Now()

	c.logger.Info("Job dispatched", "job_id", j.id, "source", j.describe(), "response_format", j.settings.ResponseFormat)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.finish(c.run(j))
	}()
}

// run executes the job and never panics
func (c *Coordinator) run(j job) (out Outcome) {
	out = Outcome{JobID: j.id, Source: j.describe()}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Job panicked", "job_id", j.id, "panic", fmt.Sprint(r))
			out = c.failure(out, fmt.Errorf("internal error: %v", r))
		}
		out.Duration = time.Since(j.started)
		out.FinishedAt = time.Now()
	}()

	s := j.settings
	var source transcription.Source

	switch {
	case j.url != "":
		source = transcription.RemoteURL(j.url)
	case j.path != "":
		stored, err := c.store.CopyFile(j.path, s)
		if err != nil {
			return c.failure(out, err)
		}
		out.AudioPath = stored
		source = transcription.LocalFile(stored)
	default:
		stored, err := c.store.SaveAudio(j.samples, s)
		if err != nil {
			return c.failure(out, err)
		}
		out.AudioPath = stored
		source = transcription.LocalFile(stored)
	}
	out.Source = source.String()

	c.setStatus(StatusSending)
	result, err := c.transcriber.Transcribe(context.Background(), s, source)
	if err != nil {
		return c.failure(out, err)
	}

	display := DisplayText(s.ResponseFormat, result)
	saved, err := c.store.SaveTranscript(result.Payload, result.RawText, display, s.ResponseFormat, s)
	if err != nil {
		return c.failure(out, err)
	}

	out.Kind = OutcomeSuccess
	out.DisplayText = display
	out.SavedPath = saved
	out.Message = fmt.Sprintf("Fertig. Gespeichert unter %s", saved)

	c.index(j, out)
	return out
}

func (c *Coordinator) failure(out Outcome, err error) Outcome {
	out.Kind = OutcomeFailure
	out.DisplayText = ""
	out.SavedPath = ""
	out.Message = err.Error()
	c.logger.Warn("Job failed", "job_id", out.JobID, "code", string(apperr.CodeOf(err)), "error", err)
	return out
}

func (c *Coordinator) index(j job, out Outcome) {
	if c.history == nil {
		return
	}
	err := c.history.Record(context.Background(), store.Entry{
		JobID:          out.JobID,
		Source:         out.Source,
		ResponseFormat: j.settings.ResponseFormat,
		TranscriptPath: out.SavedPath,
		AudioPath:      out.AudioPath,
		Preview:        out.DisplayText,
	})
	if err != nil {
		c.logger.Warn("Failed to index transcript", "job_id", out.JobID, "error", err)
	}
}

// finish returns to idle before the outcome becomes visible
func (c *Coordinator) finish(out Outcome) {
	if out.Succeeded() {
		c.setStatus("%s", out.Message)
		c.logger.Info("Job finished", "job_id", out.JobID, "saved_path", out.SavedPath, "duration", out.Duration)
	} else {
		c.setStatus("Fehler: %s", out.Message)
	}

	c.state.Transition(StateProcessing, StateIdle, ModeNone)
	c.queue.Push(out)
}
