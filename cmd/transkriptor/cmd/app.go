package cmd

import (
	"errors"

	"github.com/msto63/transkriptor/internal/audio"
	"github.com/msto63/transkriptor/internal/audio/portaudio"
	"github.com/msto63/transkriptor/internal/coordinator"
	"github.com/msto63/transkriptor/internal/settings"
	"github.com/msto63/transkriptor/internal/store"
	"github.com/msto63/transkriptor/internal/transcription"
	"github.com/msto63/transkriptor/pkg/core/logging"
)

// app bundles the wired pipeline for one command invocation
type app struct {
	settings *settings.Store
	history  *store.History
	coord    *coordinator.Coordinator
	logger   *logging.Logger
}

// newApp wires the pipeline. withCapture opens the PortAudio driver;
// override adjusts each settings snapshot in memory (may be nil).
func newApp(withCapture bool, override func(*settings.Settings)) *app {
	a := &app{
		settings: settings.NewStore(appConfig.SettingsPath),
		logger:   logging.New("app"),
	}

	opts := coordinator.Options{
		Transcriber: transcription.New(transcription.Options{}),
		Store:       store.New(store.Options{}),
		Settings: func() settings.Settings {
			s := settings.WithEnvToken(a.settings.Load())
			if override != nil {
				override(&s)
			}
			return s
		},
	}

	if withCapture {
		opts.Recorder = audio.NewCapture(portaudio.NewDriver(appConfig.AudioDevice))
	}

	if appConfig.HistoryEnabled {
		h, err := store.OpenHistory(appConfig.HistoryPath)
		if err != nil {
			a.logger.Warn("History disabled", "path", appConfig.HistoryPath, "error", err)
		} else {
			a.history = h
			opts.History = h
		}
	}

	a.coord = coordinator.New(opts)
	return a
}

// Close waits for running jobs and releases audio and the history database
func (a *app) Close() error {
	var errs []error
	if err := a.coord.Close(); err != nil {
		errs = append(errs, err)
	}
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
