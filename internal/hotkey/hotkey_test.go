package hotkey

import (
	"sync"
	"testing"

	"github.com/msto63/transkriptor/internal/coordinator"
	"github.com/msto63/transkriptor/pkg/core/config"
)

type recordingTarget struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (r *recordingTarget) StartRecording(mode coordinator.TriggerMode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "start:"+mode.String())
	return r.err
}

func (r *recordingTarget) StopRecording(mode coordinator.TriggerMode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "stop:"+mode.String())
	return nil
}

func (r *recordingTarget) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func TestDescribe(t *testing.T) {
	if got := Describe([]string{"ctrl", "SHIFT"}, "space"); got != "Ctrl+Shift+Space" {
		t.Errorf("Describe() = %q, want Ctrl+Shift+Space", got)
	}
	if got := Describe(nil, "f9"); got != "F9" {
		t.Errorf("Describe() = %q, want F9", got)
	}
}

func TestListener_StartDisabled(t *testing.T) {
	l := New(config.HotkeyConfig{Enabled: false}, &recordingTarget{}, nil)
	if err := l.Start(); err != nil {
		t.Errorf("Start() error = %v", err)
	}
	if err := l.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}
