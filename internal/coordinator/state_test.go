package coordinator

import "testing"

func TestStateMachine_Transitions(t *testing.T) {
	tests := []struct {
		name  string
		from  State
		to    State
		valid bool
	}{
		{"idle to recording", StateIdle, StateRecording, true},
		{"idle to processing", StateIdle, StateProcessing, true},
		{"recording to processing", StateRecording, StateProcessing, true},
		{"recording to idle", StateRecording, StateIdle, true},
		{"processing to idle", StateProcessing, StateIdle, true},
		{"processing to recording", StateProcessing, StateRecording, false},
		{"idle to idle", StateIdle, StateIdle, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isValidTransition(tt.from, tt.to); got != tt.valid {
				t.Errorf("isValidTransition(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.valid)
			}
		})
	}
}

func TestStateMachine_TransitionRequiresFrom(t *testing.T) {
	sm := NewStateMachine()

	if sm.Transition(StateRecording, StateProcessing, ModeNone) {
		t.Error("Transition() from a state the machine is not in should fail")
	}
	if !sm.Transition(StateIdle, StateRecording, ModeHold) {
		t.Fatal("Transition(Idle, Recording) failed")
	}
	if sm.Mode() != ModeHold {
		t.Errorf("Mode() = %v, want hold", sm.Mode())
	}
	if !sm.Transition(StateRecording, StateProcessing, ModeHold) {
		t.Fatal("Transition(Recording, Processing) failed")
	}
	if sm.Mode() != ModeNone {
		t.Errorf("Mode() = %v, want none outside recording", sm.Mode())
	}
}

func TestStateMachine_Listener(t *testing.T) {
	sm := NewStateMachine()
	var got []State
	sm.AddListener(func(oldState, newState State) {
		got = append(got, oldState, newState)
	})

	sm.Transition(StateIdle, StateProcessing, ModeNone)
	sm.Transition(StateIdle, StateRecording, ModeHold)

	if len(got) != 2 || got[0] != StateIdle || got[1] != StateProcessing {
		t.Errorf("listener saw %v, want [Idle Processing]", got)
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "Bereit"},
		{StateRecording, "Aufnahme..."},
		{StateProcessing, "Verarbeite..."},
		{State(9), "Unbekannt"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
