package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msto63/transkriptor/internal/apperr"
)

func TestDefaults(t *testing.T) {
	s := Defaults()

	if s.APIBase != DefaultAPIBase {
		t.Errorf("APIBase = %v, want %v", s.APIBase, DefaultAPIBase)
	}
	if s.ResponseFormat != FormatJSON {
		t.Errorf("ResponseFormat = %v, want json", s.ResponseFormat)
	}
	if s.SampleRate != "16000" || s.Channels != "1" {
		t.Errorf("SampleRate/Channels = %v/%v, want 16000/1", s.SampleRate, s.Channels)
	}
	if filepath.Base(s.AudioDir) != "audio" || filepath.Base(s.TextDir) != "text" {
		t.Errorf("unexpected default dirs: %v, %v", s.AudioDir, s.TextDir)
	}
	if s.APIToken != "" || s.Translate || s.SpeakerLabels || s.WordTimestamps {
		t.Error("optional settings should be empty/false by default")
	}
}

func TestSettings_AudioParams(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate string
		channels   string
		wantRate   int
		wantCh     int
		wantErr    bool
	}{
		{"defaults", "16000", "1", 16000, 1, false},
		{"stereo with spaces", " 44100 ", "2", 44100, 2, false},
		{"rate not a number", "fast", "1", 0, 0, true},
		{"channels not a number", "16000", "mono", 0, 0, true},
		{"zero channels", "16000", "0", 0, 0, true},
		{"empty rate", "", "1", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			s.SampleRate = tt.sampleRate
			s.Channels = tt.channels

			rate, ch, err := s.AudioParams()
			if (err != nil) != tt.wantErr {
				t.Fatalf("AudioParams() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !apperr.IsValidation(err) {
					t.Errorf("error should be a validation error, got %v", err)
				}
				return
			}
			if rate != tt.wantRate || ch != tt.wantCh {
				t.Errorf("AudioParams() = %d/%d, want %d/%d", rate, ch, tt.wantRate, tt.wantCh)
			}
		})
	}
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{"defaults are valid", func(s *Settings) {}, ""},
		{"bad format", func(s *Settings) { s.ResponseFormat = "xml" }, "response_format"},
		{"bad api base", func(s *Settings) { s.APIBase = "not a url" }, "api_base"},
		{"bad callback", func(s *Settings) { s.CallbackURL = "nope" }, "callback_url"},
		{"min speakers not numeric", func(s *Settings) { s.MinSpeakers = "two" }, "min_speakers"},
		{"empty sample rate", func(s *Settings) { s.SampleRate = "" }, "sample_rate"},
		{"verbose with speakers", func(s *Settings) {
			s.ResponseFormat = FormatVerboseJSON
			s.SpeakerLabels = true
			s.MinSpeakers = "2"
			s.MaxSpeakers = "4"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			tt.mutate(&s)

			err := s.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error mentioning %s", tt.wantErr)
			}
			if !apperr.IsValidation(err) {
				t.Errorf("error should be a validation error: %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestSettings_SetGet(t *testing.T) {
	s := Defaults()

	if err := s.Set("response_format", "verbose_json"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set("speaker_labels", "true"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !s.SpeakerLabels || !s.VerboseJSON() {
		t.Error("Set did not apply values")
	}
	if err := s.Set("translate", "maybe"); err == nil {
		t.Error("Set should reject non-boolean input for bool fields")
	}
	if err := s.Set("unknown_key", "x"); err == nil {
		t.Error("Set should reject unknown keys")
	}

	got, err := s.Get("speaker_labels")
	if err != nil || got != "true" {
		t.Errorf("Get(speaker_labels) = %q, %v", got, err)
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	if len(keys) != 15 {
		t.Fatalf("len(Keys()) = %d, want 15", len(keys))
	}
	if keys[0] != "api_token" || keys[len(keys)-1] != "channels" {
		t.Errorf("unexpected key order: %v", keys)
	}
}

func TestSettings_Redacted(t *testing.T) {
	s := Defaults()
	s.APIToken = "sk-secret-1234"

	r := s.Redacted()
	if strings.Contains(r.APIToken, "secret") {
		t.Errorf("token not masked: %q", r.APIToken)
	}
	if !strings.HasSuffix(r.APIToken, "1234") {
		t.Errorf("redacted token should keep the last four characters: %q", r.APIToken)
	}
	if s.APIToken != "sk-secret-1234" {
		t.Error("Redacted must not modify the receiver")
	}
}

func TestResolvedDirs(t *testing.T) {
	s := Settings{}
	if s.ResolvedAudioDir() != DefaultAudioDir() {
		t.Errorf("ResolvedAudioDir() = %v", s.ResolvedAudioDir())
	}
	if s.ResolvedTextDir() != DefaultTextDir() {
		t.Errorf("ResolvedTextDir() = %v", s.ResolvedTextDir())
	}

	s.AudioDir = os.TempDir()
	if s.ResolvedAudioDir() != os.TempDir() {
		t.Error("configured AudioDir should win")
	}
}

func TestWithEnvToken(t *testing.T) {
	t.Setenv(EnvAPIToken, " env-token ")

	s := Defaults()
	if got := WithEnvToken(s).APIToken; got != "env-token" {
		t.Errorf("WithEnvToken() token = %q, want env-token", got)
	}

	s.APIToken = "stored"
	if got := WithEnvToken(s).APIToken; got != "stored" {
		t.Errorf("WithEnvToken() token = %q, want stored token to win", got)
	}
}
