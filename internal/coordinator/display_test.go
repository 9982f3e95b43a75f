package coordinator

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/msto63/transkriptor/internal/transcription"
)

func decodePayload(t *testing.T, body string) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return payload
}

func TestDisplayText(t *testing.T) {
	tests := []struct {
		name   string
		format string
		body   string
		want   string
	}{
		{"json text", "json", `{"text":"hello"}`, "hello"},
		{"json missing text", "json", `{"language":"de"}`, ""},
		{"json non-string text", "json", `{"text":42}`, ""},
		{"verbose segment", "verbose_json", `{"segments":[{"start":0.0,"end":1.5,"speaker":"A","text":"hi"}]}`, "[  0.00-  1.50] A: hi"},
		{"verbose no speaker", "verbose_json", `{"segments":[{"start":12.5,"end":100,"text":"hallo "}]}`, "[ 12.50-100.00] hallo"},
		{"verbose no timestamps", "verbose_json", `{"segments":[{"speaker":"B","text":"ok"}]}`, "B: ok"},
		{
			"verbose falsy speakers",
			"verbose_json",
			`{"segments":[{"start":0,"end":1.5,"speaker":0,"text":"hi"},{"start":2,"end":3,"speaker":false,"text":"yo"},{"start":3,"end":4,"speaker":"","text":"ok"}]}`,
			"[  0.00-  1.50] hi\n[  2.00-  3.00] yo\n[  3.00-  4.00] ok",
		},
		{"verbose numeric speaker", "verbose_json", `{"segments":[{"speaker":2,"text":"ja"}]}`, "2: ja"},
		{"verbose structured speaker", "verbose_json", `{"segments":[{"speaker":{"id":1},"text":"ja"}]}`, "ja"},
		{"verbose missing end", "verbose_json", `{"segments":[{"start":1,"text":"x"}]}`, "x"},
		{
			"verbose multiple",
			"verbose_json",
			`{"segments":[{"start":0,"end":1,"text":"a"},{"text":"  "},{"start":1,"end":2,"speaker":"S","text":"b"}]}`,
			"[  0.00-  1.00] a\n[  1.00-  2.00] S: b",
		},
		{"verbose fallback", "verbose_json", `{"segments":[],"text":"full"}`, "full"},
		{"verbose bad segments", "verbose_json", `{"segments":"nope","text":"full"}`, "full"},
		{"structured other format", "srt", `{"text":"x"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := transcription.Result{Payload: decodePayload(t, tt.body)}
			if got := DisplayText(tt.format, result); got != tt.want {
				t.Errorf("DisplayText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayText_Raw(t *testing.T) {
	raw := "WEBVTT\n\n00:00.000 --> 00:01.000\nhi"
	if got := DisplayText("vtt", transcription.Result{RawText: &raw}); got != raw {
		t.Errorf("DisplayText() = %q, want raw text", got)
	}
}

func TestDisplayText_Float64(t *testing.T) {
	payload := map[string]interface{}{
		"segments": []interface{}{
			map[string]interface{}{"start": 0.0, "end": 1.5, "speaker": "A", "text": "hi"},
		},
	}
	got := DisplayText("verbose_json", transcription.Result{Payload: payload})
	if got != "[  0.00-  1.50] A: hi" {
		t.Errorf("DisplayText() = %q", got)
	}
}
