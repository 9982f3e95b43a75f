package apperr

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"validation", Validation("sample rate %q is not a number", "abc"), `sample rate "abc" is not a number`},
		{"api", API(401, `{"error":"invalid token"}`), `API error 401: {"error":"invalid token"}`},
		{"io", IO("failed to write transcript", os.ErrPermission), "failed to write transcript: permission denied"},
		{"network", Network(errors.New("timeout")), "request failed: timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPredicates_Wrapped(t *testing.T) {
	err := fmt.Errorf("transcribe: %w", API(500, "oops"))

	if !IsAPI(err) {
		t.Error("IsAPI should see through wrapping")
	}
	if IsValidation(err) || IsIO(err) || IsNetwork(err) {
		t.Error("only the API predicate should match")
	}

	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("errors.As failed")
	}
	if e.Status != 500 || e.Body != "oops" {
		t.Errorf("Status/Body = %d/%q, want 500/oops", e.Status, e.Body)
	}
}

func TestUnwrap(t *testing.T) {
	err := IO("failed to read audio file", os.ErrNotExist)
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("errors.Is should reach the cause")
	}
}

func TestCodeOf_PlainError(t *testing.T) {
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("CodeOf(plain) = %q, want empty", got)
	}
}
