// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     coordinator
// Description: Display text extraction from transcription results
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package coordinator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/msto63/transkriptor/internal/settings"
	"github.com/msto63/transkriptor/internal/transcription"
)

// DisplayText renders a result for the given response format.
//
// Raw results are returned as is. For json the payload's text field is used.
// For verbose_json every segment becomes "[start-end] speaker: text", with
// the bracket dropped when start or end is missing and the speaker prefix
// dropped when the speaker is empty, zero or not a label; the payload's text is the fallback when no segment
// yields a line.
func DisplayText(format string, result transcription.Result) string {
	if !result.Structured() {
		return result.Text()
	}

	switch format {
	case settings.FormatJSON:
		return stringField(result.Payload, "text")
	case settings.FormatVerboseJSON:
		if lines := segmentLines(result.Payload["segments"]); len(lines) > 0 {
			return strings.Join(lines, "\n")
		}
		return stringField(result.Payload, "text")
	default:
		return ""
	}
}

func segmentLines(raw interface{}) []string {
	segments, ok := raw.([]interface{})
	if !ok {
		return nil
	}

	var lines []string
	for _, s := range segments {
		seg, ok := s.(map[string]interface{})
		if !ok {
			continue
		}

		var ts string
		start, okStart := number(seg["start"])
		end, okEnd := number(seg["end"])
		if okStart && okEnd {
			ts = fmt.Sprintf("[%6.2f-%6.2f]", start, end)
		}

		var speaker string
		if name := speakerLabel(seg["speaker"]); name != "" {
			speaker = name + ": "
		}

		line := strings.TrimSpace(ts + " " + speaker + text(seg["text"]))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func stringField(payload map[string]interface{}, key string) string {
	s, _ := payload[key].(string)
	return s
}

// text renders an arbitrary JSON value; nil becomes ""
func text(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

// speakerLabel returns the label for a segment speaker. Empty strings, zero,
// false and structured values yield no label.
func speakerLabel(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number, float64, int:
		if n, ok := number(val); ok && n != 0 {
			return text(val)
		}
	}
	return ""
}

// number accepts json.Number (decoder with UseNumber) and float64
func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
