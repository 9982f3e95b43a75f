// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     transcription
// Description: Transcription sources and results
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package transcription

// SourceKind distinguishes local uploads from remote URLs
type SourceKind int

const (
	// SourceLocalFile uploads the file bytes as a multipart file part
	SourceLocalFile SourceKind = iota

	// SourceRemoteURL sends the URL as a form field; the API fetches it
	SourceRemoteURL
)

// String returns the string representation of the kind
func (k SourceKind) String() string {
	switch k {
	case SourceLocalFile:
		return "file"
	case SourceRemoteURL:
		return "url"
	default:
		return "unknown"
	}
}

// Source is the audio origin of a transcription request
type Source struct {
	kind  SourceKind
	value string
}

// LocalFile creates a source for a file on disk
func LocalFile(path string) Source {
	return Source{kind: SourceLocalFile, value: path}
}

// RemoteURL creates a source for a publicly reachable URL
func RemoteURL(url string) Source {
	return Source{kind: SourceRemoteURL, value: url}
}

// Kind returns the source kind
func (s Source) Kind() SourceKind { return s.kind }

// Value returns the path or URL
func (s Source) Value() string { return s.value }

// String returns "file:<path>" or "url:<url>"
func (s Source) String() string { return s.kind.String() + ":" + s.value }

// Result is the decoded API response. Exactly one of Payload and RawText is set.
type Result struct {
	// Payload is the decoded JSON object for json and verbose_json
	Payload map[string]interface{}

	// RawText is the response body for text, srt and vtt
	RawText *string
}

// Structured reports whether the result carries a JSON payload
func (r Result) Structured() bool {
	return r.Payload != nil
}

// Text returns the raw text, or "" for structured results
func (r Result) Text() string {
	if r.RawText == nil {
		return ""
	}
	return *r.RawText
}
