package transcription

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/transkriptor/internal/apperr"
	"github.com/msto63/transkriptor/internal/settings"
	"github.com/msto63/transkriptor/pkg/core/logging"
	"github.com/msto63/transkriptor/pkg/core/version"
)

type part struct {
	name     string
	filename string
	value    string
}

type recordedRequest struct {
	method string
	path   string
	auth   string
	agent  string
	parts  []part
}

func (r recordedRequest) names() []string {
	names := make([]string, 0, len(r.parts))
	for _, p := range r.parts {
		names = append(names, p.name)
	}
	return names
}

func (r recordedRequest) value(name string) (string, bool) {
	for _, p := range r.parts {
		if p.name == name {
			return p.value, true
		}
	}
	return "", false
}

// newServer records every request and answers with status/body
func newServer(t *testing.T, status int, body string) (*httptest.Server, func() recordedRequest) {
	t.Helper()
	var (
		mu  sync.Mutex
		got recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{method: r.Method, path: r.URL.Path, auth: r.Header.Get("Authorization"), agent: r.UserAgent()}
		mr, err := r.MultipartReader()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for {
			p, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			data, _ := io.ReadAll(p)
			rec.parts = append(rec.parts, part{name: p.FormName(), filename: p.FileName(), value: string(data)})
		}
		mu.Lock()
		got = rec
		mu.Unlock()

		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return srv, func() recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return got
	}
}

func testSettings(base string) settings.Settings {
	s := settings.Defaults()
	s.APIBase = base
	s.APIToken = "secret"
	return s
}

func newTestClient() *Client {
	return New(Options{Timeout: 5 * time.Second, Logger: logging.Nop()})
}

func TestTranscribe_URLSourceJSON(t *testing.T) {
	srv, last := newServer(t, http.StatusOK, `{"text":"hello"}`)
	s := testSettings(srv.URL + "/")

	res, err := newTestClient().Transcribe(context.Background(), s, RemoteURL("https://example.com/a.mp3"))
	require.NoError(t, err)

	req := last()
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/v1/audio/transcriptions", req.path)
	assert.Equal(t, "Bearer secret", req.auth)
	assert.Equal(t, version.UserAgent(), req.agent)
	assert.Equal(t, []string{"response_format", "file"}, req.names())

	file, _ := req.value("file")
	assert.Equal(t, "https://example.com/a.mp3", file)
	assert.Empty(t, req.parts[1].filename, "URL must be sent as a plain form field")

	require.True(t, res.Structured())
	assert.Nil(t, res.RawText)
	assert.Equal(t, "hello", res.Payload["text"])
}

func TestTranscribe_LocalFileText(t *testing.T) {
	srv, last := newServer(t, http.StatusOK, "plain transcript\n")
	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFFDATA"), 0644))

	s := testSettings(srv.URL)
	s.ResponseFormat = settings.FormatText

	res, err := newTestClient().Transcribe(context.Background(), s, LocalFile(path))
	require.NoError(t, err)

	req := last()
	require.Len(t, req.parts, 2)
	assert.Equal(t, "file", req.parts[1].name)
	assert.Equal(t, "clip.wav", req.parts[1].filename)
	assert.Equal(t, "RIFFDATA", req.parts[1].value)

	assert.False(t, res.Structured())
	require.NotNil(t, res.RawText)
	assert.Equal(t, "plain transcript\n", res.Text())
}

func TestTranscribe_FieldOrderAllOptions(t *testing.T) {
	srv, last := newServer(t, http.StatusOK, `{"segments":[]}`)
	s := testSettings(srv.URL)
	s.ResponseFormat = settings.FormatVerboseJSON
	s.Language = "german"
	s.Prompt = "Fachbegriffe"
	s.Translate = true
	s.SpeakerLabels = true
	s.MinSpeakers = "2"
	s.MaxSpeakers = "3"
	s.WordTimestamps = true
	s.CallbackURL = "https://example.com/cb"

	_, err := newTestClient().Transcribe(context.Background(), s, RemoteURL("https://example.com/a.mp3"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"response_format", "language", "prompt", "translate", "speaker_labels",
		"min_speakers", "max_speakers", "timestamp_granularities[]", "callback_url", "file",
	}, last().names())

	granularity, _ := last().value("timestamp_granularities[]")
	assert.Equal(t, "word", granularity)
}

func TestFields_OptionalFlagsAbsentWhenDisabled(t *testing.T) {
	s := settings.Defaults()
	s.MinSpeakers = "2"

	fields := Fields(s)
	require.Len(t, fields, 1)
	assert.Equal(t, FormField{"response_format", "json"}, fields[0])
}

func TestFields_VerboseOnlyOptions(t *testing.T) {
	for _, format := range []string{settings.FormatJSON, settings.FormatText, settings.FormatSRT, settings.FormatVTT} {
		t.Run(format, func(t *testing.T) {
			s := settings.Defaults()
			s.ResponseFormat = format
			s.WordTimestamps = true
			s.SpeakerLabels = true
			s.MinSpeakers = "1"
			s.MaxSpeakers = "2"

			for _, f := range Fields(s) {
				assert.NotContains(t, []string{"timestamp_granularities[]", "speaker_labels", "min_speakers", "max_speakers"}, f.Name)
			}
		})
	}
}

func TestFields_SpeakerCountsOnlyWhenSet(t *testing.T) {
	s := settings.Defaults()
	s.ResponseFormat = settings.FormatVerboseJSON
	s.SpeakerLabels = true
	s.MaxSpeakers = "4"

	names := []string{}
	for _, f := range Fields(s) {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"response_format", "speaker_labels", "max_speakers"}, names)
}

func TestTranscribe_APIError(t *testing.T) {
	srv, _ := newServer(t, http.StatusUnauthorized, `{"error":"invalid api key"}`)

	_, err := newTestClient().Transcribe(context.Background(), testSettings(srv.URL), RemoteURL("https://example.com/a.mp3"))
	require.Error(t, err)
	assert.True(t, apperr.IsAPI(err))

	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, http.StatusUnauthorized, e.Status)
	assert.Equal(t, `{"error":"invalid api key"}`, e.Body)
	assert.Contains(t, err.Error(), "401")
}

func TestTranscribe_InvalidJSON(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `not json`)

	_, err := newTestClient().Transcribe(context.Background(), testSettings(srv.URL), RemoteURL("https://example.com/a.mp3"))
	require.Error(t, err)
	assert.True(t, apperr.IsAPI(err))
}

func TestTranscribe_MissingFile(t *testing.T) {
	_, err := newTestClient().Transcribe(context.Background(), testSettings("http://127.0.0.1:1"), LocalFile(filepath.Join(t.TempDir(), "missing.wav")))
	require.Error(t, err)
	assert.True(t, apperr.IsIO(err))
}

func TestTranscribe_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))

	_, err := newTestClient().Transcribe(context.Background(), testSettings(url), LocalFile(path))
	require.Error(t, err)
	assert.True(t, apperr.IsNetwork(err))

	// The file handle must have been released: removing and recreating works everywhere
	require.NoError(t, os.Remove(path))
}

func TestSource(t *testing.T) {
	assert.Equal(t, "file:/tmp/a.wav", LocalFile("/tmp/a.wav").String())
	assert.Equal(t, SourceRemoteURL, RemoteURL("https://x").Kind())
	assert.Equal(t, "https://x", RemoteURL("https://x").Value())
	assert.Equal(t, "unknown", SourceKind(7).String())
}
