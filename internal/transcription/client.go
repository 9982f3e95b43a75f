// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     transcription
// Description: Client for the /v1/audio/transcriptions endpoint
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/msto63/transkriptor/internal/apperr"
	"github.com/msto63/transkriptor/internal/settings"
	"github.com/msto63/transkriptor/pkg/core/logging"
	"github.com/msto63/transkriptor/pkg/core/version"
)

// DefaultTimeout bounds a single transcription request
const DefaultTimeout = 300 * time.Second

// TranscriptionsPath is appended to the configured API base
const TranscriptionsPath = "/v1/audio/transcriptions"

// Options configures a Client
type Options struct {
	// HTTPClient overrides the default client (Timeout is ignored then)
	HTTPClient *http.Client

	// Timeout for the whole request (default 300s)
	Timeout time.Duration

	Logger *logging.Logger
}

// Client sends single transcription requests. It holds no per-request state;
// settings are passed with every call.
type Client struct {
	http   *http.Client
	logger *logging.Logger
}

// New creates a transcription client
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.New("transcription")
	}
	return &Client{http: hc, logger: logger}
}

// FormField is one ordered multipart form field
type FormField struct {
	Name  string
	Value string
}

// Fields returns the form fields for s in wire order, excluding the source.
// speaker_labels, min/max_speakers and the word granularity are only sent
// for verbose_json.
func Fields(s settings.Settings) []FormField {
	fields := []FormField{{"response_format", s.ResponseFormat}}

	if s.Language != "" {
		fields = append(fields, FormField{"language", s.Language})
	}
	if s.Prompt != "" {
		fields = append(fields, FormField{"prompt", s.Prompt})
	}
	if s.Translate {
		fields = append(fields, FormField{"translate", "true"})
	}
	if s.SpeakerLabels && s.VerboseJSON() {
		fields = append(fields, FormField{"speaker_labels", "true"})
		if s.MinSpeakers != "" {
			fields = append(fields, FormField{"min_speakers", s.MinSpeakers})
		}
		if s.MaxSpeakers != "" {
			fields = append(fields, FormField{"max_speakers", s.MaxSpeakers})
		}
	}
	if s.WordTimestamps && s.VerboseJSON() {
		fields = append(fields, FormField{"timestamp_granularities[]", "word"})
	}
	if s.CallbackURL != "" {
		fields = append(fields, FormField{"callback_url", s.CallbackURL})
	}
	return fields
}

// Transcribe sends one request for source using the settings snapshot s.
// Non-2xx responses fail with an apperr API error carrying status and body.
func (c *Client) Transcribe(ctx context.Context, s settings.Settings, source Source) (Result, error) {
	var file *os.File
	if source.Kind() == SourceLocalFile {
		f, err := os.Open(source.Value())
		if err != nil {
			return Result{}, apperr.IO("failed to open audio file", err)
		}
		file = f
		defer file.Close()
	}

	body, contentType := encodeBody(Fields(s), source, file)
	defer body.Close()

	url := strings.TrimRight(s.APIBase, "/") + TranscriptionsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.APIToken)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", version.UserAgent())

	c.logger.Debug("Sending transcription request",
		"url", url,
		"source", source.Kind().String(),
		"response_format", s.ResponseFormat,
	)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, apperr.Network(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, apperr.Network(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("Transcription request rejected", "status", resp.StatusCode, "duration", time.Since(start))
		return Result{}, apperr.API(resp.StatusCode, string(respBody))
	}

	c.logger.Debug("Transcription complete", "status", resp.StatusCode, "duration", time.Since(start), "bytes", len(respBody))
	return decode(s.ResponseFormat, respBody)
}

// encodeBody streams the multipart body through a pipe so large files are
// never held in memory.
func encodeBody(fields []FormField, source Source, file *os.File) (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeParts(mw, fields, source, file))
	}()

	return pr, mw.FormDataContentType()
}

func writeParts(mw *multipart.Writer, fields []FormField, source Source, file *os.File) error {
	for _, f := range fields {
		if err := mw.WriteField(f.Name, f.Value); err != nil {
			return fmt.Errorf("failed to write %s field: %w", f.Name, err)
		}
	}

	if source.Kind() == SourceRemoteURL {
		if err := mw.WriteField("file", source.Value()); err != nil {
			return fmt.Errorf("failed to write file field: %w", err)
		}
	} else {
		part, err := mw.CreateFormFile("file", filepath.Base(source.Value()))
		if err != nil {
			return fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return apperr.IO("failed to read audio file", err)
		}
	}

	return mw.Close()
}

func decode(format string, body []byte) (Result, error) {
	switch format {
	case settings.FormatJSON, settings.FormatVerboseJSON:
		var payload map[string]interface{}
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		if err := dec.Decode(&payload); err != nil {
			return Result{}, apperr.APIDecode(err)
		}
		if payload == nil {
			return Result{}, apperr.APIDecode(fmt.Errorf("expected a JSON object"))
		}
		return Result{Payload: payload}, nil
	default:
		text := string(body)
		return Result{RawText: &text}, nil
	}
}
