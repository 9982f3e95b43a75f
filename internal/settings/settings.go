// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     settings
// Description: User settings for the transcription pipeline
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/msto63/transkriptor/internal/apperr"
)

// Response formats accepted by the transcription API
const (
	FormatJSON        = "json"
	FormatText        = "text"
	FormatSRT         = "srt"
	FormatVTT         = "vtt"
	FormatVerboseJSON = "verbose_json"
)

// Formats lists all response formats in display order
var Formats = []string{FormatJSON, FormatText, FormatSRT, FormatVTT, FormatVerboseJSON}

// API endpoints offered in the settings
const (
	DefaultAPIBase = "https://api.lemonfox.ai"
	EUAPIBase      = "https://eu-api.lemonfox.ai"
)

// appDirName is the per-user directory holding settings, audio and text
const appDirName = ".lemonfox_transkriptor_gui"

// Settings is the configuration bundle for one request. It is a plain value:
// callers snapshot it when a job is submitted.
type Settings struct {
	APIToken       string `json:"api_token"`
	APIBase        string `json:"api_base" validate:"required,url"`
	Language       string `json:"language"`
	ResponseFormat string `json:"response_format" validate:"oneof=json text srt vtt verbose_json"`
	Prompt         string `json:"prompt"`
	Translate      bool   `json:"translate"`
	SpeakerLabels  bool   `json:"speaker_labels"`
	MinSpeakers    string `json:"min_speakers" validate:"omitempty,number"`
	MaxSpeakers    string `json:"max_speakers" validate:"omitempty,number"`
	WordTimestamps bool   `json:"word_timestamps"`
	CallbackURL    string `json:"callback_url" validate:"omitempty,url"`
	AudioDir       string `json:"audio_dir"`
	TextDir        string `json:"text_dir"`
	SampleRate     string `json:"sample_rate" validate:"required,number"`
	Channels       string `json:"channels" validate:"required,number"`
}

// AppDir returns the per-user application directory
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, appDirName)
}

// DefaultAudioDir is used when AudioDir is empty
func DefaultAudioDir() string { return filepath.Join(AppDir(), "audio") }

// DefaultTextDir is used when TextDir is empty
func DefaultTextDir() string { return filepath.Join(AppDir(), "text") }

// Defaults returns the factory settings
func Defaults() Settings {
	return Settings{
		APIBase:        DefaultAPIBase,
		ResponseFormat: FormatJSON,
		AudioDir:       DefaultAudioDir(),
		TextDir:        DefaultTextDir(),
		SampleRate:     "16000",
		Channels:       "1",
	}
}

// VerboseJSON reports whether the response format carries segments
func (s Settings) VerboseJSON() bool {
	return s.ResponseFormat == FormatVerboseJSON
}

// AudioParams parses sample rate and channel count
func (s Settings) AudioParams() (sampleRate, channels int, err error) {
	sampleRate, err = strconv.Atoi(strings.TrimSpace(s.SampleRate))
	if err != nil || sampleRate <= 0 {
		return 0, 0, apperr.Validation("Samplerate und Kanäle müssen Zahlen sein (sample_rate=%q)", s.SampleRate)
	}
	channels, err = strconv.Atoi(strings.TrimSpace(s.Channels))
	if err != nil || channels <= 0 {
		return 0, 0, apperr.Validation("Samplerate und Kanäle müssen Zahlen sein (channels=%q)", s.Channels)
	}
	return sampleRate, channels, nil
}

// ResolvedAudioDir returns AudioDir or the default
func (s Settings) ResolvedAudioDir() string {
	if s.AudioDir == "" {
		return DefaultAudioDir()
	}
	return s.AudioDir
}

// ResolvedTextDir returns TextDir or the default
func (s Settings) ResolvedTextDir() string {
	if s.TextDir == "" {
		return DefaultTextDir()
	}
	return s.TextDir
}

// Redacted returns a copy with the token masked
func (s Settings) Redacted() Settings {
	if s.APIToken != "" {
		keep := 4
		if len(s.APIToken) <= keep {
			keep = 0
		}
		s.APIToken = strings.Repeat("*", 8) + s.APIToken[len(s.APIToken)-keep:]
	}
	return s
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		})
	})
	return validate
}

// Validate checks the bundle before it is saved
func (s Settings) Validate() error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.Validation("invalid settings: %v", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), describe(fe)))
	}
	return apperr.Validation("invalid settings: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a URL"
	case "number":
		return "must be a number"
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}

// Keys lists the settable json keys in file order
func Keys() []string {
	t := reflect.TypeOf(Settings{})
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		keys = append(keys, strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0])
	}
	return keys
}

// Set assigns a value by json key. Booleans accept strconv.ParseBool input.
func (s *Settings) Set(key, value string) error {
	value = strings.TrimSpace(value)
	v := reflect.ValueOf(s).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0] != key {
			continue
		}
		field := v.Field(i)
		switch field.Kind() {
		case reflect.Bool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return apperr.Validation("%s: %q is not a boolean", key, value)
			}
			field.SetBool(b)
		default:
			field.SetString(value)
		}
		return nil
	}
	return apperr.Validation("unknown setting %q", key)
}

// Get returns a value by json key
func (s Settings) Get(key string) (string, error) {
	v := reflect.ValueOf(s)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0] == key {
			return fmt.Sprint(v.Field(i).Interface()), nil
		}
	}
	return "", apperr.Validation("unknown setting %q", key)
}
