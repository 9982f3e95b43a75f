// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     portaudio
// Description: PortAudio input driver and device listing
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package portaudio binds the capture driver interface to PortAudio. It is the
// only package that needs cgo and the PortAudio headers.
package portaudio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/msto63/transkriptor/internal/audio"
)

// Driver opens callback-mode input streams via PortAudio
type Driver struct {
	mu          sync.Mutex
	deviceName  string
	initialized bool
}

// NewDriver creates a driver. An empty or "default" device name selects the
// system default input; unknown names fall back to it as well.
func NewDriver(deviceName string) *Driver {
	return &Driver{deviceName: deviceName}
}

func (d *Driver) ensureInitialized() error {
	if d.initialized {
		return nil
	}
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	d.initialized = true
	return nil
}

// Open creates an input stream that feeds callback
func (d *Driver) Open(cfg audio.StreamConfig, callback func(in []float32)) (audio.Stream, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureInitialized(); err != nil {
		return nil, err
	}

	var (
		stream *portaudio.Stream
		err    error
	)
	if d.deviceName != "" && d.deviceName != "default" {
		device, findErr := findInputDevice(d.deviceName)
		if findErr == nil {
			params := portaudio.StreamParameters{
				Input: portaudio.StreamDeviceParameters{
					Device:   device,
					Channels: cfg.Channels,
					Latency:  device.DefaultLowInputLatency,
				},
				SampleRate:      float64(cfg.SampleRate),
				FramesPerBuffer: cfg.FramesPerBuffer,
			}
			stream, err = portaudio.OpenStream(params, callback)
		}
	}
	if stream == nil && err == nil {
		stream, err = portaudio.OpenDefaultStream(cfg.Channels, 0, float64(cfg.SampleRate), cfg.FramesPerBuffer, callback)
	}
	if err != nil {
		return nil, err
	}
	return stream, nil
}

var _ audio.Driver = (*Driver)(nil)

// Terminate releases PortAudio
func (d *Driver) Terminate() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized {
		return nil
	}
	d.initialized = false
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("failed to terminate PortAudio: %w", err)
	}
	return nil
}

func findInputDevice(name string) (*portaudio.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	for _, dev := range devices {
		if dev.Name == name && dev.MaxInputChannels > 0 {
			return dev, nil
		}
	}
	return nil, fmt.Errorf("device not found: %s", name)
}

// DeviceInfo holds information about an audio input device
type DeviceInfo struct {
	Name              string
	MaxInputChannels  int
	DefaultSampleRate float64
	IsDefault         bool
}

// ListInputDevices returns the available input devices
func ListInputDevices() ([]DeviceInfo, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to get devices: %w", err)
	}

	var defaultName string
	if def, err := portaudio.DefaultInputDevice(); err == nil && def != nil {
		defaultName = def.Name
	}

	var inputs []DeviceInfo
	for _, dev := range devices {
		if dev.MaxInputChannels > 0 {
			inputs = append(inputs, DeviceInfo{
				Name:              dev.Name,
				MaxInputChannels:  dev.MaxInputChannels,
				DefaultSampleRate: dev.DefaultSampleRate,
				IsDefault:         dev.Name == defaultName,
			})
		}
	}
	return inputs, nil
}
