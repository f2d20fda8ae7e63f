// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic sources and WAV fixtures for tests.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// ErrMockRead is returned by sources built with NewFailingSource.
var ErrMockRead = errors.New("mock read failure")

// MockSource generates audio from a waveform function.
// It implements audio.Source without importing it, to avoid cycles.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int // per channel
	failAfter    int // frames before ErrMockRead, -1 never
	waveform     func(sample int, channel int) float32
	closed       bool
}

// NewMockSource creates a source of totalSamples frames; waveform yields the
// value of every sample given its frame index and channel.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		failAfter:    -1,
		waveform:     waveform,
	}
}

// NewSilentSource generates all zeros.
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewConstantSource(sampleRate, channels, totalSamples, 0)
}

// NewSineSource generates a sine wave at frequency Hz on every channel.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, _ int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource generates value on every sample.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return value
	})
}

// NewRampSource generates sample index values (0, 1, 2, ...), handy to
// check which part of a stream survives a transformation.
func NewRampSource(sampleRate, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, 1, totalSamples, func(sample int, _ int) float32 {
		return float32(sample)
	})
}

// NewFailingSource returns ErrMockRead once frames frames were produced.
func NewFailingSource(sampleRate, channels, frames int) *MockSource {
	m := NewSilentSource(sampleRate, channels, frames*2)
	m.failAfter = frames
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset rewinds the source.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.failAfter >= 0 && m.generated >= m.failAfter {
		return 0, ErrMockRead
	}
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalSamples-m.generated)
	if m.failAfter >= 0 {
		frames = min(frames, m.failAfter-m.generated)
	}

	for frame := range frames {
		idx := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(idx, ch)
		}
	}

	m.generated += frames
	written := frames * m.channels

	if m.generated >= m.totalSamples {
		return written, io.EOF
	}

	return written, nil
}
