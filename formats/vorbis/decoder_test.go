// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/soundprep/audio"
)

// mockOggVorbisReader simulates oggvorbis.Reader: Read reports interleaved
// values and never splits a frame.
type mockOggVorbisReader struct {
	sampleRate int
	channels   int
	samples    []float32
	offset     int
	err        error
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := min(len(buf), len(m.samples)-m.offset)
	n = n / m.channels * m.channels
	copy(buf, m.samples[m.offset:m.offset+n])
	m.offset += n

	return n, nil
}

func newTestSource(channels int, samples []float32) *source {
	return &source{
		dec:        &mockOggVorbisReader{sampleRate: 48000, channels: channels, samples: samples},
		sampleRate: 48000,
		channels:   channels,
	}
}

func TestDecoder_Errors(t *testing.T) {
	t.Parallel()

	for _, input := range [][]byte{[]byte("This is not Ogg Vorbis data"), nil} {
		_, err := Decoder{}.Decode(bytes.NewReader(input))
		if !errors.Is(err, audio.ErrDecode) {
			t.Errorf("Decode(%q) error = %v, want audio.ErrDecode", input, err)
		}
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newTestSource(2, nil)

	if src.SampleRate() != 48000 {
		t.Errorf("SampleRate() = %d, want 48000", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.BufSize() <= 0 {
		t.Errorf("BufSize() = %d, want positive value", src.BufSize())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestSource_ReadSamples_MultipleChannels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		samples  int
	}{
		{"Mono", 1, 100},
		{"Stereo", 2, 100},
		{"5.1 Surround", 6, 120},
		{"7.1 Surround", 8, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := make([]float32, tt.samples)
			for i := range in {
				in[i] = float32(i) / 1000.0
			}

			dst := make([]float32, tt.samples)
			n, err := newTestSource(tt.channels, in).ReadSamples(dst)
			if err != nil {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if n != tt.samples {
				t.Fatalf("ReadSamples() n = %d, want %d", n, tt.samples)
			}
			for i := range in {
				if dst[i] != in[i] {
					t.Fatalf("dst[%d] = %v, want %v", i, dst[i], in[i])
				}
			}
		})
	}
}

func TestSource_ReadSamples_PartialFrames(t *testing.T) {
	t.Parallel()

	src := newTestSource(2, []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6})

	// 5 slots hold two stereo frames
	dst := make([]float32, 5)
	n, err := src.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 4 {
		t.Errorf("ReadSamples() n = %d, want 4", n)
	}

	n, err = src.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 2 || dst[0] != 0.5 || dst[1] != 0.6 {
		t.Errorf("ReadSamples() = %d %v, want the last frame", n, dst[:n])
	}

	if n, err := src.ReadSamples(dst); n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestSource_ReadSamples_Errors(t *testing.T) {
	t.Parallel()

	src := newTestSource(6, make([]float32, 12))
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples(4) on 6 channels error = %v, want ErrInvalidDstSize", err)
	}

	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}

	broken := &source{
		dec:        &mockOggVorbisReader{channels: 1, err: io.ErrUnexpectedEOF},
		sampleRate: 48000,
		channels:   1,
	}
	_, err := broken.ReadSamples(make([]float32, 8))
	if !errors.Is(err, audio.ErrDecode) || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want ErrDecode wrapping io.ErrUnexpectedEOF", err)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]float32, 96000)
	dst := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		src := newTestSource(2, samples)
		for {
			if _, err := src.ReadSamples(dst); err != nil {
				break
			}
		}
	}
}
