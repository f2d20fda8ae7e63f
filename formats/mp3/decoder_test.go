// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/soundprep/audio"
)

// mockMP3Reader simulates the gomp3.Decoder for testing
type mockMP3Reader struct {
	sampleRate int
	samples    []int16 // interleaved stereo PCM
	offset     int
	err        error
}

func (m *mockMP3Reader) SampleRate() int { return m.sampleRate }

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	count := min(len(buf)/2, len(m.samples)-m.offset)
	for i := range count {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(m.samples[m.offset+i]))
	}
	m.offset += count

	return count * 2, nil
}

func newTestSource(samples []int16) *source {
	return &source{
		dec:        &mockMP3Reader{sampleRate: 44100, samples: samples},
		sampleRate: 44100,
		buf:        make([]byte, 8192),
	}
}

func TestDecoder_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
	}{
		{name: "invalid data", input: []byte("This is not MP3 data")},
		{name: "empty input", input: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.input))
			if !errors.Is(err, audio.ErrDecode) {
				t.Errorf("Decode() error = %v, want audio.ErrDecode", err)
			}
		})
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newTestSource(nil)

	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.BufSize() != 4096 {
		t.Errorf("BufSize() = %d, want 4096", src.BufSize())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestSource_ReadSamples_Conversion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int16
		want float32
	}{
		{0, 0},
		{16384, 0.5},
		{-16384, -0.5},
		{-32768, -1},
		{32767, 32767.0 / 32768.0},
	}

	in := make([]int16, 0, len(tests)*2)
	for _, tt := range tests {
		in = append(in, tt.in, tt.in)
	}

	dst := make([]float32, len(in))
	n, err := newTestSource(in).ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != len(in) {
		t.Fatalf("ReadSamples() n = %d, want %d", n, len(in))
	}

	for i, tt := range tests {
		for ch := range 2 {
			if got := dst[i*2+ch]; math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("sample %d ch %d = %v, want %v", i, ch, got, tt.want)
			}
		}
	}
}

func TestSource_ReadSamples_WholeFrames(t *testing.T) {
	t.Parallel()

	src := newTestSource([]int16{1, 2, 3, 4, 5, 6})

	// an odd buffer is trimmed to whole stereo frames
	dst := make([]float32, 5)
	n, err := src.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 4 {
		t.Errorf("ReadSamples() n = %d, want 4", n)
	}
}

func TestSource_ReadSamples_EOF(t *testing.T) {
	t.Parallel()

	src := newTestSource([]int16{100, -100, 200, -200})
	dst := make([]float32, 16)

	if n, err := src.ReadSamples(dst); n != 4 || err != nil {
		t.Fatalf("first ReadSamples() = (%d, %v), want (4, nil)", n, err)
	}
	if n, err := src.ReadSamples(dst); n != 0 || !errors.Is(err, io.EOF) {
		t.Fatalf("second ReadSamples() = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestSource_ReadSamples_Errors(t *testing.T) {
	t.Parallel()

	src := newTestSource(nil)
	if _, err := src.ReadSamples(make([]float32, 1)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples(1) error = %v, want ErrInvalidDstSize", err)
	}

	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}

	broken := &source{dec: &mockMP3Reader{err: io.ErrUnexpectedEOF}, sampleRate: 44100}
	_, err := broken.ReadSamples(make([]float32, 8))
	if !errors.Is(err, audio.ErrDecode) || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want ErrDecode wrapping io.ErrUnexpectedEOF", err)
	}
}

func TestSource_BufferResize(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &mockMP3Reader{sampleRate: 44100, samples: make([]int16, 20000)},
		sampleRate: 44100,
		buf:        make([]byte, 16),
	}

	n, err := src.ReadSamples(make([]float32, 10000))
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 10000 {
		t.Errorf("ReadSamples() n = %d, want 10000", n)
	}
	if src.BufSize() != 10000 {
		t.Errorf("BufSize() = %d, want 10000", src.BufSize())
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]int16, 88200)
	for i := range samples {
		samples[i] = int16((i * 37) % 65536)
	}
	dst := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		src := newTestSource(samples)
		for {
			if _, err := src.ReadSamples(dst); err != nil {
				break
			}
		}
	}
}
