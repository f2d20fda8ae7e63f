// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/soundprep/audio"
)

// mockReader hands out samples the way go-audio decoders do: the final
// chunk comes back without an error and the next call yields nothing.
type mockReader struct {
	samples []int
	offset  int
	err     error
}

func (m *mockReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}

	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n

	return n, nil
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := NewSource(&mockReader{}, 44100, 2, 16, 0)

	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.BufSize() != defaultBufSize {
		t.Errorf("BufSize() = %d, want %d", src.BufSize(), defaultBufSize)
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestSource_Scaling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		offset   int
		raw      []int
		want     []float32
	}{
		{name: "16-bit", bitDepth: 16, raw: []int{0, 16384, -32768}, want: []float32{0, 0.5, -1}},
		{name: "unsigned 8-bit", bitDepth: 8, offset: 128, raw: []int{128, 192, 0}, want: []float32{0, 0.5, -1}},
		{name: "24-bit", bitDepth: 24, raw: []int{4194304, -8388608}, want: []float32{0.5, -1}},
		{name: "32-bit", bitDepth: 32, raw: []int{1073741824, -2147483648}, want: []float32{0.5, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := NewSource(&mockReader{samples: tt.raw}, 8000, 1, tt.bitDepth, tt.offset)
			dst := make([]float32, 16)

			n, err := src.ReadSamples(dst)
			if err != nil && !errors.Is(err, io.EOF) {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if n != len(tt.want) {
				t.Fatalf("ReadSamples() n = %d, want %d", n, len(tt.want))
			}

			for i, want := range tt.want {
				if dst[i] != want {
					t.Errorf("dst[%d] = %v, want %v", i, dst[i], want)
				}
			}
		})
	}
}

func TestSource_EOF(t *testing.T) {
	t.Parallel()

	src := NewSource(&mockReader{samples: make([]int, 6)}, 8000, 2, 16, 0)
	dst := make([]float32, 4)

	if n, err := src.ReadSamples(dst); n != 4 || err != nil {
		t.Fatalf("first ReadSamples() = (%d, %v), want (4, nil)", n, err)
	}
	if n, err := src.ReadSamples(dst); n != 2 || err != nil {
		t.Fatalf("second ReadSamples() = (%d, %v), want (2, nil)", n, err)
	}
	if n, err := src.ReadSamples(dst); n != 0 || !errors.Is(err, io.EOF) {
		t.Fatalf("third ReadSamples() = (%d, %v), want (0, EOF)", n, err)
	}
	if n, err := src.ReadSamples(dst); n != 0 || !errors.Is(err, io.EOF) {
		t.Fatalf("ReadSamples() after EOF = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestSource_EmptyBuffer(t *testing.T) {
	t.Parallel()

	src := NewSource(&mockReader{samples: make([]int, 6)}, 8000, 1, 16, 0)

	n, err := src.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestSource_DecodeError(t *testing.T) {
	t.Parallel()

	src := NewSource(&mockReader{err: io.ErrUnexpectedEOF}, 8000, 1, 16, 0)

	_, err := src.ReadSamples(make([]float32, 8))
	if !errors.Is(err, audio.ErrDecode) {
		t.Errorf("ReadSamples() error = %v, want ErrDecode", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want it to wrap io.ErrUnexpectedEOF", err)
	}
}

func TestSource_BufferGrows(t *testing.T) {
	t.Parallel()

	src := NewSource(&mockReader{samples: make([]int, 10000)}, 8000, 1, 16, 0)

	if _, err := src.ReadSamples(make([]float32, 8192)); err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if src.BufSize() != 8192 {
		t.Errorf("BufSize() = %d, want 8192", src.BufSize())
	}
}
