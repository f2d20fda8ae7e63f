// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts the integer buffers of the go-audio decoders to
// audio.Source.
package pcm

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/soundprep/audio"
	"github.com/ik5/soundprep/utils"
)

const defaultBufSize = 4096

// Reader is the read side shared by go-audio's wav and aiff decoders.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source streams float samples out of a Reader. Offset is subtracted from
// every raw value before scaling; unsigned 8-bit data uses 128.
type Source struct {
	dec        Reader
	sampleRate int
	channels   int
	bitDepth   int
	offset     int
	buf        *goaudio.IntBuffer
	eof        bool
}

// NewSource wraps dec. bitDepth picks the scale applied to raw values.
func NewSource(dec Reader, sampleRate, channels, bitDepth, offset int) *Source {
	return &Source{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		bitDepth:   bitDepth,
		offset:     offset,
	}
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }

func (s *Source) BufSize() int {
	if s.buf != nil {
		return cap(s.buf.Data)
	}

	return defaultBufSize
}

// ReadSamples fills dst with interleaved samples. A read that yields
// nothing marks the end of the stream.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.eof {
		return 0, io.EOF
	}

	if s.buf == nil || cap(s.buf.Data) < len(dst) {
		s.buf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: &goaudio.Format{SampleRate: s.sampleRate, NumChannels: s.channels},
		}
	} else {
		s.buf.Data = s.buf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%w: reading pcm data: %w", audio.ErrDecode, err)
	}

	for i, v := range s.buf.Data[:n] {
		dst[i] = utils.IntToFloat32(v-s.offset, s.bitDepth)
	}

	if n == 0 || err != nil {
		s.eof = true
		if n == 0 {
			return 0, io.EOF
		}
		return n, io.EOF
	}

	return n, nil
}
