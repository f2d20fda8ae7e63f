// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/soundprep/audio"
	"github.com/jfreymuth/oggvorbis"
)

const defaultBufSize = 4096

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return defaultBufSize }

// ReadSamples decodes straight into dst. oggvorbis counts interleaved
// values, not frames, and only fills whole frames.
func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	usable := len(dst) / s.channels * s.channels
	if usable == 0 {
		return 0, fmt.Errorf("%w: %d samples is less than one %d-channel frame",
			audio.ErrInvalidDstSize, len(dst), s.channels)
	}

	n, err := s.dec.Read(dst[:usable])
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%w: reading vorbis packet: %w", audio.ErrDecode, err)
	}

	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrDecode, err)
	}
	if dec.Channels() <= 0 {
		return nil, fmt.Errorf("%w: vorbis stream without channels", audio.ErrDecode)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
