// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/soundprep/audio"
	"github.com/ik5/soundprep/formats/internal/pcm"
)

// WAVE format tags.
const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

type Decoder struct{}

// Decode validates the RIFF/WAVE container, skips ahead to the data chunk
// and returns a streaming source over it. Readers that cannot seek are
// buffered in memory first.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: reading wav data: %w", audio.ErrDecode, err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
		}
		return nil, ErrNotWavFile
	}

	switch dec.WavAudioFormat {
	case formatPCM, formatExtensible:
	default:
		return nil, fmt.Errorf("%w: format tag %#x", ErrUnsupportedEncoding, dec.WavAudioFormat)
	}

	depth := int(dec.BitDepth)
	offset := 0
	switch depth {
	case 8:
		offset = 128 // 8-bit WAV is unsigned
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, depth)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedLayout, err)
	}

	format := dec.Format()
	if format.SampleRate <= 0 || format.NumChannels <= 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrUnsupportedLayout, format.SampleRate, format.NumChannels)
	}

	return pcm.NewSource(dec, format.SampleRate, format.NumChannels, depth, offset), nil
}
