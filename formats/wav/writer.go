// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/soundprep/audio"
	"github.com/ik5/soundprep/utils"
)

const bitDepth = 16

// Encode writes clip to ws as a mono 16-bit PCM WAV at the clip's sample
// rate. Samples outside [-1, 1] are clamped.
func Encode(ws io.WriteSeeker, clip audio.Clip) error {
	if clip.SampleRate <= 0 {
		return ErrEmptyClip
	}

	enc := gowav.NewEncoder(ws, clip.SampleRate, bitDepth, 1, formatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: clip.SampleRate},
		Data:           utils.Float32sToPCM16(nil, clip.Samples),
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encoding wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}

	return nil
}

// WriteClip creates (or truncates) path, creating missing parent
// directories, and encodes clip into it.
func WriteClip(path string, clip audio.Clip) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := Encode(f, clip); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}
