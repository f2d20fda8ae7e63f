// SPDX-License-Identifier: EPL-2.0

package soundprep

import (
	"fmt"

	"github.com/ik5/soundprep/audio"
	"github.com/ik5/soundprep/formats"
	"github.com/ik5/soundprep/formats/wav"
	"github.com/ik5/soundprep/loader"
)

// NormalizeFile reads in, fixes it to seconds at rate and writes it to out
// as a mono 16-bit PCM WAV. The decoder is picked from the extension of in
// through reg; a nil reg means formats.Default(). It returns the written
// clip.
func NormalizeFile(reg *audio.Registry, in, out string, rate int, seconds float64) (audio.Clip, error) {
	if reg == nil {
		reg = formats.Default()
	}

	clip, err := loader.ReadFile(reg, in, rate)
	if err != nil {
		return audio.Clip{}, err
	}

	clip, err = audio.Normalize(clip, seconds)
	if err != nil {
		return audio.Clip{}, fmt.Errorf("%s: %w", in, err)
	}

	if err := wav.WriteClip(out, clip); err != nil {
		return audio.Clip{}, err
	}

	return clip, nil
}
