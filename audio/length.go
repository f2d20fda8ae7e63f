// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
)

// TargetSamples is the exact sample count of a clip of the given length in
// seconds at rate Hz: round(seconds * rate).
func TargetSamples(seconds float64, rate int) int {
	return int(math.Round(seconds * float64(rate)))
}

// Normalize returns a copy of clip that holds exactly
// TargetSamples(seconds, clip.SampleRate) samples.
//
// Longer clips keep their centre: the window starts at (len-target)/2,
// rounded down. Shorter clips are padded with zeros at the tail. A clip of
// the right length is copied unchanged. The input is never modified.
func Normalize(clip Clip, seconds float64) (Clip, error) {
	if clip.SampleRate <= 0 {
		return Clip{}, fmt.Errorf("%w: sample rate %d", ErrInvalidClip, clip.SampleRate)
	}
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return Clip{}, fmt.Errorf("%w: length %v seconds", ErrInvalidClip, seconds)
	}

	target := TargetSamples(seconds, clip.SampleRate)
	out := make([]float32, target)

	if n := len(clip.Samples); n > target {
		start := (n - target) / 2
		copy(out, clip.Samples[start:start+target])
	} else {
		copy(out, clip.Samples)
	}

	return Clip{Samples: out, SampleRate: clip.SampleRate}, nil
}

// LengthNormalizer fixes every clip to one length at one sample rate.
type LengthNormalizer struct {
	Rate    int
	Seconds float64
}

// Samples reports the fixed output length.
func (n LengthNormalizer) Samples() int {
	return TargetSamples(n.Seconds, n.Rate)
}

// Normalize rejects clips that are not at n.Rate, then fixes their length.
func (n LengthNormalizer) Normalize(clip Clip) (Clip, error) {
	if clip.SampleRate != n.Rate {
		return Clip{}, fmt.Errorf("%w: clip at %d Hz, want %d Hz", ErrRateMismatch, clip.SampleRate, n.Rate)
	}

	return Normalize(clip, n.Seconds)
}
