// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// Clip is a mono sample sequence at a known sample rate.
type Clip struct {
	Samples    []float32
	SampleRate int
}

func (c Clip) Len() int { return len(c.Samples) }

// Duration of the clip at its sample rate.
func (c Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}

	return time.Duration(len(c.Samples)) * time.Second / time.Duration(c.SampleRate)
}

// maxIdleReads bounds consecutive empty reads without io.EOF.
const maxIdleReads = 64

// ReadClip drains src into a mono Clip at targetRate. Multi-channel sources
// are averaged down to mono; sources at a different rate go through a
// Resampler first. src is not closed.
func ReadClip(src Source, targetRate int) (Clip, error) {
	if targetRate <= 0 {
		return Clip{}, fmt.Errorf("%w: target rate %d", ErrInvalidClip, targetRate)
	}
	if src.SampleRate() <= 0 || src.Channels() <= 0 {
		return Clip{}, fmt.Errorf("%w: source reports %d Hz, %d channels",
			ErrDecode, src.SampleRate(), src.Channels())
	}

	var stage Source = src
	if src.SampleRate() != targetRate {
		stage = NewResampler(stage, targetRate)
	}
	stage = NewMonoMixer(stage)

	bufSize := src.BufSize()
	if bufSize <= 0 {
		bufSize = 4096
	}
	// estimate from the first second, grow by doubling after that
	samples := make([]float32, 0, targetRate)
	buf := make([]float32, bufSize)
	idle := 0

	for {
		n, err := stage.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Clip{}, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		if n > 0 {
			idle = 0
			continue
		}

		idle++
		if idle > maxIdleReads {
			return Clip{}, fmt.Errorf("%w: source stalled", ErrDecode)
		}
	}

	return Clip{Samples: samples, SampleRate: targetRate}, nil
}
