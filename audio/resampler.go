// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/soundprep/utils"
)

// Resampler streams from src to a target sample rate using cubic interpolation.
// Works on interleaved samples and preserves the channel count.
// A one-pole low-pass filter is applied to incoming frames when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames consumed per output frame
	channels int

	// window of 4 frames around the read position:
	// window[0] = t-1, window[1] = t0, window[2] = t+1, window[3] = t+2
	window [4][]float32
	filled [4]bool
	primed bool

	// fractional position between window[1] and window[2]
	pos float64

	frame []float32
	eof   bool

	// buffered source samples, consumed one frame at a time
	in     []float32
	inPos  int
	inLen  int
	srcEOF bool

	lowPass     bool
	alpha       float32
	filterState []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		frame:       make([]float32, channels),
		lowPass:     ratio > 1.0,
		alpha:       0.5,
		filterState: make([]float32, channels),
	}

	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	r.in = make([]float32, size-size%channels)

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// readFrame moves the next source frame into r.frame, refilling the input
// buffer when it runs dry. It reports false once the source is exhausted.
func (r *Resampler) readFrame() (bool, error) {
	for idle := 0; r.inPos >= r.inLen; idle++ {
		if r.srcEOF {
			r.eof = true
			return false, nil
		}
		if idle > maxIdleReads {
			return false, io.ErrNoProgress
		}

		n, err := r.src.ReadSamples(r.in)
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("%w", err)
		}
		r.inPos, r.inLen = 0, n-n%r.channels
		r.srcEOF = errors.Is(err, io.EOF)
	}

	copy(r.frame, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	return true, nil
}

func (r *Resampler) filter(frame []float32) {
	if !r.lowPass {
		return
	}

	for c := range r.channels {
		frame[c] = r.alpha*frame[c] + (1-r.alpha)*r.filterState[c]
		r.filterState[c] = frame[c]
	}
}

// prime loads the first frames into window[1..3]. window[0] has no
// predecessor yet, so interpolation falls back to window[1].
func (r *Resampler) prime() error {
	r.primed = true

	for i := 1; i < len(r.window) && !r.eof; i++ {
		ok, err := r.readFrame()
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		if i == 1 && r.lowPass {
			copy(r.filterState, r.frame)
		}
		copy(r.window[i], r.frame)
		r.filter(r.window[i])
		r.filled[i] = true
	}

	if !r.filled[1] {
		return io.EOF
	}
	copy(r.window[0], r.window[1])

	return nil
}

// advance shifts the window by one source frame. It keeps draining the
// window after the source hit EOF and reports io.EOF once no frame is left
// at the read position.
func (r *Resampler) advance() error {
	oldest := r.window[0]
	r.window[0], r.window[1], r.window[2] = r.window[1], r.window[2], r.window[3]
	r.filled[0], r.filled[1], r.filled[2] = r.filled[1], r.filled[2], r.filled[3]
	r.window[3] = oldest
	r.filled[3] = false

	if !r.eof {
		ok, err := r.readFrame()
		if err != nil {
			return err
		}
		if ok {
			copy(r.window[3], r.frame)
			r.filter(r.window[3])
			r.filled[3] = true
		}
	}

	if !r.filled[1] {
		return io.EOF
	}

	return nil
}

// ReadSamples produces dst samples at the destination rate.
// dst length must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	frames := len(dst) / r.channels

	for written < frames {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				if errors.Is(err, io.EOF) {
					return written * r.channels, io.EOF
				}
				return written * r.channels, err
			}
		}

		if !r.filled[1] {
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		base := written * r.channels
		for c := range r.channels {
			y1 := r.window[1][c]
			y0 := y1
			if r.filled[0] {
				y0 = r.window[0][c]
			}
			y2 := y1
			if r.filled[2] {
				y2 = r.window[2][c]
			}
			y3 := y2
			if r.filled[3] {
				y3 = r.window[3][c]
			}

			dst[base+c] = utils.CubicInterpolate(y0, y1, y2, y3, x)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
