// SPDX-License-Identifier: EPL-2.0

// Package features computes frame-averaged descriptors of a clip: energy,
// zero-crossing rate, the spectral centroid and roll-off, and the mean and
// spread of its mel-frequency cepstral coefficients.
package features

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/ik5/soundprep/audio"
)

// Analysis parameters.
const (
	FrameSize      = 2048
	HopSize        = 512
	RolloffPercent = 0.85

	MFCCCoeffs = 13
	MelBands   = 40
	// TopDB is how far below the loudest mel band of a clip the log
	// spectrum is floored.
	TopDB = 80.0
)

const powerFloor = 1e-10

// Features are per-frame values averaged over the clip. Frequencies are in
// Hz. MFCCMean and MFCCStd are the mean and population standard deviation
// of each cepstral coefficient across frames.
type Features struct {
	RMS      float64
	ZCR      float64
	Centroid float64
	Rolloff  float64
	MFCCMean [MFCCCoeffs]float64
	MFCCStd  [MFCCCoeffs]float64
	Frames   int
}

// Extractor holds the FFT plan, the mel and DCT matrices and frame buffers.
// It is not safe for concurrent use.
type Extractor struct {
	fft    *fourier.FFT
	frame  []float64
	coeffs []complex128
	mag    []float64
	power  []float64

	mel     *mat.Dense // MelBands x bins, built for melRate
	melRate int
	dct     *mat.Dense // MFCCCoeffs x MelBands
	bands   *mat.VecDense
	ceps    *mat.VecDense
}

func NewExtractor() *Extractor {
	bins := FrameSize/2 + 1

	return &Extractor{
		fft:    fourier.NewFFT(FrameSize),
		frame:  make([]float64, FrameSize),
		coeffs: make([]complex128, bins),
		mag:    make([]float64, bins),
		power:  make([]float64, bins),
		dct:    dctBasis(MFCCCoeffs, MelBands),
		bands:  mat.NewVecDense(MelBands, nil),
		ceps:   mat.NewVecDense(MFCCCoeffs, nil),
	}
}

// Extract analyzes clip with a fresh Extractor.
func Extract(clip audio.Clip) Features {
	return NewExtractor().Extract(clip)
}

// Extract splits clip into frames of FrameSize every HopSize samples. The
// last frame is zero-padded for the spectral values; energy and crossings
// only count real samples. An empty clip yields zero Features.
func (e *Extractor) Extract(clip audio.Clip) Features {
	n := clip.Len()
	if n == 0 || clip.SampleRate <= 0 {
		return Features{}
	}

	if e.mel == nil || e.melRate != clip.SampleRate {
		e.mel = e.melFilters(clip.SampleRate)
		e.melRate = clip.SampleRate
	}

	var rms, zcr, centroid, rolloff, logMel []float64
	for start := 0; ; start += HopSize {
		valid := min(FrameSize, n-start)
		for i := range e.frame {
			e.frame[i] = 0
			if i < valid {
				e.frame[i] = float64(clip.Samples[start+i])
			}
		}

		live := e.frame[:valid]
		rms = append(rms, math.Sqrt(floats.Dot(live, live)/float64(valid)))
		zcr = append(zcr, crossingRate(live))

		e.spectrum()
		c, r := e.spectralShape(clip.SampleRate)
		centroid = append(centroid, c)
		rolloff = append(rolloff, r)
		logMel = e.appendLogMel(logMel)

		if start+FrameSize >= n {
			break
		}
	}

	f := Features{
		RMS:      stat.Mean(rms, nil),
		ZCR:      stat.Mean(zcr, nil),
		Centroid: stat.Mean(centroid, nil),
		Rolloff:  stat.Mean(rolloff, nil),
		Frames:   len(rms),
	}
	f.MFCCMean, f.MFCCStd = e.cepstrum(logMel, len(rms))

	return f
}

// crossingRate counts sign changes, zero counted as positive, per sample.
func crossingRate(frame []float64) float64 {
	crossings := 0
	for i := 1; i < len(frame); i++ {
		if (frame[i] >= 0) != (frame[i-1] >= 0) {
			crossings++
		}
	}

	return float64(crossings) / float64(len(frame))
}

// spectrum windows e.frame in place and fills e.mag and e.power.
func (e *Extractor) spectrum() {
	window.Hann(e.frame)
	e.coeffs = e.fft.Coefficients(e.coeffs, e.frame)
	for i, c := range e.coeffs {
		e.mag[i] = math.Hypot(real(c), imag(c))
		e.power[i] = real(c)*real(c) + imag(c)*imag(c)
	}
}

func (e *Extractor) spectralShape(rate int) (centroid, rolloff float64) {
	total := floats.Sum(e.mag)
	if total == 0 {
		return 0, 0
	}

	freq := func(i int) float64 { return e.fft.Freq(i) * float64(rate) }

	var weighted float64
	for i, m := range e.mag {
		weighted += freq(i) * m
	}

	threshold := RolloffPercent * total
	var cum float64
	for i, m := range e.mag {
		cum += m
		if cum >= threshold {
			rolloff = freq(i)
			break
		}
	}

	return weighted / total, rolloff
}

// appendLogMel applies the filterbank to e.power and appends the band
// energies of the frame in decibels.
func (e *Extractor) appendLogMel(dst []float64) []float64 {
	e.bands.MulVec(e.mel, mat.NewVecDense(len(e.power), e.power))
	for b := range MelBands {
		dst = append(dst, 10*math.Log10(max(e.bands.AtVec(b), powerFloor)))
	}

	return dst
}

// cepstrum floors logMel at TopDB below its maximum, takes the DCT of every
// frame and summarizes each coefficient over the frames.
func (e *Extractor) cepstrum(logMel []float64, frames int) (mean, std [MFCCCoeffs]float64) {
	if frames == 0 {
		return mean, std
	}

	floor := floats.Max(logMel) - TopDB
	for i, v := range logMel {
		logMel[i] = max(v, floor)
	}

	series := make([][]float64, MFCCCoeffs)
	for k := range series {
		series[k] = make([]float64, frames)
	}

	for f := range frames {
		e.ceps.MulVec(e.dct, mat.NewVecDense(MelBands, logMel[f*MelBands:(f+1)*MelBands]))
		for k := range MFCCCoeffs {
			series[k][f] = e.ceps.AtVec(k)
		}
	}

	for k, xs := range series {
		m, v := stat.PopMeanVariance(xs, nil)
		mean[k] = m
		std[k] = math.Sqrt(max(v, 0))
	}

	return mean, std
}

func hzToMel(hz float64) float64  { return 2595 * math.Log10(1+hz/700) }
func melToHz(mel float64) float64 { return 700 * (math.Pow(10, mel/2595) - 1) }

// melFilters builds MelBands triangular filters spaced evenly on the mel
// scale between 0 Hz and the Nyquist frequency of rate.
func (e *Extractor) melFilters(rate int) *mat.Dense {
	bins := len(e.power)
	top := hzToMel(float64(rate) / 2)

	edges := make([]float64, MelBands+2)
	for i := range edges {
		edges[i] = melToHz(top * float64(i) / float64(MelBands+1))
	}

	m := mat.NewDense(MelBands, bins, nil)
	for b := range MelBands {
		lo, mid, hi := edges[b], edges[b+1], edges[b+2]
		for i := range bins {
			hz := e.fft.Freq(i) * float64(rate)
			switch {
			case hz > lo && hz <= mid:
				m.Set(b, i, (hz-lo)/(mid-lo))
			case hz > mid && hz < hi:
				m.Set(b, i, (hi-hz)/(hi-mid))
			}
		}
	}

	return m
}

// dctBasis is the orthonormal DCT-II restricted to its first rows
// coefficients.
func dctBasis(rows, n int) *mat.Dense {
	m := mat.NewDense(rows, n, nil)
	for k := range rows {
		scale := math.Sqrt(2 / float64(n))
		if k == 0 {
			scale = math.Sqrt(1 / float64(n))
		}
		for j := range n {
			m.Set(k, j, scale*math.Cos(math.Pi*float64(k)*float64(2*j+1)/float64(2*n)))
		}
	}

	return m
}
