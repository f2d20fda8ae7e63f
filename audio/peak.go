// SPDX-License-Identifier: EPL-2.0

package audio

// Peak returns the largest absolute sample value.
func Peak(samples []float32) float32 {
	var peak float32
	for _, v := range samples {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}

	return peak
}

// PeakNormalize scales samples in place so the largest absolute value is 1.
// An all-zero (or empty) buffer has no peak to scale by: it is left as is
// and PeakNormalize reports false.
func PeakNormalize(samples []float32) bool {
	peak := Peak(samples)
	if peak == 0 {
		return false
	}

	for i := range samples {
		samples[i] /= peak
	}

	return true
}
