// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 clamps x to [-1, 1] and scales it to a 16-bit PCM value.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 keeps +1.0 from overflowing
	return int16(x * 32767.0)
}

// Float32sToPCM16 converts src into 16-bit PCM values stored as int, the
// layout go-audio buffers use. dst is grown when it is too small.
func Float32sToPCM16(dst []int, src []float32) []int {
	if cap(dst) < len(src) {
		dst = make([]int, len(src))
	}
	dst = dst[:len(src)]

	for i, x := range src {
		dst[i] = int(Float32ToInt16(x))
	}

	return dst
}
