// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"
	"testing"
)

func TestPeak(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		samples []float32
		want    float32
	}{
		{name: "empty", want: 0},
		{name: "negative peak", samples: []float32{0.1, -0.8, 0.5}, want: 0.8},
		{name: "positive peak", samples: []float32{0.9, -0.2}, want: 0.9},
		{name: "silence", samples: make([]float32, 8), want: 0},
	}

	for _, tt := range tests {
		if got := Peak(tt.samples); got != tt.want {
			t.Errorf("%s: Peak() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPeakNormalize(t *testing.T) {
	t.Parallel()

	samples := []float32{0.2, -0.4, 0.1}
	if !PeakNormalize(samples) {
		t.Fatal("PeakNormalize() = false, want true")
	}

	want := []float32{0.5, -1, 0.25}
	for i := range want {
		if math.Abs(float64(samples[i]-want[i])) > 1e-6 {
			t.Errorf("samples[%d] = %v, want %v", i, samples[i], want[i])
		}
	}
}

func TestPeakNormalize_Silence(t *testing.T) {
	t.Parallel()

	samples := make([]float32, 64)
	if PeakNormalize(samples) {
		t.Error("PeakNormalize() on silence = true, want false")
	}

	for i, v := range samples {
		if v != 0 || math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("samples[%d] = %v, want 0", i, v)
		}
	}

	if PeakNormalize(nil) {
		t.Error("PeakNormalize(nil) = true, want false")
	}
}
