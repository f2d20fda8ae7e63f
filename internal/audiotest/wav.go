// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV writes interleaved float samples as a 16-bit PCM WAV file at
// path, creating parent directories. It fails the test on any error.
func WriteWAV(tb testing.TB, path string, sampleRate, channels int, samples []float32) {
	tb.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s * 32767)
	}

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		tb.Fatalf("encode %s: %v", path, err)
	}
	if err := enc.Close(); err != nil {
		tb.Fatalf("close encoder %s: %v", path, err)
	}
}

// WriteConstantWAV writes a mono clip of n samples all equal to value.
func WriteConstantWAV(tb testing.TB, path string, sampleRate, n int, value float32) {
	tb.Helper()

	samples := make([]float32, n)
	for i := range samples {
		samples[i] = value
	}

	WriteWAV(tb, path, sampleRate, 1, samples)
}

// ReadWAV decodes a 16-bit PCM WAV into interleaved floats plus its rate and
// channel count.
func ReadWAV(tb testing.TB, path string) ([]float32, int, int) {
	tb.Helper()

	f, err := os.Open(path)
	if err != nil {
		tb.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		tb.Fatalf("%s is not a valid WAV file", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		tb.Fatalf("decode %s: %v", path, err)
	}

	out := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		out[i] = float32(v) / 32768.0
	}

	return out, int(dec.SampleRate), int(dec.NumChans)
}
