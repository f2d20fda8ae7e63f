// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes RIFF/WAVE files on top of
// github.com/go-audio/wav.
//
// The decoder accepts integer PCM at 8, 16, 24 and 32 bits, including
// WAVE_FORMAT_EXTENSIBLE containers, with any channel count and sample
// rate. Unknown chunks before the data chunk (LIST, bext, ...) are skipped.
// Every decoder error wraps audio.ErrDecode:
//
//	src, err := wav.Decoder{}.Decode(f)
//	if errors.Is(err, audio.ErrDecode) {
//	    // corrupt or unsupported file
//	}
//
// A file with an empty data chunk decodes to a stream that ends at once.
//
// # Writing
//
// WriteClip stores a mono audio.Clip as 16-bit PCM:
//
//	err := wav.WriteClip("out/dog.100032-3-0-0.wav", clip)
//
// Encode does the same on any io.WriteSeeker; the encoder seeks back to
// patch the RIFF and data chunk sizes once every sample is written.
package wav
