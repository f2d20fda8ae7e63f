// SPDX-License-Identifier: EPL-2.0

// Package audio holds the sample-level building blocks of the preparation
// pipeline.
//
//   - Source and Decoder, the streaming contract every format implements
//   - Registry, which resolves a decoder from a file extension
//   - Resampler (cubic interpolation) and MonoMixer (channel averaging)
//   - Clip, a mono buffer at a known rate, and ReadClip to drain a Source into one
//   - Normalize and LengthNormalizer, which fix a clip to an exact length
//   - PeakNormalize, guarded against silent buffers
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0]. Intermediate buffers may exceed that
// range (mixing, additive noise); encoders clamp on the way out.
//
// # Length Normalization
//
// A clip is fixed to round(seconds*rate) samples. Long clips keep the centre
// window, short clips are zero-padded at the tail:
//
//	clip, _ := audio.ReadClip(src, 16000)
//	fixed, err := audio.Normalize(clip, 4.0) // always 64000 samples
//
// # Error Handling
//
// Streams end with io.EOF. Other failures are wrapped around the sentinel
// errors in this package (ErrDecode, ErrAssetNotFound, ErrInvalidClip,
// ErrRateMismatch) and can be told apart with errors.Is.
package audio
