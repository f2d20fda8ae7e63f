// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes 16-bit PCM AIFF files with github.com/go-audio/aiff.
//
// AIFF stores big-endian samples and an 80-bit float sample rate; the
// go-audio decoder hides both. Other bit depths and AIFF-C are rejected
// with ErrOnlyPCM16bitSupported. All errors wrap audio.ErrDecode.
package aiff
