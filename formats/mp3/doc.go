// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio with
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo, even for mono files, so every
// source reports two channels; mono content simply arrives duplicated and
// averages back to itself in audio.MonoMixer.
package mp3
