// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with github.com/jfreymuth/oggvorbis.
//
// Samples come out of the codec as float32 already clamped to [-1, 1], so
// the source hands them through without conversion. Channel layout follows
// the Vorbis mapping order of the stream.
package vorbis
