// SPDX-License-Identifier: EPL-2.0

// Package formats wires every bundled codec into one audio.Registry.
package formats

import (
	"github.com/ik5/soundprep/audio"
	"github.com/ik5/soundprep/formats/aiff"
	"github.com/ik5/soundprep/formats/mp3"
	"github.com/ik5/soundprep/formats/vorbis"
	"github.com/ik5/soundprep/formats/wav"
)

// Default returns a registry that knows wav, mp3, ogg and aiff files under
// their usual extensions.
func Default() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})

	return reg
}
