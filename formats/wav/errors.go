// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"

	"github.com/ik5/soundprep/audio"
)

var (
	ErrNotWavFile          = fmt.Errorf("%w: not a WAV file", audio.ErrDecode)
	ErrUnsupportedEncoding = fmt.Errorf("%w: WAV encoding is not PCM", audio.ErrDecode)
	ErrUnsupportedBitDepth = fmt.Errorf("%w: unsupported WAV bit depth", audio.ErrDecode)
	ErrUnsupportedLayout   = fmt.Errorf("%w: unsupported WAV layout", audio.ErrDecode)
	ErrEmptyClip           = fmt.Errorf("%w: clip has no sample rate", audio.ErrInvalidClip)
)
