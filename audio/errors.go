// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrAssetNotFound is returned when the file backing an asset does not exist.
	ErrAssetNotFound = errors.New("audio asset not found")

	// ErrDecode is returned when a container or codec cannot be parsed.
	// Format decoders wrap their own errors with it.
	ErrDecode = errors.New("cannot decode audio")

	// ErrInvalidClip marks a clip or length request that cannot be normalized.
	ErrInvalidClip = errors.New("invalid clip")

	// ErrRateMismatch is returned when a clip is not at the expected sample rate.
	ErrRateMismatch = errors.New("sample rate mismatch")
)
