// SPDX-License-Identifier: EPL-2.0

// Package loader turns corpus assets into mono clips at a fixed rate.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ik5/soundprep/audio"
)

// Loader reads assets stored as Root/fold<N>/<name>.
type Loader struct {
	Root       string
	Registry   *audio.Registry
	TargetRate int
}

func New(root string, reg *audio.Registry, targetRate int) *Loader {
	return &Loader{Root: root, Registry: reg, TargetRate: targetRate}
}

// Path is where the asset name of fold is expected on disk.
func (l *Loader) Path(name string, fold int) string {
	return filepath.Join(l.Root, "fold"+strconv.Itoa(fold), name)
}

// Load decodes the asset into a mono clip at l.TargetRate.
//
// A missing file yields audio.ErrAssetNotFound. An extension without a
// registered decoder, or a file the decoder rejects, yields audio.ErrDecode.
func (l *Loader) Load(name string, fold int) (audio.Clip, error) {
	return ReadFile(l.Registry, l.Path(name, fold), l.TargetRate)
}

// ReadFile decodes the audio file at path into a mono clip at targetRate,
// with the decoder reg resolves from the file extension.
func ReadFile(reg *audio.Registry, path string, targetRate int) (audio.Clip, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return audio.Clip{}, fmt.Errorf("%w: %s", audio.ErrAssetNotFound, path)
	}
	if err != nil {
		return audio.Clip{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	dec, ok := reg.ForPath(path)
	if !ok {
		return audio.Clip{}, fmt.Errorf("%w: no decoder for %s", audio.ErrDecode, path)
	}

	src, err := dec.Decode(f)
	if err != nil {
		if !errors.Is(err, audio.ErrDecode) {
			err = fmt.Errorf("%w: %w", audio.ErrDecode, err)
		}
		return audio.Clip{}, fmt.Errorf("%s: %w", path, err)
	}
	defer src.Close()

	clip, err := audio.ReadClip(src, targetRate)
	if err != nil {
		return audio.Clip{}, fmt.Errorf("%s: %w", path, err)
	}

	return clip, nil
}
