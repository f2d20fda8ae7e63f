// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ik5/soundprep/audio"
	"github.com/ik5/soundprep/corpus"
	"github.com/ik5/soundprep/formats/wav"
	"github.com/ik5/soundprep/internal/progress"
	"github.com/ik5/soundprep/logger"
)

// MixedAudioDir holds the mixture clips inside the synthesizer output.
const MixedAudioDir = "mixed_audio"

// Mixing parameters.
const (
	GainMin     = 0.4
	GainMax     = 1.0
	NoiseStdDev = 0.005
)

// MixtureName is the file name of mixture i over classes, in draw order.
func MixtureName(i int, classes []string) string {
	return fmt.Sprintf("mixed_%04d_%s.wav", i, strings.Join(classes, "_"))
}

// Synthesizer overlays clips of distinct classes into labelled mixtures.
//
// Every random draw comes from Rand, so a fixed seed replays the same
// mixtures. Mixtures are built one after another for the same reason.
type Synthesizer struct {
	Loader     Loader
	Normalizer audio.LengthNormalizer
	OutputDir  string
	Rand       rand.Source
	Logger     *zap.Logger
	Progress   progress.Factory
}

// MixResult is what a Synthesize run wrote and what it skipped.
type MixResult struct {
	Dir      string
	Rows     []MixtureRow
	Failures []ItemError
}

// Mixture is one synthesized clip and the records it was built from.
type Mixture struct {
	Clip    audio.Clip
	Classes []string
	Sources []corpus.Record
	Gains   []float64
}

// mixer holds the draws of one run.
type mixer struct {
	rng     *rand.Rand
	gain    distuv.Uniform
	noise   distuv.Normal
	classes []string
	groups  map[string][]corpus.Record
}

func (s *Synthesizer) newMixer(records []corpus.Record) *mixer {
	return &mixer{
		rng:     rand.New(s.Rand),
		gain:    distuv.Uniform{Min: GainMin, Max: GainMax, Src: s.Rand},
		noise:   distuv.Normal{Mu: 0, Sigma: NoiseStdDev, Src: s.Rand},
		classes: corpus.Classes(records),
		groups:  corpus.ByClass(records),
	}
}

// Validate checks that records can serve count mixtures of arity classes.
func Validate(records []corpus.Record, count, arity int) error {
	classes := corpus.Classes(records)

	switch {
	case count < 0:
		return fmt.Errorf("%w: count %d", ErrInvalidMixConfig, count)
	case arity < 1:
		return fmt.Errorf("%w: arity %d", ErrInvalidMixConfig, arity)
	case arity > len(classes):
		return fmt.Errorf("%w: arity %d exceeds %d classes", ErrInvalidMixConfig, arity, len(classes))
	}

	groups := corpus.ByClass(records)
	for _, c := range classes {
		if len(groups[c]) == 0 {
			return fmt.Errorf("%w: class %q has no records", ErrInvalidMixConfig, c)
		}
	}

	return nil
}

// Synthesize writes count mixtures of arity distinct classes to
// <OutputDir>/mixed_audio and their table to <OutputDir>/mixed_audio_metadata.csv.
//
// The configuration is validated before anything is written. A mixture
// whose contributor fails to load is skipped and reported; its index is not
// reused, so file names keep the position in the run.
func (s *Synthesizer) Synthesize(ctx context.Context, records []corpus.Record, count, arity int) (MixResult, error) {
	if err := Validate(records, count, arity); err != nil {
		return MixResult{}, err
	}
	if s.Rand == nil {
		return MixResult{}, fmt.Errorf("%w: no random source", ErrInvalidMixConfig)
	}

	log := logger.Component(s.Logger, "synthesizer")
	dir := filepath.Join(s.OutputDir, MixedAudioDir)
	res := MixResult{Dir: dir, Rows: make([]MixtureRow, 0, count)}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return res, fmt.Errorf("creating %s: %w", dir, err)
	}

	prog := s.Progress
	if prog == nil {
		prog = progress.Nop{}
	}
	tracker := prog.Track("mixtures", count)
	defer tracker.Done()

	log.Info("synthesizing mixtures", zap.Int("count", count), zap.Int("arity", arity))

	m := s.newMixer(records)
	for i := range count {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("mixture %d: %w", i, err)
		}

		mix, err := s.mix(m, arity)
		if err != nil {
			res.Failures = append(res.Failures, skipped(err))
			log.Warn("skipping mixture", zap.Int("index", i), zap.Error(err))
			tracker.Increment()
			continue
		}

		name := MixtureName(i, mix.Classes)
		if err := wav.WriteClip(filepath.Join(dir, name), mix.Clip); err != nil {
			return res, err
		}

		res.Rows = append(res.Rows, MixtureRow{
			Filename:   name,
			Labels:     strings.Join(mix.Classes, ","),
			NumClasses: len(mix.Classes),
			Classes:    mix.Classes,
		})
		tracker.Increment()
	}

	if err := SaveMixtureTable(filepath.Join(s.OutputDir, MixtureTableName), res.Rows); err != nil {
		return res, err
	}

	log.Info("mixtures written",
		zap.String("dir", dir),
		zap.Int("written", len(res.Rows)),
		zap.Int("skipped", len(res.Failures)),
	)

	return res, nil
}

// mix draws arity distinct classes and one record of each, sums their
// gained clips, peak-normalizes the sum and adds gaussian noise.
func (s *Synthesizer) mix(m *mixer, arity int) (Mixture, error) {
	n := s.Normalizer.Samples()
	out := Mixture{
		Clip:    audio.Clip{Samples: make([]float32, n), SampleRate: s.Normalizer.Rate},
		Classes: make([]string, 0, arity),
		Sources: make([]corpus.Record, 0, arity),
		Gains:   make([]float64, 0, arity),
	}

	for _, ci := range m.rng.Perm(len(m.classes))[:arity] {
		class := m.classes[ci]
		group := m.groups[class]
		rec := group[m.rng.IntN(len(group))]

		clip, err := s.Loader.Load(rec.SliceFileName, rec.Fold)
		if err == nil {
			clip, err = s.Normalizer.Normalize(clip)
		}
		if err != nil {
			return Mixture{}, ItemError{Record: rec, Err: err}
		}

		gain := m.gain.Rand()
		for j, v := range clip.Samples {
			out.Clip.Samples[j] += float32(gain) * v
		}

		out.Classes = append(out.Classes, class)
		out.Sources = append(out.Sources, rec)
		out.Gains = append(out.Gains, gain)
	}

	audio.PeakNormalize(out.Clip.Samples)

	for j := range out.Clip.Samples {
		out.Clip.Samples[j] += float32(m.noise.Rand())
	}

	return out, nil
}

func skipped(err error) ItemError {
	var ie ItemError
	if errors.As(err, &ie) {
		return ie
	}

	return ItemError{Err: err}
}
