// SPDX-License-Identifier: EPL-2.0

package soundprep

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ik5/soundprep/audio"
	"github.com/ik5/soundprep/config"
	"github.com/ik5/soundprep/corpus"
	"github.com/ik5/soundprep/dataset"
	"github.com/ik5/soundprep/formats"
	"github.com/ik5/soundprep/internal/progress"
	"github.com/ik5/soundprep/loader"
	"github.com/ik5/soundprep/logger"
)

// DatasetName is recorded in every summary.
const DatasetName = "UrbanSound8K"

// Pipeline wires the preparation stages from one Config.
type Pipeline struct {
	Config   *config.Config
	Registry *audio.Registry
	Logger   *zap.Logger
	Progress progress.Factory
}

// New returns a Pipeline over every supported format with progress
// disabled.
func New(cfg *config.Config, log *zap.Logger) *Pipeline {
	return &Pipeline{
		Config:   cfg,
		Registry: formats.Default(),
		Logger:   log,
		Progress: progress.Nop{},
	}
}

// Result collects what Run produced.
type Result struct {
	Split       dataset.SplitResult
	Mix         dataset.MixResult
	Summary     dataset.Summary
	SummaryPath string
}

// ResolveSeed returns seed, or a clock-derived seed when seed is 0.
func ResolveSeed(seed uint64) uint64 {
	for seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return seed
}

// NewSource is the random source a seed stands for.
func NewSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed)
}

func (p *Pipeline) Records() ([]corpus.Record, error) {
	records, err := corpus.Load(p.Config.MetadataPath)
	if err != nil {
		return nil, fmt.Errorf("loading corpus: %w", err)
	}

	return records, nil
}

func (p *Pipeline) Normalizer() audio.LengthNormalizer {
	return audio.LengthNormalizer{Rate: p.Config.TargetRate, Seconds: p.Config.ClipSeconds}
}

func (p *Pipeline) Loader() *loader.Loader {
	return loader.New(p.Config.AudioDir, p.Registry, p.Config.TargetRate)
}

func (p *Pipeline) Splitter() *dataset.Splitter {
	return &dataset.Splitter{
		Loader:     p.Loader(),
		Normalizer: p.Normalizer(),
		OutputDir:  p.Config.OutputDir,
		Workers:    p.Config.Workers,
		Logger:     p.Logger,
		Progress:   p.Progress,
	}
}

// Synthesizer draws from the source of seed, which must already be
// resolved.
func (p *Pipeline) Synthesizer(seed uint64) *dataset.Synthesizer {
	return &dataset.Synthesizer{
		Loader:     p.Loader(),
		Normalizer: p.Normalizer(),
		OutputDir:  p.Config.MixedDir,
		Rand:       NewSource(seed),
		Logger:     p.Logger,
		Progress:   p.Progress,
	}
}

// Run splits the corpus, synthesizes the mixtures and writes the summary,
// in that order. A mixture configuration the corpus cannot serve fails
// before any mixture is written, after the split.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	var res Result
	log := logger.Component(p.Logger, "pipeline")

	if err := p.Config.Validate(); err != nil {
		return res, err
	}

	records, err := p.Records()
	if err != nil {
		return res, err
	}
	if err := dataset.Validate(records, p.Config.MixCount, p.Config.MixArity); err != nil {
		return res, err
	}

	seed := ResolveSeed(p.Config.Seed)
	log.Info("run started",
		zap.Int("records", len(records)),
		zap.Int("classes", len(corpus.Classes(records))),
		zap.Uint64("seed", seed),
	)

	res.Split, err = p.Splitter().Split(ctx, records, p.Config.TestFold)
	if err != nil {
		return res, fmt.Errorf("split: %w", err)
	}

	res.Mix, err = p.Synthesizer(seed).Synthesize(ctx, records, p.Config.MixCount, p.Config.MixArity)
	if err != nil {
		return res, fmt.Errorf("mix: %w", err)
	}

	res.Summary = dataset.NewSummary(DatasetName, p.Normalizer(), records, res.Split, res.Mix, seed)
	res.SummaryPath = filepath.Join(p.Config.OutputDir, dataset.SummaryName)
	if err := res.Summary.Save(res.SummaryPath); err != nil {
		return res, err
	}

	log.Info("run finished",
		zap.String("summary", res.SummaryPath),
		zap.Int("training", res.Summary.TrainingSamples),
		zap.Int("testing", res.Summary.TestingSamples),
		zap.Int("mixtures", res.Summary.MixedAudioSamples),
	)

	return res, nil
}
