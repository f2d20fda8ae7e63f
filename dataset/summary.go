// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ik5/soundprep/audio"
	"github.com/ik5/soundprep/corpus"
)

// SummaryName is the summary file written into the split output root.
const SummaryName = "dataset_summary.json"

// FoldsUsed lists the original folds that ended up on each side.
type FoldsUsed struct {
	Training []int `json:"training"`
	Testing  []int `json:"testing"`
}

// Skipped counts the items left out of a run.
type Skipped struct {
	Training int `json:"training"`
	Testing  int `json:"testing"`
	Mixtures int `json:"mixtures"`
}

// Summary records how one run was configured and what it produced. It is
// informational only; nothing in this module reads it back to do work.
type Summary struct {
	RunID              uuid.UUID `json:"run_id"`
	CreatedAt          time.Time `json:"created_at"`
	Dataset            string    `json:"dataset"`
	TargetSampleRate   int       `json:"target_sample_rate"`
	AudioLengthSeconds float64   `json:"audio_length_seconds"`
	NumClasses         int       `json:"num_classes"`
	Classes            []string  `json:"classes"`
	TestFold           int       `json:"test_fold"`
	TrainingSamples    int       `json:"training_samples"`
	TestingSamples     int       `json:"testing_samples"`
	MixedAudioSamples  int       `json:"mixed_audio_samples"`
	FoldsUsed          FoldsUsed `json:"folds_used"`
	Skipped            Skipped   `json:"skipped"`
	Seed               uint64    `json:"seed"`
}

// NewSummary describes a finished split and mixture run over records.
func NewSummary(
	name string, norm audio.LengthNormalizer, records []corpus.Record,
	split SplitResult, mix MixResult, seed uint64,
) Summary {
	classes := corpus.Classes(records)

	sum := Summary{
		RunID:              uuid.New(),
		CreatedAt:          time.Now().UTC(),
		Dataset:            name,
		TargetSampleRate:   norm.Rate,
		AudioLengthSeconds: norm.Seconds,
		NumClasses:         len(classes),
		Classes:            classes,
		TestFold:           split.TestFold,
		TrainingSamples:    len(split.Train),
		TestingSamples:     len(split.Test),
		MixedAudioSamples:  len(mix.Rows),
		FoldsUsed: FoldsUsed{
			Training: Folds(split.Train),
			Testing:  Folds(split.Test),
		},
		Seed: seed,
	}

	for _, f := range split.Failures {
		if f.Record.Fold == split.TestFold {
			sum.Skipped.Testing++
		} else {
			sum.Skipped.Training++
		}
	}
	sum.Skipped.Mixtures = len(mix.Failures)

	return sum
}

func (s Summary) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}

	return nil
}

func (s Summary) Save(path string) error {
	return saveFile(path, s.Write)
}

func LoadSummary(path string) (Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, fmt.Errorf("reading summary: %w", err)
	}

	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return Summary{}, fmt.Errorf("decoding %s: %w", path, err)
	}

	return s, nil
}
