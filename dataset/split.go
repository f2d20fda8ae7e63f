// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/ik5/soundprep/audio"
	"github.com/ik5/soundprep/corpus"
	"github.com/ik5/soundprep/formats/wav"
	"github.com/ik5/soundprep/internal/progress"
	"github.com/ik5/soundprep/logger"
)

// Partition directory names inside a fold directory.
const (
	TrainDir = "training"
	TestDir  = "testing"
)

// Loader resolves a corpus asset into a clip at the target rate.
type Loader interface {
	Load(name string, fold int) (audio.Clip, error)
}

// OutputName is the file name a record is written under.
func OutputName(r corpus.Record) string {
	return r.Class + "." + r.SliceFileName
}

// FoldDir is the directory of the split that holds testFold out.
func FoldDir(root string, testFold int) string {
	return filepath.Join(root, fmt.Sprintf("fold_%d_test", testFold))
}

// Splitter writes a train/test split of the corpus.
type Splitter struct {
	Loader     Loader
	Normalizer audio.LengthNormalizer
	OutputDir  string
	// Workers > 1 processes records concurrently. Row order still follows
	// the input order.
	Workers  int
	Logger   *zap.Logger
	Progress progress.Factory
}

// SplitResult is what a Split wrote and what it skipped.
type SplitResult struct {
	Dir      string
	TestFold int
	Train    []SplitRow
	Test     []SplitRow
	Failures []ItemError
}

// Folds returns the distinct original folds of rows, sorted.
func Folds(rows []SplitRow) []int {
	folds := make([]int, 0, len(rows))
	for _, r := range rows {
		folds = append(folds, r.OriginalFold)
	}
	slices.Sort(folds)

	return slices.Compact(folds)
}

// Split partitions records on testFold and writes both sides under
// FoldDir(s.OutputDir, testFold), followed by their metadata tables.
//
// Records that fail to load or write are skipped and listed in
// SplitResult.Failures. Only context cancellation and errors writing the
// tables stop the split.
func (s *Splitter) Split(ctx context.Context, records []corpus.Record, testFold int) (SplitResult, error) {
	log := logger.Component(s.Logger, "splitter")
	dir := FoldDir(s.OutputDir, testFold)
	res := SplitResult{Dir: dir, TestFold: testFold}

	train, test := corpus.Partition(records, testFold)
	log.Info("splitting corpus",
		zap.Int("test_fold", testFold),
		zap.Int("training", len(train)),
		zap.Int("testing", len(test)),
	)

	for _, sub := range []string{TrainDir, TestDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return res, fmt.Errorf("creating %s: %w", sub, err)
		}
	}

	var err error
	res.Train, res.Failures, err = s.process(ctx, log, train, dir, TrainDir, res.Failures)
	if err != nil {
		return res, err
	}
	res.Test, res.Failures, err = s.process(ctx, log, test, dir, TestDir, res.Failures)
	if err != nil {
		return res, err
	}

	if err := SaveSplitTable(filepath.Join(dir, TrainTableName), res.Train); err != nil {
		return res, err
	}
	if err := SaveSplitTable(filepath.Join(dir, TestTableName), res.Test); err != nil {
		return res, err
	}

	log.Info("split written",
		zap.String("dir", dir),
		zap.Int("training", len(res.Train)),
		zap.Int("testing", len(res.Test)),
		zap.Int("skipped", len(res.Failures)),
	)

	return res, nil
}

type splitItem struct {
	row SplitRow
	err error
}

func (s *Splitter) process(
	ctx context.Context, log *zap.Logger, records []corpus.Record,
	foldDir, sub string, failures []ItemError,
) ([]SplitRow, []ItemError, error) {
	prog := s.Progress
	if prog == nil {
		prog = progress.Nop{}
	}
	tracker := prog.Track(sub, len(records))
	defer tracker.Done()

	dir := filepath.Join(foldDir, sub)
	items := make([]splitItem, len(records))
	jobs := make(chan int)

	workers := min(max(s.Workers, 1), max(len(records), 1))
	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			for i := range jobs {
				items[i].row, items[i].err = s.processOne(records[i], dir)
				tracker.Increment()
			}
		})
	}

	var cancelled error
	for i := range records {
		if cancelled = ctx.Err(); cancelled != nil {
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			cancelled = ctx.Err()
		}
		if cancelled != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		return nil, failures, fmt.Errorf("%s: %w", sub, cancelled)
	}

	rows := make([]SplitRow, 0, len(records))
	for i, it := range items {
		if it.err != nil {
			log.Warn("skipping item",
				zap.String("file", records[i].SliceFileName),
				zap.Int("fold", records[i].Fold),
				zap.String("partition", sub),
				zap.Error(it.err),
			)
			failures = append(failures, ItemError{Record: records[i], Err: it.err})
			continue
		}
		rows = append(rows, it.row)
	}

	return rows, failures, nil
}

func (s *Splitter) processOne(r corpus.Record, dir string) (SplitRow, error) {
	clip, err := s.Loader.Load(r.SliceFileName, r.Fold)
	if err != nil {
		return SplitRow{}, fmt.Errorf("loading: %w", err)
	}

	clip, err = s.Normalizer.Normalize(clip)
	if err != nil {
		return SplitRow{}, fmt.Errorf("normalizing: %w", err)
	}

	name := OutputName(r)
	if err := wav.WriteClip(filepath.Join(dir, name), clip); err != nil {
		return SplitRow{}, err
	}

	return SplitRow{
		Filename:     name,
		Class:        r.Class,
		ClassID:      r.ClassID,
		OriginalFold: r.Fold,
		Salience:     r.Salience,
	}, nil
}
