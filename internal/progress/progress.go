// SPDX-License-Identifier: EPL-2.0

// Package progress reports per-item progress of long batch runs.
package progress

import (
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Tracker counts finished items of one stage. Safe for concurrent use.
type Tracker interface {
	Increment()
	// Done releases the tracker, also when the stage stopped early.
	Done()
}

// Factory hands out one Tracker per stage.
type Factory interface {
	Track(name string, total int) Tracker
	// Wait blocks until every tracker is done.
	Wait()
}

// Nop discards all progress.
type Nop struct{}

func (Nop) Track(string, int) Tracker { return nopTracker{} }
func (Nop) Wait()                     {}

type nopTracker struct{}

func (nopTracker) Increment() {}
func (nopTracker) Done()      {}

// Bars renders an mpb progress bar per stage.
type Bars struct {
	p *mpb.Progress
}

func NewBars(w io.Writer) *Bars {
	return &Bars{p: mpb.New(mpb.WithWidth(64), mpb.WithOutput(w))}
}

func (b *Bars) Track(name string, total int) Tracker {
	bar := b.p.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(name+": "),
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.AppendDecorators(
			decor.Percentage(),
			decor.AverageETA(decor.ET_STYLE_GO),
		),
	)

	return &barTracker{bar: bar}
}

func (b *Bars) Wait() { b.p.Wait() }

type barTracker struct {
	bar *mpb.Bar
}

func (t *barTracker) Increment() { t.bar.Increment() }

func (t *barTracker) Done() {
	if !t.bar.Completed() {
		t.bar.Abort(false)
	}
}
