// SPDX-License-Identifier: EPL-2.0

package corpus

import (
	"fmt"
	"slices"
)

// Salience is the foreground/background annotation of a sound event.
type Salience int

const (
	Foreground Salience = 1
	Background Salience = 2
)

func (s Salience) String() string {
	switch s {
	case Foreground:
		return "foreground"
	case Background:
		return "background"
	default:
		return fmt.Sprintf("salience(%d)", int(s))
	}
}

// Record is one annotated slice of the corpus metadata table.
type Record struct {
	SliceFileName string
	FreesoundID   int
	Start         float64
	End           float64
	Salience      Salience
	Fold          int
	ClassID       int
	Class         string
}

// Duration of the slice in seconds, as annotated.
func (r Record) Duration() float64 { return r.End - r.Start }

// Classes returns the distinct labels in order of first appearance.
func Classes(records []Record) []string {
	var classes []string
	seen := make(map[string]struct{})

	for _, r := range records {
		if _, ok := seen[r.Class]; ok {
			continue
		}
		seen[r.Class] = struct{}{}
		classes = append(classes, r.Class)
	}

	return classes
}

// ByClass groups records per label, keeping their input order.
func ByClass(records []Record) map[string][]Record {
	groups := make(map[string][]Record)
	for _, r := range records {
		groups[r.Class] = append(groups[r.Class], r)
	}

	return groups
}

// Partition splits records on their fold: records of testFold go to test,
// every other record to train. Input order is kept on both sides.
func Partition(records []Record, testFold int) (train, test []Record) {
	for _, r := range records {
		if r.Fold == testFold {
			test = append(test, r)
		} else {
			train = append(train, r)
		}
	}

	return train, test
}

// Folds lists the distinct folds of records, sorted.
func Folds(records []Record) []int {
	var folds []int
	for _, r := range records {
		if !slices.Contains(folds, r.Fold) {
			folds = append(folds, r.Fold)
		}
	}
	slices.Sort(folds)

	return folds
}
