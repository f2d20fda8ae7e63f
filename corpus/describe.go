// SPDX-License-Identifier: EPL-2.0

package corpus

import (
	"cmp"
	"slices"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type ClassCount struct {
	Class   string
	ClassID int
	Count   int
}

type FoldCount struct {
	Fold  int
	Count int
}

// ColumnCount is the number of blank cells in one metadata column.
type ColumnCount struct {
	Column string
	Count  int
}

type SalienceCount struct {
	Salience Salience
	Count    int
}

// Stats summarizes a sample the way a dataframe describe() does. Std is
// the sample standard deviation; quartiles are empirical.
type Stats struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Crosstab counts records per class (rows) and fold (columns).
type Crosstab struct {
	Classes []string
	Folds   []int
	Counts  [][]int
}

// At returns the count for class in fold, 0 when either is unknown.
func (c Crosstab) At(class string, fold int) int {
	row := slices.Index(c.Classes, class)
	col := slices.Index(c.Folds, fold)
	if row < 0 || col < 0 {
		return 0
	}

	return c.Counts[row][col]
}

// Report is the exploratory summary of a corpus.
type Report struct {
	Records  int
	Classes  []ClassCount // by name
	Folds    []FoldCount
	Salience []SalienceCount
	Missing  []ColumnCount // every column, in table order
	Duration Stats
	Crosstab Crosstab
}

// Describe computes class, fold and salience counts, blank cells per
// column, slice duration statistics and the class by fold table. Read
// rejects blank required cells, so only fsID can have a non-zero count.
func Describe(records []Record) Report {
	rep := Report{Records: len(records)}

	classIdx := make(map[string]int)
	foldCounts := make(map[int]int)
	salienceCounts := make(map[Salience]int)
	durations := make([]float64, 0, len(records))
	missingID := 0

	for _, r := range records {
		i, ok := classIdx[r.Class]
		if !ok {
			i = len(rep.Classes)
			classIdx[r.Class] = i
			rep.Classes = append(rep.Classes, ClassCount{Class: r.Class, ClassID: r.ClassID})
		}
		rep.Classes[i].Count++

		foldCounts[r.Fold]++
		salienceCounts[r.Salience]++
		if r.FreesoundID == 0 {
			missingID++
		}
		durations = append(durations, r.Duration())
	}

	slices.SortFunc(rep.Classes, func(a, b ClassCount) int { return cmp.Compare(a.Class, b.Class) })

	for _, col := range Columns {
		n := 0
		if col == ColFreesoundID {
			n = missingID
		}
		rep.Missing = append(rep.Missing, ColumnCount{Column: col, Count: n})
	}

	for fold, n := range foldCounts {
		rep.Folds = append(rep.Folds, FoldCount{Fold: fold, Count: n})
	}
	slices.SortFunc(rep.Folds, func(a, b FoldCount) int { return cmp.Compare(a.Fold, b.Fold) })

	for s, n := range salienceCounts {
		rep.Salience = append(rep.Salience, SalienceCount{Salience: s, Count: n})
	}
	slices.SortFunc(rep.Salience, func(a, b SalienceCount) int { return cmp.Compare(a.Salience, b.Salience) })

	rep.Duration = Describe1D(durations)
	rep.Crosstab = crosstab(records)

	return rep
}

// Describe1D computes Stats over values. values is sorted in place.
func Describe1D(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	sort.Float64s(values)

	s := Stats{
		Count:  len(values),
		Mean:   stat.Mean(values, nil),
		Min:    floats.Min(values),
		Max:    floats.Max(values),
		Q1:     stat.Quantile(0.25, stat.Empirical, values, nil),
		Median: stat.Quantile(0.5, stat.Empirical, values, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, values, nil),
	}
	if len(values) > 1 {
		s.Std = stat.StdDev(values, nil)
	}

	return s
}

func crosstab(records []Record) Crosstab {
	ct := Crosstab{
		Classes: Classes(records),
		Folds:   Folds(records),
	}
	slices.Sort(ct.Classes)

	ct.Counts = make([][]int, len(ct.Classes))
	for i := range ct.Counts {
		ct.Counts[i] = make([]int, len(ct.Folds))
	}

	for _, r := range records {
		row, _ := slices.BinarySearch(ct.Classes, r.Class)
		col, _ := slices.BinarySearch(ct.Folds, r.Fold)
		ct.Counts[row][col]++
	}

	return ct
}
