// SPDX-License-Identifier: EPL-2.0

package corpus

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestDescribe(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Class: "dog", ClassID: 3, Fold: 1, Salience: Foreground, Start: 0, End: 1, FreesoundID: 11},
		{Class: "car", ClassID: 1, Fold: 1, Salience: Background, Start: 0, End: 2, FreesoundID: 12},
		{Class: "dog", ClassID: 3, Fold: 2, Salience: Foreground, Start: 1, End: 4},
		{Class: "siren", ClassID: 8, Fold: 2, Salience: Foreground, Start: 0, End: 4, FreesoundID: 14},
		{Class: "dog", ClassID: 3, Fold: 3, Salience: Background, Start: 0, End: 5},
	}

	rep := Describe(records)

	if rep.Records != 5 {
		t.Errorf("Records = %d, want 5", rep.Records)
	}

	wantClasses := []ClassCount{
		{Class: "car", ClassID: 1, Count: 1},
		{Class: "dog", ClassID: 3, Count: 3},
		{Class: "siren", ClassID: 8, Count: 1},
	}
	if !reflect.DeepEqual(rep.Classes, wantClasses) {
		t.Errorf("Classes = %+v, want %+v", rep.Classes, wantClasses)
	}

	wantFolds := []FoldCount{{Fold: 1, Count: 2}, {Fold: 2, Count: 2}, {Fold: 3, Count: 1}}
	if !reflect.DeepEqual(rep.Folds, wantFolds) {
		t.Errorf("Folds = %+v, want %+v", rep.Folds, wantFolds)
	}

	wantSalience := []SalienceCount{{Salience: Foreground, Count: 3}, {Salience: Background, Count: 2}}
	if !reflect.DeepEqual(rep.Salience, wantSalience) {
		t.Errorf("Salience = %+v, want %+v", rep.Salience, wantSalience)
	}

	wantMissing := []ColumnCount{
		{Column: ColSliceFileName}, {Column: ColFreesoundID, Count: 2}, {Column: ColStart}, {Column: ColEnd},
		{Column: ColSalience}, {Column: ColFold}, {Column: ColClassID}, {Column: ColClass},
	}
	if !reflect.DeepEqual(rep.Missing, wantMissing) {
		t.Errorf("Missing = %+v, want %+v", rep.Missing, wantMissing)
	}

	// durations 1,2,3,4,5
	d := rep.Duration
	if d.Count != 5 || d.Mean != 3 || d.Min != 1 || d.Max != 5 {
		t.Errorf("Duration = %+v, want count 5, mean 3, min 1, max 5", d)
	}
	if d.Q1 != 2 || d.Median != 3 || d.Q3 != 4 {
		t.Errorf("Duration quartiles = %v/%v/%v, want 2/3/4", d.Q1, d.Median, d.Q3)
	}
	if math.Abs(d.Std-math.Sqrt(2.5)) > 1e-9 {
		t.Errorf("Duration.Std = %v, want %v", d.Std, math.Sqrt(2.5))
	}

	ct := rep.Crosstab
	if !reflect.DeepEqual(ct.Classes, []string{"car", "dog", "siren"}) {
		t.Errorf("Crosstab.Classes = %v", ct.Classes)
	}
	if !reflect.DeepEqual(ct.Folds, []int{1, 2, 3}) {
		t.Errorf("Crosstab.Folds = %v", ct.Folds)
	}

	cells := []struct {
		class string
		fold  int
		want  int
	}{
		{"dog", 1, 1}, {"dog", 2, 1}, {"dog", 3, 1},
		{"car", 1, 1}, {"car", 2, 0},
		{"siren", 2, 1},
		{"unknown", 1, 0}, {"dog", 9, 0},
	}
	for _, c := range cells {
		if got := ct.At(c.class, c.fold); got != c.want {
			t.Errorf("Crosstab.At(%q, %d) = %d, want %d", c.class, c.fold, got, c.want)
		}
	}
}

func TestDescribe1D_Degenerate(t *testing.T) {
	t.Parallel()

	if got := Describe1D(nil); got != (Stats{}) {
		t.Errorf("Describe1D(nil) = %+v, want zero", got)
	}

	got := Describe1D([]float64{4})
	want := Stats{Count: 1, Mean: 4, Min: 4, Q1: 4, Median: 4, Q3: 4, Max: 4}
	if got != want {
		t.Errorf("Describe1D([4]) = %+v, want %+v", got, want)
	}
}

func TestDescribe_BlankFreesoundIDs(t *testing.T) {
	t.Parallel()

	input := "slice_file_name,fsID,start,end,salience,fold,classID,class\n" +
		"a.wav,,0,1,1,1,3,dog\n" +
		"b.wav,77,0,1,1,1,3,dog\n" +
		"c.wav,,0,1,2,2,1,car\n"

	records, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	for _, c := range Describe(records).Missing {
		want := 0
		if c.Column == ColFreesoundID {
			want = 2
		}
		if c.Count != want {
			t.Errorf("Missing[%s] = %d, want %d", c.Column, c.Count, want)
		}
	}
}
