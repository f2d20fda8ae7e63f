// SPDX-License-Identifier: EPL-2.0

package corpus

import (
	"reflect"
	"testing"
)

func rec(name, class string, fold int) Record {
	return Record{SliceFileName: name, Class: class, Fold: fold, Salience: Foreground, End: 4}
}

func TestClasses(t *testing.T) {
	t.Parallel()

	records := []Record{rec("1.wav", "siren", 1), rec("2.wav", "dog", 1), rec("3.wav", "siren", 2), rec("4.wav", "car", 3)}

	want := []string{"siren", "dog", "car"}
	if got := Classes(records); !reflect.DeepEqual(got, want) {
		t.Errorf("Classes() = %v, want %v", got, want)
	}
	if got := Classes(nil); len(got) != 0 {
		t.Errorf("Classes(nil) = %v, want empty", got)
	}
}

func TestByClass(t *testing.T) {
	t.Parallel()

	records := []Record{rec("1.wav", "siren", 1), rec("2.wav", "dog", 1), rec("3.wav", "siren", 2)}
	groups := ByClass(records)

	if len(groups) != 2 {
		t.Fatalf("ByClass() has %d groups, want 2", len(groups))
	}
	if got := groups["siren"]; len(got) != 2 || got[0].SliceFileName != "1.wav" || got[1].SliceFileName != "3.wav" {
		t.Errorf("ByClass()[siren] = %+v, want 1.wav then 3.wav", got)
	}
}

func TestPartition(t *testing.T) {
	t.Parallel()

	records := []Record{
		rec("a.wav", "dog", 1),
		rec("b.wav", "car", 1),
		rec("c.wav", "dog", 2),
		rec("d.wav", "siren", 3),
		rec("e.wav", "siren", 2),
	}

	for _, fold := range []int{1, 2, 3, 4} {
		train, test := Partition(records, fold)

		if len(train)+len(test) != len(records) {
			t.Errorf("fold %d: %d+%d records, want %d", fold, len(train), len(test), len(records))
		}

		seen := make(map[string]bool)
		for _, r := range train {
			if r.Fold == fold {
				t.Errorf("fold %d: train holds %s from the test fold", fold, r.SliceFileName)
			}
			seen[r.SliceFileName] = true
		}
		for _, r := range test {
			if r.Fold != fold {
				t.Errorf("fold %d: test holds %s from fold %d", fold, r.SliceFileName, r.Fold)
			}
			if seen[r.SliceFileName] {
				t.Errorf("fold %d: %s is in both partitions", fold, r.SliceFileName)
			}
		}
	}

	train, test := Partition(records, 2)
	if train[0].SliceFileName != "a.wav" || train[2].SliceFileName != "d.wav" || test[1].SliceFileName != "e.wav" {
		t.Error("Partition() did not keep input order")
	}
}

func TestFolds(t *testing.T) {
	t.Parallel()

	records := []Record{rec("a", "x", 10), rec("b", "x", 2), rec("c", "x", 10), rec("d", "x", 1)}
	if got, want := Folds(records), []int{1, 2, 10}; !reflect.DeepEqual(got, want) {
		t.Errorf("Folds() = %v, want %v", got, want)
	}
}

func TestSalience_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		s    Salience
		want string
	}{
		{Foreground, "foreground"},
		{Background, "background"},
		{Salience(7), "salience(7)"},
	}

	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Salience(%d).String() = %q, want %q", int(tt.s), got, tt.want)
		}
	}
}
