// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"strings"
	"testing"

	"github.com/ik5/soundprep/corpus"
)

func TestWriteSplitTable(t *testing.T) {
	t.Parallel()

	rows := []SplitRow{
		{Filename: "dog_bark.100032-3-0-0.wav", Class: "dog_bark", ClassID: 3, OriginalFold: 5, Salience: corpus.Foreground},
		{Filename: "siren.100648-8-0-0.wav", Class: "siren", ClassID: 8, OriginalFold: 10, Salience: corpus.Background},
	}

	var sb strings.Builder
	if err := WriteSplitTable(&sb, rows); err != nil {
		t.Fatalf("WriteSplitTable() error = %v", err)
	}

	want := "filename,class,classID,original_fold,salience\n" +
		"dog_bark.100032-3-0-0.wav,dog_bark,3,5,1\n" +
		"siren.100648-8-0-0.wav,siren,8,10,2\n"
	if got := sb.String(); got != want {
		t.Errorf("WriteSplitTable() =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteSplitTable_Empty(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	if err := WriteSplitTable(&sb, nil); err != nil {
		t.Fatalf("WriteSplitTable() error = %v", err)
	}

	if got, want := sb.String(), "filename,class,classID,original_fold,salience\n"; got != want {
		t.Errorf("WriteSplitTable() = %q, want %q", got, want)
	}
}

func TestWriteMixtureTable(t *testing.T) {
	t.Parallel()

	rows := []MixtureRow{{
		Filename:   "mixed_0000_dog_bark_siren.wav",
		Labels:     "dog_bark,siren",
		NumClasses: 2,
		Classes:    []string{"dog_bark", "siren"},
	}}

	var sb strings.Builder
	if err := WriteMixtureTable(&sb, rows); err != nil {
		t.Fatalf("WriteMixtureTable() error = %v", err)
	}

	want := "filename,labels,num_classes,classes\n" +
		`mixed_0000_dog_bark_siren.wav,"dog_bark,siren",2,"[""dog_bark"",""siren""]"` + "\n"
	if got := sb.String(); got != want {
		t.Errorf("WriteMixtureTable() =\n%s\nwant\n%s", got, want)
	}
}
