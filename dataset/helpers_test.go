// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"testing"

	"github.com/ik5/soundprep/audio"
	"github.com/ik5/soundprep/corpus"
)

// fakeLoader serves clips by asset name. Names listed in errs fail with the
// given error, unknown names fail with audio.ErrAssetNotFound.
type fakeLoader struct {
	clips map[string]audio.Clip
	errs  map[string]error
}

func (f fakeLoader) Load(name string, fold int) (audio.Clip, error) {
	if err, ok := f.errs[name]; ok {
		return audio.Clip{}, err
	}

	clip, ok := f.clips[name]
	if !ok {
		return audio.Clip{}, fmt.Errorf("%w: fold%d/%s", audio.ErrAssetNotFound, fold, name)
	}

	return clip, nil
}

func constClip(n, rate int, v float32) audio.Clip {
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = v
	}

	return audio.Clip{Samples: samples, SampleRate: rate}
}

func record(name, class string, classID, fold int) corpus.Record {
	return corpus.Record{
		SliceFileName: name,
		Class:         class,
		ClassID:       classID,
		Fold:          fold,
		Salience:      corpus.Foreground,
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}

	return rows
}
