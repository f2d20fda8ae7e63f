// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ik5/soundprep/corpus"
)

// Table file names.
const (
	TrainTableName   = "train_metadata.csv"
	TestTableName    = "test_metadata.csv"
	MixtureTableName = "mixed_audio_metadata.csv"
)

var (
	splitHeader   = []string{"filename", "class", "classID", "original_fold", "salience"}
	mixtureHeader = []string{"filename", "labels", "num_classes", "classes"}
)

// SplitRow describes one written training or testing clip.
type SplitRow struct {
	Filename     string
	Class        string
	ClassID      int
	OriginalFold int
	Salience     corpus.Salience
}

// MixtureRow describes one written mixture. Labels is Classes joined with
// commas.
type MixtureRow struct {
	Filename   string
	Labels     string
	NumClasses int
	Classes    []string
}

func WriteSplitTable(w io.Writer, rows []SplitRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(splitHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, r := range rows {
		err := cw.Write([]string{
			r.Filename,
			r.Class,
			strconv.Itoa(r.ClassID),
			strconv.Itoa(r.OriginalFold),
			strconv.Itoa(int(r.Salience)),
		})
		if err != nil {
			return fmt.Errorf("writing %s: %w", r.Filename, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteMixtureTable writes rows with the classes column as a JSON array.
func WriteMixtureTable(w io.Writer, rows []MixtureRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(mixtureHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, r := range rows {
		classes, err := json.Marshal(r.Classes)
		if err != nil {
			return fmt.Errorf("encoding classes of %s: %w", r.Filename, err)
		}

		err = cw.Write([]string{r.Filename, r.Labels, strconv.Itoa(r.NumClasses), string(classes)})
		if err != nil {
			return fmt.Errorf("writing %s: %w", r.Filename, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func SaveSplitTable(path string, rows []SplitRow) error {
	return saveFile(path, func(w io.Writer) error { return WriteSplitTable(w, rows) })
}

func SaveMixtureTable(path string, rows []MixtureRow) error {
	return saveFile(path, func(w io.Writer) error { return WriteMixtureTable(w, rows) })
}

func saveFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}
