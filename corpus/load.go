// SPDX-License-Identifier: EPL-2.0

package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column names of the metadata table.
const (
	ColSliceFileName = "slice_file_name"
	ColFreesoundID   = "fsID"
	ColStart         = "start"
	ColEnd           = "end"
	ColSalience      = "salience"
	ColFold          = "fold"
	ColClassID       = "classID"
	ColClass         = "class"
)

var requiredColumns = []string{
	ColSliceFileName, ColStart, ColEnd, ColSalience, ColFold, ColClassID, ColClass,
}

// Columns lists every known column in table order.
var Columns = []string{
	ColSliceFileName, ColFreesoundID, ColStart, ColEnd, ColSalience, ColFold, ColClassID, ColClass,
}

// Load reads the metadata table at path.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening metadata: %w", err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return records, nil
}

// Read parses a metadata table. Columns are matched by header name, so
// their order is free and unknown columns are ignored. fsID is optional:
// a blank cell or a missing column leaves FreesoundID at 0, any value given
// must be positive.
func Read(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	var records []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedRow, err)
		}

		line, _ := cr.FieldPos(0)
		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedRow, line, err)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrEmpty
	}

	return records, nil
}

func parseRow(row []string, cols map[string]int) (Record, error) {
	field := func(name string) string {
		return strings.TrimSpace(row[cols[name]])
	}

	rec := Record{
		SliceFileName: field(ColSliceFileName),
		Class:         field(ColClass),
	}
	if rec.SliceFileName == "" {
		return Record{}, fmt.Errorf("empty %s", ColSliceFileName)
	}
	if rec.Class == "" {
		return Record{}, fmt.Errorf("empty %s", ColClass)
	}

	var err error
	if rec.Fold, err = strconv.Atoi(field(ColFold)); err != nil {
		return Record{}, fmt.Errorf("%s: %w", ColFold, err)
	}
	if rec.ClassID, err = strconv.Atoi(field(ColClassID)); err != nil {
		return Record{}, fmt.Errorf("%s: %w", ColClassID, err)
	}

	salience, err := strconv.Atoi(field(ColSalience))
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", ColSalience, err)
	}
	rec.Salience = Salience(salience)

	if rec.Start, err = strconv.ParseFloat(field(ColStart), 64); err != nil {
		return Record{}, fmt.Errorf("%s: %w", ColStart, err)
	}
	if rec.End, err = strconv.ParseFloat(field(ColEnd), 64); err != nil {
		return Record{}, fmt.Errorf("%s: %w", ColEnd, err)
	}

	if _, ok := cols[ColFreesoundID]; ok {
		if v := field(ColFreesoundID); v != "" {
			if rec.FreesoundID, err = strconv.Atoi(v); err != nil {
				return Record{}, fmt.Errorf("%s: %w", ColFreesoundID, err)
			}
			if rec.FreesoundID <= 0 {
				return Record{}, fmt.Errorf("%s: %d is not a freesound id", ColFreesoundID, rec.FreesoundID)
			}
		}
	}

	return rec, nil
}
