// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"errors"
	"fmt"

	"github.com/ik5/soundprep/corpus"
)

// ErrInvalidMixConfig is returned before any mixture is written when the
// requested count or arity cannot be served by the corpus.
var ErrInvalidMixConfig = errors.New("invalid mixture configuration")

// ItemError is a skipped record and the reason it was skipped.
type ItemError struct {
	Record corpus.Record
	Err    error
}

func (e ItemError) Error() string {
	return fmt.Sprintf("%s (fold %d): %v", e.Record.SliceFileName, e.Record.Fold, e.Err)
}

func (e ItemError) Unwrap() error { return e.Err }
