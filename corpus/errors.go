// SPDX-License-Identifier: EPL-2.0

package corpus

import "errors"

var (
	ErrMissingColumn = errors.New("metadata is missing a required column")
	ErrMalformedRow  = errors.New("malformed metadata row")
	ErrEmpty         = errors.New("metadata has no records")
)
