package checks

import (
	"errors"
	"fmt"
)

// ErrInvalidDepth marks a composite or resolution attempt outside the
// valid depth range. Well-formed callers never trigger it; the guards
// exist so a bug reports instead of indexing out of bounds.
var ErrInvalidDepth = errors.New("invalid divisor depth")

// ErrMalformedRecord marks an external record that could not be decoded
// into a Check. It rejects the single record; batch callers skip it.
var ErrMalformedRecord = errors.New("malformed check record")

// MissingPointerError is returned when recursive color resolution
// dereferences a composite pointer absent from the supplied virtual map.
// It is never defaulted away: a silent fallback would corrupt colors.
type MissingPointerError struct {
	Pointer TokenID
}

func (e *MissingPointerError) Error() string {
	return fmt.Sprintf("virtual map has no entry for composite pointer %d", e.Pointer)
}
