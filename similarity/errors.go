package similarity

import "errors"

var (
	// ErrDimensionMismatch is returned when two vectors differ in length,
	// typically because they were produced by different models.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)
