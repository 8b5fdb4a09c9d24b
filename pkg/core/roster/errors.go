package roster

import "errors"

var (
	// ErrInvalidDimensions is returned when staff or day counts are not positive
	ErrInvalidDimensions = errors.New("invalid roster dimensions")

	// ErrInvalidInput is returned when a vacation cell, rotation offset or cell
	// matrix does not fit the problem it is used with
	ErrInvalidInput = errors.New("invalid roster input")
)
