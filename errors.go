package adjust

import (
	"errors"
	"fmt"
)

// Errors returned by the adjustment engine.
var (
	// ErrDecodeFailure is returned when no usable source buffer is
	// available: the source is nil or could not be decoded.
	ErrDecodeFailure = errors.New("adjust: decode failure")

	// ErrInvalidBuffer is returned when the source buffer is zero-sized or
	// its pixel data does not match its dimensions. It wraps
	// ErrDecodeFailure, so errors.Is(err, ErrDecodeFailure) also holds.
	ErrInvalidBuffer = fmt.Errorf("%w: invalid pixel buffer", ErrDecodeFailure)
)
