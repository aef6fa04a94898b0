package color

import (
	"errors"
	"fmt"
)

// Decode failure classes. Every failed decode matches exactly one of
// these via errors.Is.
var (
	ErrWrongLength         = errors.New("color: wrong length")
	ErrUnknownDiscriminant = errors.New("color: unknown discriminant")
	ErrMalformedPadding    = errors.New("color: malformed padding")
	ErrInvalidNamedColor   = errors.New("color: invalid named color")
)

// DecodeError describes why a byte sequence is not a canonical encoding.
type DecodeError struct {
	Err    error // one of the Err* classes above
	Offset int   // offending byte index; -1 for length errors
	Got    int   // offending byte value, or the input length for ErrWrongLength
}

func (e *DecodeError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("%v: got %d bytes, want %d", e.Err, e.Got, Size)
	}
	return fmt.Sprintf("%v: byte %d is 0x%02x", e.Err, e.Offset, e.Got)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func errAt(class error, off int, got byte) *DecodeError {
	return &DecodeError{Err: class, Offset: off, Got: int(got)}
}
