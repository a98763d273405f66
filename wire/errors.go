package wire

import (
	"fmt"

	"github.com/vuuvv/errors"
)

var ErrShortBuffer = errors.New("wire: short buffer")

// UnhandledVariantError is returned when a discriminant matches no declared case.
type UnhandledVariantError struct {
	Type  string
	Field string
	Value int64
}

func (e *UnhandledVariantError) Error() string {
	return fmt.Sprintf("%s: unhandled %s value %#x", e.Type, e.Field, e.Value)
}

// VariantMismatchError is returned on write when the variant value does not
// belong to the case selected by the discriminant.
type VariantMismatchError struct {
	Type  string
	Field string
	Value int64
	Got   any
}

func (e *VariantMismatchError) Error() string {
	return fmt.Sprintf("%s: variant %T does not match %s value %#x", e.Type, e.Got, e.Field, e.Value)
}

// MissingFieldError is returned on write when a conditional member is nil
// while its guard holds.
type MissingFieldError struct {
	Type  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: field %s is required by its condition but not set", e.Type, e.Field)
}

type LengthMismatchError struct {
	Type  string
	Field string
	Want  int
	Got   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%s: field %s has %d elements, length expression wants %d", e.Type, e.Field, e.Got, e.Want)
}
