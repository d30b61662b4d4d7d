package vector

import (
	"errors"
	"fmt"
)

var (
	// ErrDimension is returned when a vector, coordinate or scale input does
	// not have exactly three components, or a tensor is not 3×3.
	ErrDimension = errors.New("vector: expected three dimensions")

	// ErrNotAntisymmetric is returned by DualVector for a tensor with
	// T != -Tᵗ.
	ErrNotAntisymmetric = errors.New("vector: tensor is not antisymmetric")

	// ErrUnknownSystem is returned when a coordinate system name is not in
	// the catalog.
	ErrUnknownSystem = errors.New("vector: unknown coordinate system")
)

func checkLen(what string, n int) error {
	if n != 3 {
		return fmt.Errorf("%s has %d components: %w", what, n, ErrDimension)
	}
	return nil
}
