package diversity

import (
	"errors"
	"fmt"
)

// Domain errors for index computation. Callers can test with errors.Is.
var (
	ErrEmptyVector      = errors.New("abundance vector is empty")
	ErrZeroSum          = errors.New("abundance vector sums to zero")
	ErrDegenerate       = errors.New("index undefined for this vector")
	ErrInvalidAbundance = errors.New("invalid abundance value")
	ErrUnknownIndex     = errors.New("unknown diversity index")
)

func newDegenerateError(index Index, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrDegenerate, index.Name(), reason)
}

func newInvalidAbundanceError(pos int, value float64) error {
	return fmt.Errorf("%w: entry %d is %v", ErrInvalidAbundance, pos, value)
}

// IsDomainError reports whether err means the index is mathematically
// undefined for the given vector, as opposed to a malformed request.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrZeroSum) || errors.Is(err, ErrDegenerate) || errors.Is(err, ErrEmptyVector)
}
