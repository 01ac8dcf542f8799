// Package curve builds the 256-entry gamma lookup tables used to drive
// addressable LEDs.
//
// A forward table maps a raw 8-bit level to the level actually written to
// the hardware. LEDs (and the eye) respond non-linearly to drive values, so
// raw levels are pushed through out = (in/maxIn)^gamma * maxOut before being
// sent. The inverse table maps a corrected level back to an approximate raw
// level, which is what blending needs.
//
// Tables are plain [256]uint8 values. They are built once and replaced
// wholesale when a parameter changes; nothing in this package mutates a
// table it did not just create.
package curve

import (
	"errors"
	"fmt"
	"math"
)

// Size is the number of entries in every table.
const Size = 256

// Table is a 256-entry lookup table indexed by an 8-bit level.
type Table [Size]uint8

var (
	// ErrInvalidGamma is returned when a gamma exponent is not a finite
	// positive number.
	ErrInvalidGamma = errors.New("curve: gamma must be finite and positive")

	// ErrInvalidRange is returned when maxIn or maxOut is outside [1, 255].
	ErrInvalidRange = errors.New("curve: range must be within [1, 255]")
)

// ValidateGamma reports whether gamma can be used to build a table.
func ValidateGamma(gamma float64) error {
	if math.IsNaN(gamma) || math.IsInf(gamma, 0) || gamma <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidGamma, gamma)
	}
	return nil
}

func validateRange(maxIn, maxOut int) error {
	if maxIn < 1 || maxIn > 255 {
		return fmt.Errorf("%w: maxIn=%d", ErrInvalidRange, maxIn)
	}
	if maxOut < 1 || maxOut > 255 {
		return fmt.Errorf("%w: maxOut=%d", ErrInvalidRange, maxOut)
	}
	return nil
}

// Level computes a single forward table entry.
//
// Inputs at or above maxIn saturate to maxOut. Any nonzero input that would
// round to zero is raised to 1, so only a zero input produces black.
//
// Level does not validate its arguments; use Build for checked construction.
// The closed-form correction path calls Level directly so that it agrees
// with a table built from the same gamma on every input.
func Level(i int, gamma float64, maxIn, maxOut int) uint8 {
	if i >= maxIn {
		return uint8(maxOut) //nolint:gosec // maxOut is within [1,255]
	}
	v := int(math.Pow(float64(i)/float64(maxIn), gamma)*float64(maxOut) + 0.5)
	if v > maxOut {
		v = maxOut
	}
	if i > 0 && v == 0 {
		v = 1
	}
	return uint8(v) //nolint:gosec // v is clamped to [0,maxOut]
}

// Build generates a forward gamma table.
//
// Example:
//
//	t, _ := curve.Build(2.2, 255, 255)
//	t[128] // 56
func Build(gamma float64, maxIn, maxOut int) (Table, error) {
	var t Table
	if err := ValidateGamma(gamma); err != nil {
		return t, err
	}
	if err := validateRange(maxIn, maxOut); err != nil {
		return t, err
	}
	for i := range Size {
		t[i] = Level(i, gamma, maxIn, maxOut)
	}
	return t, nil
}

// MustBuild is like Build but panics on invalid parameters.
// It is intended for package-level tables built from constants.
func MustBuild(gamma float64, maxIn, maxOut int) Table {
	t, err := Build(gamma, maxIn, maxOut)
	if err != nil {
		panic(err)
	}
	return t
}

// Identity returns the table mapping every level to itself.
func Identity() Table {
	var t Table
	for i := range Size {
		t[i] = uint8(i) //nolint:gosec // i < 256
	}
	return t
}

// Monotonic reports whether t is non-decreasing.
func (t *Table) Monotonic() bool {
	for i := 1; i < Size; i++ {
		if t[i] < t[i-1] {
			return false
		}
	}
	return true
}
