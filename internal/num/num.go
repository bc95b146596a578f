// Package num holds small numeric helpers used across the converter:
// soft (approximate) floating point comparison and integer powers.
package num

import (
	"math"

	"github.com/chewxy/math32"
)

// Default tolerances for 64-bit comparisons.
const (
	relPrec   = 1e-12
	absThresh = 1e-14
)

// Default tolerances for 32-bit comparisons.
const (
	relPrec32   = 1e-6
	absThresh32 = 1e-6
)

// SoftEqual compares two float64 values with an absolute tolerance for
// values near zero and a relative tolerance for values far from zero.
// The comparison is commutative: Compare(a,b) == Compare(b,a). NaN
// arguments always compare unequal, as do two same-signed infinities
// since relative error is meaningless there.
type SoftEqual struct {
	rel float64
	abs float64
}

// NewSoftEqual returns a comparator with the default relative (1e-12)
// and absolute (1e-14) tolerances.
func NewSoftEqual() SoftEqual {
	return SoftEqual{rel: relPrec, abs: absThresh}
}

// NewSoftEqualRel returns a comparator with relative tolerance rel and
// an absolute tolerance scaled proportionally from the defaults.
// It panics if rel is not positive.
func NewSoftEqualRel(rel float64) SoftEqual {
	if rel <= 0 {
		panic("softequal: relative tolerance must be positive")
	}
	return SoftEqual{rel: rel, abs: rel * (absThresh / relPrec)}
}

// NewSoftEqualTol returns a comparator with explicit relative and
// absolute tolerances. It panics if either is not positive.
func NewSoftEqualTol(rel, abs float64) SoftEqual {
	if rel <= 0 || abs <= 0 {
		panic("softequal: tolerances must be positive")
	}
	return SoftEqual{rel: rel, abs: abs}
}

// Rel returns the relative allowable error.
func (se SoftEqual) Rel() float64 { return se.rel }

// Abs returns the absolute tolerance.
func (se SoftEqual) Abs() float64 { return se.abs }

// Compare returns whether a and b are approximately equal:
//
//	|a-b| < max(rel*max(|a|,|b|), abs)
func (se SoftEqual) Compare(a, b float64) bool {
	rel := se.rel * math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) < math.Max(se.abs, rel)
}

// SoftEqual32 is the float32 flavor of SoftEqual with looser default
// tolerances (1e-6 relative and absolute).
type SoftEqual32 struct {
	rel float32
	abs float32
}

// NewSoftEqual32 returns a float32 comparator with default tolerances.
func NewSoftEqual32() SoftEqual32 {
	return SoftEqual32{rel: relPrec32, abs: absThresh32}
}

// Compare returns whether a and b are approximately equal.
func (se SoftEqual32) Compare(a, b float32) bool {
	rel := se.rel * math32.Max(math32.Abs(a), math32.Abs(b))
	return math32.Abs(a-b) < math32.Max(se.abs, rel)
}

// Number is the constraint for Ipow bases.
type Number interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64 | ~float32 | ~float64
}

// Ipow returns v raised to the non-negative integer power n using
// exponentiation by squaring.
//
//	Ipow(3.0, 2) == 9.0
//	Ipow(2, 8) == 256
func Ipow[T Number](v T, n uint) T {
	if n == 0 {
		return 1
	}
	if n%2 == 0 {
		h := Ipow(v, n/2)
		return h * h
	}
	h := Ipow(v, (n-1)/2)
	return v * h * h
}

// Clamp x between a and b, assume a <= b.
func Clamp(x, a, b float64) float64 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}
