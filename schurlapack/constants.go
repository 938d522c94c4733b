package schurlapack

import "math"

// Machine constants for float64, computed once rather than hard-coded, the
// way the teacher derives dlamchS/dlamchE at init time in lapack/gonum.
var (
	epsR  = math.Nextafter(1, 2) - 1 // εR: machine epsilon of float64.
	safeR = math.SmallestNonzeroFloat64 * (1 << 52) / epsR
	// safeR is a practical "safe minimum": a positive value whose reciprocal
	// does not overflow and which itself did not underflow in forming it,
	// matching the role LAPACK's DLAMCH('S') constant plays.
)

// Abs1 returns the L1-style magnitude |Re z| + |Im z| used throughout the
// complex driver in place of the ordinary complex modulus; for real z this
// coincides with math.Abs.
func Abs1(re, im float64) float64 {
	return math.Abs(re) + math.Abs(im)
}

// Dlapy2 returns sqrt(x*x+y*y), computed so as to avoid unnecessary overflow
// or underflow, following the teacher's Dlapy3 (lapack/gonum/dlapy3.go)
// pared down to two arguments.
func Dlapy2(x, y float64) float64 {
	return math.Hypot(x, y)
}

// Dlapy3 returns sqrt(x*x+y*y+z*z), computed so as to avoid unnecessary
// overflow or underflow.
func Dlapy3(x, y, z float64) float64 {
	return math.Hypot(x, math.Hypot(y, z))
}
