package schurlapack

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/blas/blas64"
)

// Dlartg generates a real plane rotation so that
//
//	[ c s] * [f] = [r]
//	[-s c]   [g]   [0]
//
// with c*c+s*s == 1. It follows the teacher's own Dlartg (lapack/gonum), in
// particular the safe-scaling branch that avoids overflow when f or g is
// near the top of the exponent range.
func Dlartg(f, g float64) (c, s, r float64) {
	switch {
	case g == 0:
		return 1, 0, f
	case f == 0:
		return 0, math.Copysign(1, g), math.Abs(g)
	}
	f1, g1 := math.Abs(f), math.Abs(g)
	scale := math.Max(f1, g1)
	d := scale * math.Hypot(f/scale, g/scale)
	c = f1 / d
	s = math.Copysign(1, f) * g / d
	r = math.Copysign(d, f)
	return c, s, r
}

// Zlartg generates a complex plane rotation with c real so that
//
//	[ c       s    ] * [f] = [r]
//	[-conj(s) c    ]   [g]   [0]
//
// with c*c+|s|*|s| == 1. Derived the same way as Dlartg: scale by the larger
// of |f|, |g| before combining magnitudes, so intermediate products never
// overflow ahead of the final rescale.
func Zlartg(f, g complex128) (c float64, s, r complex128) {
	af, ag := cmplx.Abs(f), cmplx.Abs(g)
	switch {
	case ag == 0:
		return 1, 0, f
	case af == 0:
		return 0, 1, g
	}
	scale := math.Max(af, ag)
	d := scale * math.Hypot(af/scale, ag/scale)
	c = af / d
	s = f * cmplx.Conj(g) / complex(af*d, 0)
	r = complex(c, 0)*f + s*g
	return c, s, r
}

// ApplyRotationLeft applies the real rotation [[c,s],[-s,c]] from the left to
// rows row and row+1 of the n-column-wide window h[:, colLo:colHi], mutating
// h in place. Only the two named rows are touched.
func ApplyRotationLeft(c, s float64, h []float64, ldh, row, colLo, colHi int) {
	if colHi <= colLo {
		return
	}
	n := colHi - colLo
	x := h[row*ldh+colLo : row*ldh+colLo+n]
	y := h[(row+1)*ldh+colLo : (row+1)*ldh+colLo+n]
	blas64.Implementation().Drot(n, x, 1, y, 1, c, s)
}

// ApplyRotationRight applies the transpose rotation [[c,-s],[s,c]] from the
// right to columns col and col+1 over rows [rowLo,rowHi), mutating h (or Z)
// in place. Only the two named columns are touched. Columns are strided
// vectors of increment ldh, applied with a single Drot call the way the
// teacher's dhgeqz.go drives its own column rotations (e.g.
// "bi.Drot(jch+1-ifrstm, h[ifrstm*ldh+jch:], ldh, h[ifrstm*ldh+jch-1:], ldh,
// c, s)").
func ApplyRotationRight(c, s float64, h []float64, ldh, rowLo, rowHi, col int) {
	if rowHi <= rowLo {
		return
	}
	n := rowHi - rowLo
	x := h[rowLo*ldh+col:]
	y := h[rowLo*ldh+col+1:]
	blas64.Implementation().Drot(n, x, ldh, y, ldh, c, s)
}

// ApplyZRotationLeft applies the complex rotation [[c,s],[-conj(s),c]] from
// the left to rows row and row+1 of h[:, colLo:colHi].
func ApplyZRotationLeft(c float64, s complex128, h []complex128, ldh, row, colLo, colHi int) {
	cs := complex(c, 0)
	sbar := cmplx.Conj(s)
	for j := colLo; j < colHi; j++ {
		a := h[row*ldh+j]
		b := h[(row+1)*ldh+j]
		h[row*ldh+j] = cs*a + s*b
		h[(row+1)*ldh+j] = -sbar*a + cs*b
	}
}

// ApplyZRotationRight applies Gᴴ, the conjugate transpose of
// [[c,s],[-conj(s),c]], from the right to columns col and col+1 over rows
// [rowLo,rowHi). This is the companion operation that keeps Z·H·Zᴴ invariant
// whenever ApplyZRotationLeft mutates H from the inside.
func ApplyZRotationRight(c float64, s complex128, h []complex128, ldh, rowLo, rowHi, col int) {
	cs := complex(c, 0)
	sbar := cmplx.Conj(s)
	for r := rowLo; r < rowHi; r++ {
		a := h[r*ldh+col]
		b := h[r*ldh+col+1]
		h[r*ldh+col] = cs*a + sbar*b
		h[r*ldh+col+1] = -s*a + cs*b
	}
}
