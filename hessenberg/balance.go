package hessenberg

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Balance computes a single global scale factor cscale for the n×n matrix a
// (row-major, stride lda) and, if it falls outside the safe magnitude band
// [rmin,rmax], rescales a by it in place and reports didScale=true. anrm is
// the matrix's max-absolute-value norm before any rescaling, so the caller
// can decide whether eigenvalues need rescaling too.
//
// This is the single-matrix narrowing of the teacher's Dggbal (generalized
// (A,B) balancing): Dggbal isolates eigenvalues by permutation and then
// equilibrates row/column norms by an iterative conjugate-gradient scheme.
// spec.md S6's "Scaler" collaborator asks only for the simpler of those two
// concerns — keeping the overall matrix magnitude away from the overflow
// and underflow bands before the QR sweep — so Balance applies a single
// scalar scale factor rather than Dggbal's per-row/column vector, mirroring
// the preamble every LAPACK eigenvalue driver (e.g. DHSEQR) runs before
// calling into the QR iteration itself.
func Balance(n int, a []float64, lda int) (didScale bool, cscale, anrm float64) {
	if n == 0 {
		return false, 1, 0
	}
	if lda == n {
		// Dense, unpadded storage: the whole backing slice's infinity norm
		// is the matrix's max-abs-value norm in one call.
		anrm = floats.Norm(a[:n*n], math.Inf(1))
	} else {
		for i := 0; i < n; i++ {
			anrm = math.Max(anrm, floats.Norm(a[i*lda:i*lda+n], math.Inf(1)))
		}
	}
	if anrm == 0 {
		return false, 1, 0
	}

	rmin := safeMin
	rmax := 1 / safeMin
	cscale = 1
	switch {
	case anrm < rmin:
		cscale = rmin / anrm
	case anrm > rmax:
		cscale = rmax / anrm
	default:
		return false, 1, anrm
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a[i*lda+j] *= cscale
		}
	}
	return true, cscale, anrm
}

// Unscale reverses a prior Balance scaling in place on t (which Balance's
// caller will have already driven to (quasi-)triangular form via a
// similarity transform, so only the entries Balance originally touched need
// correcting) and divides each of wr, wi by cscale as well, restoring the
// eigenvalues to the original magnitude band.
func Unscale(n int, t []float64, ldt int, wr, wi []float64, cscale float64) {
	if cscale == 1 {
		return
	}
	inv := 1 / cscale
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			t[i*ldt+j] *= inv
		}
	}
	for i := 0; i < n; i++ {
		wr[i] *= inv
		wi[i] *= inv
	}
}

// safeMin is a practical safe-minimum constant: a positive float64 whose
// reciprocal does not overflow.
var safeMin = math.SmallestNonzeroFloat64 * (1 << 52)
