package hessenberg

import (
	"math"

	"gonum.org/v1/gonum/cmplxs"
)

// BalanceComplex is the complex analogue of Balance: it computes a single
// global scale factor for the n×n complex matrix a (row-major, stride lda)
// and rescales it in place if its magnitude falls outside the safe band.
func BalanceComplex(n int, a []complex128, lda int) (didScale bool, cscale, anrm float64) {
	if n == 0 {
		return false, 1, 0
	}
	if lda == n {
		anrm = cmplxs.Norm(a[:n*n], math.Inf(1))
	} else {
		for i := 0; i < n; i++ {
			anrm = math.Max(anrm, cmplxs.Norm(a[i*lda:i*lda+n], math.Inf(1)))
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
			a[i*lda+j] *= complex(cscale, 0)
		}
	}
	return true, cscale, anrm
}

// UnscaleComplex reverses a prior BalanceComplex scaling in place on t and
// divides each entry of w by cscale, restoring the original magnitude band.
func UnscaleComplex(n int, t []complex128, ldt int, w []complex128, cscale float64) {
	if cscale == 1 {
		return
	}
	inv := complex(1/cscale, 0)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			t[i*ldt+j] *= inv
		}
	}
	for i := 0; i < n; i++ {
		w[i] *= inv
	}
}
