// Package hessenberg reduces a general matrix to upper Hessenberg form by
// orthogonal (or unitary) similarity, and provides a scaling pre-pass that
// rescales the matrix by one scalar when its magnitude lies outside the safe
// floating-point range. Both are adapted from
// the teacher's unblocked unblocked-path reduction (the unblocked algorithm
// exercised by lapack/testlapack's DgehrdTest for small n) and its Dggbal
// balancing routine, narrowed from the generalized (A,B) pencil case down
// to a single matrix.
package hessenberg

import "math"

// houseVec builds a real Householder vector v (v[0]=1 implicitly, v[1:]
// returned explicitly) and scalar tau such that (I-tau*v*vᵀ)*x = (beta,0,
// ...,0)ᵀ. If x is already zero below its first entry, tau is returned as 0
// and the caller should skip applying the reflector.
func houseVec(x []float64) (v []float64, tau, beta float64) {
	n := len(x)
	if n == 0 {
		return nil, 0, 0
	}
	alpha := x[0]
	var ss float64
	for _, xi := range x[1:] {
		ss += xi * xi
	}
	if ss == 0 {
		return make([]float64, n), 0, alpha
	}
	xnorm := math.Sqrt(ss)
	beta = -math.Copysign(math.Hypot(alpha, xnorm), alpha)
	tau = (beta - alpha) / beta
	v = make([]float64, n)
	v[0] = 1
	scale := 1 / (alpha - beta)
	for i := 1; i < n; i++ {
		v[i] = x[i] * scale
	}
	return v, tau, beta
}

// applyHouseLeft applies (I - tau*v*vᵀ) from the left to rows
// [rowLo,rowLo+len(v)) over columns [colLo,colHi).
func applyHouseLeft(v []float64, tau float64, a []float64, lda, rowLo, colLo, colHi int) {
	if tau == 0 {
		return
	}
	for j := colLo; j < colHi; j++ {
		var dot float64
		for i, vi := range v {
			dot += vi * a[(rowLo+i)*lda+j]
		}
		dot *= tau
		for i, vi := range v {
			a[(rowLo+i)*lda+j] -= dot * vi
		}
	}
}

// applyHouseRight applies (I - tau*v*vᵀ) from the right to columns
// [colLo,colLo+len(v)) over rows [rowLo,rowHi).
func applyHouseRight(v []float64, tau float64, a []float64, lda, rowLo, rowHi, colLo int) {
	if tau == 0 {
		return
	}
	for i := rowLo; i < rowHi; i++ {
		var dot float64
		for j, vj := range v {
			dot += vj * a[i*lda+colLo+j]
		}
		dot *= tau
		for j, vj := range v {
			a[i*lda+colLo+j] -= dot * vj
		}
	}
}

// ReduceReal reduces the n×n real matrix a (row-major, stride lda) to upper
// Hessenberg form by an orthogonal similarity transformation, following the
// classic column-by-column Householder sweep (spec.md S6, "Reducer"). If
// wantZ, z (stride ldz) is overwritten with the accumulated orthogonal
// factor such that a_hess = zᵀ * a_orig * z; z must already hold the n×n
// identity (or a previously accumulated orthogonal factor) on entry.
func ReduceReal(n int, a []float64, lda int, z []float64, ldz int, wantZ bool) {
	if n < 3 {
		return
	}
	x := make([]float64, n)
	for col := 0; col < n-2; col++ {
		m := n - col - 1
		for i := 0; i < m; i++ {
			x[i] = a[(col+1+i)*lda+col]
		}
		v, tau, beta := houseVec(x[:m])
		applyHouseLeft(v, tau, a, lda, col+1, col+1, n)
		applyHouseRight(v, tau, a, lda, 0, n, col+1)
		if wantZ {
			applyHouseRight(v, tau, z, ldz, 0, n, col+1)
		}
		a[(col+1)*lda+col] = beta
		for i := 1; i < m; i++ {
			a[(col+1+i)*lda+col] = 0
		}
	}
}

// houseVecComplex is the complex analogue of houseVec: it builds v (v[0]=1,
// v[1:] returned) and tau such that (I-conj(tau)*v*vᴴ)*x = (beta,0,...,0)ᵀ
// with beta real, following LAPACK's Zlarfg convention of rotating the pivot
// onto the real axis. The reflector H = I-tau*v*vᴴ is therefore applied as Hᴴ
// from the left and H from the right.
func houseVecComplex(x []complex128) (v []complex128, tau complex128, beta float64) {
	n := len(x)
	if n == 0 {
		return nil, 0, 0
	}
	alpha := x[0]
	var ss float64
	for _, xi := range x[1:] {
		ss += real(xi)*real(xi) + imag(xi)*imag(xi)
	}
	if ss == 0 && imag(alpha) == 0 {
		return make([]complex128, n), 0, real(alpha)
	}
	xnorm := math.Sqrt(ss)
	beta = -math.Copysign(dlapy3(real(alpha), imag(alpha), xnorm), real(alpha))
	tau = complex((beta-real(alpha))/beta, -imag(alpha)/beta)
	v = make([]complex128, n)
	v[0] = 1
	scale := 1 / (alpha - complex(beta, 0))
	for i := 1; i < n; i++ {
		v[i] = x[i] * scale
	}
	return v, tau, beta
}

func dlapy3(x, y, z float64) float64 {
	return math.Hypot(x, math.Hypot(y, z))
}

func applyHouseLeftComplex(v []complex128, tau complex128, a []complex128, lda, rowLo, colLo, colHi int) {
	if tau == 0 {
		return
	}
	for j := colLo; j < colHi; j++ {
		var dot complex128
		for i, vi := range v {
			dot += cconj(vi) * a[(rowLo+i)*lda+j]
		}
		dot *= tau
		for i, vi := range v {
			a[(rowLo+i)*lda+j] -= dot * vi
		}
	}
}

func applyHouseRightComplex(v []complex128, tau complex128, a []complex128, lda, rowLo, rowHi, colLo int) {
	if tau == 0 {
		return
	}
	for i := rowLo; i < rowHi; i++ {
		var dot complex128
		for j, vj := range v {
			dot += vj * a[i*lda+colLo+j]
		}
		dot *= tau
		for j, vj := range v {
			a[i*lda+colLo+j] -= dot * cconj(vj)
		}
	}
}

func cconj(c complex128) complex128 {
	return complex(real(c), -imag(c))
}

// ReduceComplex is the complex analogue of ReduceReal: it reduces the n×n
// complex matrix a to upper Hessenberg form by a unitary similarity,
// optionally accumulating the unitary factor into z.
func ReduceComplex(n int, a []complex128, lda int, z []complex128, ldz int, wantZ bool) {
	if n < 3 {
		return
	}
	x := make([]complex128, n)
	for col := 0; col < n-2; col++ {
		m := n - col - 1
		for i := 0; i < m; i++ {
			x[i] = a[(col+1+i)*lda+col]
		}
		v, tau, beta := houseVecComplex(x[:m])
		applyHouseLeftComplex(v, cconj(tau), a, lda, col+1, col+1, n)
		applyHouseRightComplex(v, tau, a, lda, 0, n, col+1)
		if wantZ {
			applyHouseRightComplex(v, tau, z, ldz, 0, n, col+1)
		}
		a[(col+1)*lda+col] = complex(beta, 0)
		for i := 1; i < m; i++ {
			a[(col+1+i)*lda+col] = 0
		}
	}
}
