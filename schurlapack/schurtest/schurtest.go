// Package schurtest provides shared random-matrix generators and property
// checks for testing the schurlapack drivers, mirroring the split between
// the teacher's lapack/gonum package tests and its lapack/testlapack helper
// package.
package schurtest

import (
	"math"
	"math/cmplx"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/floats"
)

// RandomHessenberg fills an n×n real matrix (row-major, stride n) with
// random entries in [-1,1] and zeroes everything below the first
// subdiagonal, producing a valid unreduced (with high probability) upper
// Hessenberg matrix.
func RandomHessenberg(rnd *rand.Rand, n int) []float64 {
	h := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j < i-1 {
				continue
			}
			h[i*n+j] = 2*rnd.Float64() - 1
		}
	}
	return h
}

// RandomHessenbergComplex is RandomHessenberg's complex analogue.
func RandomHessenbergComplex(rnd *rand.Rand, n int) []complex128 {
	h := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j < i-1 {
				continue
			}
			h[i*n+j] = complex(2*rnd.Float64()-1, 2*rnd.Float64()-1)
		}
	}
	return h
}

// Identity returns the n×n real identity matrix, row-major stride n.
func Identity(n int) []float64 {
	z := make([]float64, n*n)
	for i := 0; i < n; i++ {
		z[i*n+i] = 1
	}
	return z
}

// IdentityComplex returns the n×n complex identity matrix.
func IdentityComplex(n int) []complex128 {
	z := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		z[i*n+i] = 1
	}
	return z
}

// FrobeniusDiffComplex returns ||a-b||_F for two n×n row-major complex
// matrices of stride n.
func FrobeniusDiffComplex(a, b []complex128, n int) float64 {
	diff := make([]complex128, n*n)
	cmplxs.SubTo(diff, a[:n*n], b[:n*n])
	mags := make([]float64, n*n)
	cmplxs.Abs(mags, diff)
	return floats.Norm(mags, 2)
}

// FrobeniusDiff returns ||a-b||_F for two n×n row-major real matrices of
// stride n.
func FrobeniusDiff(a, b []float64, n int) float64 {
	diff := make([]float64, n*n)
	floats.SubTo(diff, a[:n*n], b[:n*n])
	return floats.Norm(diff, 2)
}

// MatMulComplex computes c = a*b for n×n row-major complex matrices.
func MatMulComplex(a, b []complex128, n int) []complex128 {
	c := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			aik := a[i*n+k]
			if aik == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				c[i*n+j] += aik * b[k*n+j]
			}
		}
	}
	return c
}

// MatMul computes c = a*b for n×n row-major real matrices.
func MatMul(a, b []float64, n int) []float64 {
	c := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			aik := a[i*n+k]
			if aik == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				c[i*n+j] += aik * b[k*n+j]
			}
		}
	}
	return c
}

// ConjTranspose returns Aᴴ for an n×n row-major complex matrix.
func ConjTranspose(a []complex128, n int) []complex128 {
	b := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			b[j*n+i] = cmplx.Conj(a[i*n+j])
		}
	}
	return b
}

// Transpose returns Aᵀ for an n×n row-major real matrix.
func Transpose(a []float64, n int) []float64 {
	b := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			b[j*n+i] = a[i*n+j]
		}
	}
	return b
}

// CheckUnitary fails t if zᴴ*z deviates from the identity by more than tol
// in Frobenius norm.
func CheckUnitary(t *testing.T, z []complex128, n int, tol float64) {
	t.Helper()
	prod := MatMulComplex(ConjTranspose(z, n), z, n)
	id := IdentityComplex(n)
	if d := FrobeniusDiffComplex(prod, id, n); d > tol {
		t.Errorf("Zᴴ*Z deviates from I by %v (tol %v)", d, tol)
	}
}

// CheckOrthogonal fails t if zᵀ*z deviates from the identity by more than
// tol in Frobenius norm.
func CheckOrthogonal(t *testing.T, z []float64, n int, tol float64) {
	t.Helper()
	prod := MatMul(Transpose(z, n), z, n)
	id := Identity(n)
	if d := FrobeniusDiff(prod, id, n); d > tol {
		t.Errorf("Zᵀ*Z deviates from I by %v (tol %v)", d, tol)
	}
}

// CheckSimilarityComplex fails t if z*t*zᴴ deviates from orig by more than
// tol in Frobenius norm.
func CheckSimilarityComplex(t *testing.T, orig, tfac, z []complex128, n int, tol float64) {
	t.Helper()
	recon := MatMulComplex(MatMulComplex(z, tfac, n), ConjTranspose(z, n), n)
	if d := FrobeniusDiffComplex(recon, orig, n); d > tol {
		t.Errorf("Z*T*Zᴴ deviates from A by %v (tol %v)", d, tol)
	}
}

// CheckSimilarity fails t if z*t*zᵀ deviates from orig by more than tol in
// Frobenius norm.
func CheckSimilarity(t *testing.T, orig, tfac, z []float64, n int, tol float64) {
	t.Helper()
	recon := MatMul(MatMul(z, tfac, n), Transpose(z, n), n)
	if d := FrobeniusDiff(recon, orig, n); d > tol {
		t.Errorf("Z*T*Zᵀ deviates from A by %v (tol %v)", d, tol)
	}
}

// CheckUpperTriangular fails t if any strictly-lower entry of the n×n
// row-major complex matrix tfac exceeds tol in magnitude.
func CheckUpperTriangular(t *testing.T, tfac []complex128, n int, tol float64) {
	t.Helper()
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			if m := cmplx.Abs(tfac[i*n+j]); m > tol {
				t.Errorf("T[%d,%d]=%v exceeds tolerance %v for upper-triangular shape", i, j, tfac[i*n+j], tol)
			}
		}
	}
}

// CheckQuasiTriangular fails t if any entry more than one below the
// diagonal of the n×n row-major real matrix tfac exceeds tol in magnitude.
func CheckQuasiTriangular(t *testing.T, tfac []float64, n int, tol float64) {
	t.Helper()
	for i := 2; i < n; i++ {
		for j := 0; j < i-1; j++ {
			if m := math.Abs(tfac[i*n+j]); m > tol {
				t.Errorf("T[%d,%d]=%v exceeds tolerance %v for quasi-triangular shape", i, j, tfac[i*n+j], tol)
			}
		}
	}
}
