package schurlapack

import (
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
)

// Ztrevc computes the n right eigenvectors of the n×n complex upper
// triangular matrix t (row-major, stride ldt), following spec.md S4.4. If z
// is non-nil (the accumulated Schur vectors, stride ldz), each eigenvector
// is rotated back into the original basis by Z[:,0:k]*v + v[k]*Z[:,k];
// otherwise the raw triangular-basis vector is returned, zero-padded below
// row k.
//
// t's diagonal is perturbed transiently while solving each column and is
// always restored to its original values before Ztrevc returns, including
// on early return paths.
func (Implementation) Ztrevc(n int, t []complex128, ldt int, z []complex128, ldz int, wantZ bool) []complex128 {
	switch {
	case n < 0:
		panic(badN)
	case ldt < max(1, n):
		panic(badLd)
	case len(t) < (n-1)*ldt+n:
		panic(shortH)
	case wantZ && ldz < max(1, n):
		panic(badLd)
	case wantZ && len(z) < (n-1)*ldz+n:
		panic(shortZ)
	}
	v := make([]complex128, n*n)
	if n == 0 {
		return v
	}

	// Column infinity-style norms, computed once: tnorms[j] = sum_{i<j} |T[i,j]|.
	tnorms := make([]float64, n)
	for j := 1; j < n; j++ {
		var sum float64
		for i := 0; i < j; i++ {
			e := t[i*ldt+j]
			sum += Abs1(real(e), imag(e))
		}
		tnorms[j] = sum
	}

	col := make([]complex128, n)
	saved := make([]complex128, n)
	const overflowGuard = 1 / epsR

	for k := n - 1; k >= 0; k-- {
		lambda := t[k*ldt+k]
		smin := math.Max(epsR*Abs1(real(lambda), imag(lambda)), safeR*float64(n)/epsR)
		if smin == 0 {
			smin = safeR
		}

		for j := range col[:k+1] {
			col[j] = 0
		}
		col[k] = 1
		for j := 0; j < k; j++ {
			col[j] = -t[j*ldt+k]
		}

		for j := 0; j < k; j++ {
			saved[j] = t[j*ldt+j]
			d := t[j*ldt+j] - lambda
			if Abs1(real(d), imag(d)) < smin {
				d = complex(smin, 0)
			}
			t[j*ldt+j] = d
		}

		for j := k - 1; j >= 0; j-- {
			var sum complex128
			for i := j + 1; i < k; i++ {
				sum += t[j*ldt+i] * col[i]
			}
			rhs := col[j] - sum
			pivot := t[j*ldt+j]
			bound := overflowGuard / math.Max(1, tnorms[j])
			if mag := Abs1(real(rhs), imag(rhs)); mag > bound {
				factor := complex(bound/mag, 0)
				for i := j; i <= k; i++ {
					col[i] *= factor
				}
				rhs *= factor
			}
			col[j] = rhs / pivot
		}

		for j := 0; j < k; j++ {
			t[j*ldt+j] = saved[j]
		}

		if wantZ {
			// v[:,k] = Z[:,0:k+1] * col[0:k+1], the rotation of the
			// triangular-basis vector back into the original basis
			// (spec.md S4.4 step 6). A plain Gemv over the leading k+1
			// columns of Z, mirroring the teacher's own use of cblas128 for
			// exactly this kind of accumulation (e.g. Ztrmv in ztrti2.go).
			out := make([]complex128, n)
			cblas128.Implementation().Zgemv(blas.NoTrans, n, k+1, 1, z, ldz, col[:k+1], 1, 0, out, 1)
			for r := 0; r < n; r++ {
				v[r*n+k] = out[r]
			}
		} else {
			for j := 0; j <= k; j++ {
				v[j*n+k] = col[j]
			}
		}

		var norm float64
		for r := 0; r < n; r++ {
			e := v[r*n+k]
			if m := Abs1(real(e), imag(e)); m > norm {
				norm = m
			}
		}
		if norm > 0 {
			inv := complex(1/norm, 0)
			for r := 0; r < n; r++ {
				v[r*n+k] *= inv
			}
		}
	}
	return v
}
