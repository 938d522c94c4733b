package schurlapack

import "math"

// ShiftPolicy selects the real-variant shift strategy of spec.md S4.3.
type ShiftPolicy int

const (
	// FrancisShift applies the Francis implicit double shift, with a
	// Wilkinson-like exceptional single shift every 10th outer iteration.
	FrancisShift ShiftPolicy = iota
	// RayleighShift always applies a single shift equal to H[iend,iend].
	RayleighShift
)

// Dlahqr drives the real n×n upper Hessenberg matrix h (row-major, stride
// ldh, active window [ilo,ihi]) to quasi-triangular real Schur form by
// Francis double-shift (or Rayleigh single-shift) implicit QR, optionally
// accumulating rotations into the orthogonal matrix z (stride ldz).
//
// wr and wi receive the synthesized eigenvalues (S4.3, "Eigenvalue
// synthesis"): a converged 1x1 block contributes one real eigenvalue, a
// converged 2x2 block contributes a complex-conjugate pair (or two reals if
// the discriminant came out non-negative due to roundoff at the boundary).
// trace, if non-nil, is called with the kind tag "deflate" once per outer
// iteration, and with "exceptional" whenever an exceptional shift is used,
// together with the current window/iteration counters; it is a runtime hook
// in place of the source's printf tracing. Pass nil to skip tracing
// entirely, which costs nothing beyond the nil check.
func (Implementation) Dlahqr(wantT, wantZ bool, n, ilo, ihi int, h []float64, ldh int, wr, wi []float64, z []float64, ldz int, maxiter int, tol float64, policy ShiftPolicy, trace func(kind string, istart, iend, iter int)) error {
	switch {
	case n < 0:
		panic(badN)
	case ldh < max(1, n):
		panic(badLd)
	case ilo < 0 || ihi >= n || ihi < ilo-1:
		panic(badWindow)
	case len(h) < (n-1)*ldh+n:
		panic(shortH)
	case len(wr) < n || len(wi) < n:
		panic(shortW)
	case wantZ && ldz < max(1, n):
		panic(badLd)
	case wantZ && len(z) < (n-1)*ldz+n:
		panic(shortZ)
	case maxiter <= 0:
		panic(badMaxIter)
	case tol <= 0:
		tol = epsR
	}
	if ihi < ilo {
		return nil
	}

	iend := ihi
	its := 0
	for jiter := 0; jiter < maxiter; jiter++ {
		if iend <= ilo {
			break
		}

		// Step 1: deflation scan.
		istart := ilo
		for m := iend - 1; m >= ilo; m-- {
			if math.Abs(h[(m+1)*ldh+m]) < tol*(math.Abs(h[m*ldh+m])+math.Abs(h[(m+1)*ldh+m+1])) {
				istart = m + 1
				break
			}
			if m > ilo && math.Abs(h[m*ldh+m-1]) < tol*(math.Abs(h[(m-1)*ldh+m-1])+math.Abs(h[m*ldh+m])) {
				istart = m
				break
			}
		}
		if istart > ilo {
			h[istart*ldh+istart-1] = 0
		}
		if trace != nil {
			trace("deflate", istart, iend, jiter)
		}

		// Step 2: block deflation.
		if istart >= iend {
			wr[iend], wi[iend] = h[iend*ldh+iend], 0
			iend--
			its = 0
			continue
		}
		if istart+1 == iend {
			synthesize2x2(h, ldh, istart, wr, wi)
			iend -= 2
			its = 0
			continue
		}

		its++

		// Step 3: shift sweep.
		hmm, hm1m1 := h[iend*ldh+iend], h[(iend-1)*ldh+(iend-1)]
		t := hmm + hm1m1
		d := hmm*hm1m1 - h[iend*ldh+iend-1]*h[(iend-1)*ldh+iend]
		if t == 0 {
			t = epsR
		}

		if policy == RayleighShift {
			singleShiftSweep(h, ldh, z, ldz, wantZ, istart, iend, n, hmm)
			continue
		}

		if its%10 == 0 {
			if trace != nil {
				trace("exceptional", istart, iend, its)
			}
			disc := t*t - 4*d
			var sigma float64
			if disc >= 0 {
				root := math.Sqrt(disc)
				if math.Abs(t/2+root/2-hmm) < math.Abs(t/2-root/2-hmm) {
					sigma = t/2 + root/2
				} else {
					sigma = t/2 - root/2
				}
			} else {
				sigma = t / 2
			}
			singleShiftSweep(h, ldh, z, ldz, wantZ, istart, iend, n, sigma)
			continue
		}

		doubleShiftSweep(h, ldh, z, ldz, wantZ, istart, iend, n, t, d)
	}

	if iend < ilo {
		return nil
	}
	if iend == ilo {
		wr[ilo], wi[ilo] = h[ilo*ldh+ilo], 0
		return nil
	}
	return &NotConverged{Iend: iend, Iters: maxiter}
}

// synthesize2x2 fills wr/wi[k], wr/wi[k+1] from the trailing 2x2 block
// H[k:k+2,k:k+2], following spec.md S3's eigenvalue-synthesis rule: trace t,
// determinant d, roots t/2 +/- sqrt(t^2/4 - d), complex iff t^2 < 4d.
func synthesize2x2(h []float64, ldh, k int, wr, wi []float64) {
	a, b, c, d := h[k*ldh+k], h[k*ldh+k+1], h[(k+1)*ldh+k], h[(k+1)*ldh+k+1]
	x := (a + d) / 2
	det := a*d - b*c
	disc := x*x - det
	if disc >= 0 {
		root := math.Sqrt(disc)
		wr[k], wi[k] = x+root, 0
		wr[k+1], wi[k+1] = x-root, 0
		return
	}
	root := math.Sqrt(-disc)
	wr[k], wi[k] = x, root
	wr[k+1], wi[k+1] = x, -root
}

// singleShiftSweep performs one implicit-shift QR sweep on H[istart:iend+1]
// using the real shift sigma, carrying the transient subdiagonal entry
// forward as the bulge is chased row by row (spec.md S4.3, "Single-shift
// chase (real)").
func singleShiftSweep(h []float64, ldh int, z []float64, ldz int, wantZ bool, istart, iend, n int, sigma float64) {
	c, s, _ := Dlartg(h[istart*ldh+istart]-sigma, h[(istart+1)*ldh+istart])
	ApplyRotationLeft(c, s, h, ldh, istart, istart, n)
	ApplyRotationRight(c, s, h, ldh, 0, min(istart+2, iend)+1, istart)
	if wantZ {
		ApplyRotationRight(c, s, z, ldz, 0, n, istart)
	}
	for i := istart; i <= iend-2; i++ {
		c, s, r := Dlartg(h[(i+1)*ldh+i], h[(i+2)*ldh+i])
		h[(i+1)*ldh+i] = r
		h[(i+2)*ldh+i] = 0
		ApplyRotationLeft(c, s, h, ldh, i+1, i+1, n)
		ApplyRotationRight(c, s, h, ldh, 0, min(i+3, iend)+1, i+1)
		if wantZ {
			ApplyRotationRight(c, s, z, ldz, 0, n, i+1)
		}
	}
}

// house3 builds a 3-element Householder vector (v0=1,v1,v2) and scalar tau
// such that (I - tau*v*vᵀ)*(x0,x1,x2)ᵀ = (beta,0,0)ᵀ, beta returned as the
// first result. Used by doubleShiftSweep for the Francis double-shift
// bulge-creation/chase steps, mirroring the teacher's own 3-wide Householder
// sweep in dhgeqz.go (the TwoHundred/290 loop, there applied to a matrix
// pencil rather than a single matrix).
func house3(x0, x1, x2 float64) (v1, v2, tau, beta float64) {
	anorm := Dlapy3(x0, x1, x2)
	if anorm == 0 {
		return 0, 0, 0, x0
	}
	beta = -math.Copysign(anorm, x0)
	v1 = x1 / (x0 - beta)
	v2 = x2 / (x0 - beta)
	tau = (beta - x0) / beta
	return v1, v2, tau, beta
}

// applyHouse3Left applies (I - tau*v*vᵀ), v=(1,v1,v2), from the left to rows
// (row,row+1,row+2) over columns [colLo,colHi).
func applyHouse3Left(v1, v2, tau float64, h []float64, ldh, row, colLo, colHi int) {
	for j := colLo; j < colHi; j++ {
		a := h[row*ldh+j]
		b := h[(row+1)*ldh+j]
		c := h[(row+2)*ldh+j]
		dot := a + v1*b + v2*c
		h[row*ldh+j] = a - tau*dot
		h[(row+1)*ldh+j] = b - tau*dot*v1
		h[(row+2)*ldh+j] = c - tau*dot*v2
	}
}

// applyHouse3Right applies (I - tau*v*vᵀ) from the right to columns
// (col,col+1,col+2) over rows [rowLo,rowHi).
func applyHouse3Right(v1, v2, tau float64, h []float64, ldh, rowLo, rowHi, col int) {
	for r := rowLo; r < rowHi; r++ {
		a := h[r*ldh+col]
		b := h[r*ldh+col+1]
		c := h[r*ldh+col+2]
		dot := a + v1*b + v2*c
		h[r*ldh+col] = a - tau*dot
		h[r*ldh+col+1] = b - tau*dot*v1
		h[r*ldh+col+2] = c - tau*dot*v2
	}
}

// doubleShiftSweep performs one Francis double-shift implicit QR sweep on
// H[istart:iend+1] using shifts parameterized by trace t and determinant d
// of the trailing 2x2 block (spec.md S4.3, "Double-shift chase (real)").
// The bulge is introduced as a 3-row Householder reflector and chased with
// further 3-row reflectors, finishing with a single Givens rotation at the
// last two rows where only a 2-wide bulge remains.
func doubleShiftSweep(h []float64, ldh int, z []float64, ldz int, wantZ bool, istart, iend, n int, t, d float64) {
	h00, h01, h10, h11 := h[istart*ldh+istart], h[istart*ldh+istart+1], h[(istart+1)*ldh+istart], h[(istart+1)*ldh+istart+1]
	x := h00*h00 + h01*h10 - t*h00 + d
	y := h10 * (h00 + h11 - t)
	var z0 float64
	if istart+2 <= iend {
		z0 = h10 * h[(istart+2)*ldh+istart+1]
	}

	for k := istart; k <= iend-2; k++ {
		if k > istart {
			x = h[k*ldh+k-1]
			y = h[(k+1)*ldh+k-1]
			if k+2 <= iend {
				z0 = h[(k+2)*ldh+k-1]
			} else {
				z0 = 0
			}
		}
		v1, v2, tau, beta := house3(x, y, z0)
		if k > istart {
			h[k*ldh+k-1] = beta
			h[(k+1)*ldh+k-1] = 0
			if k+2 <= iend {
				h[(k+2)*ldh+k-1] = 0
			}
		}
		// Column k-1 (if any) was just hand-set above; the reflector only
		// needs applying from column k onward.
		applyHouse3Left(v1, v2, tau, h, ldh, k, k, n)
		rowHi := min(k+3, iend) + 1
		applyHouse3Right(v1, v2, tau, h, ldh, 0, rowHi, k)
		if wantZ {
			applyHouse3Right(v1, v2, tau, z, ldz, 0, n, k)
		}
	}

	// Final two rows: only a 2-wide bulge remains, clear it with a Givens
	// rotation rather than a (degenerate) 3-wide Householder reflector.
	k := iend - 1
	c, s, r := Dlartg(h[k*ldh+k-1], h[(k+1)*ldh+k-1])
	h[k*ldh+k-1] = r
	h[(k+1)*ldh+k-1] = 0
	ApplyRotationLeft(c, s, h, ldh, k, k, n)
	ApplyRotationRight(c, s, h, ldh, 0, iend+1, k)
	if wantZ {
		ApplyRotationRight(c, s, z, ldz, 0, n, k)
	}
}
