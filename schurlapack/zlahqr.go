package schurlapack

import (
	"math"
	"math/cmplx"
)

// Implementation provides the CORE QR-iteration drivers and the triangular
// eigenvector solver. It carries no state; all methods operate on the
// caller-supplied slices, mirroring the teacher's own lapack/gonum
// Implementation type.
type Implementation struct{}

// Zlahqr drives the complex n×n upper Hessenberg matrix H (stored row-major
// in h with stride ldh, active in the window [ilo,ihi]) to upper triangular
// form by single-shift implicit QR, optionally accumulating the rotations
// into the n×n unitary matrix z (stride ldz). If wantZ is false the
// accumulation step is skipped entirely and z is not accessed (the
// "Z = nothing" sentinel of spec.md S9).
//
// On successful return the error is nil, h's window is upper triangular, and
// w[ilo:ihi+1] holds its diagonal. If the window is not fully deflated within
// maxiter outer iterations, or more than maxinner iterations pass between two
// deflations, Zlahqr returns a *NotConverged describing how far the window
// had shrunk.
// trace, if non-nil, is invoked once per outer iteration; see Dlahqr's trace
// parameter for the contract.
func (Implementation) Zlahqr(wantT, wantZ bool, n, ilo, ihi int, h []complex128, ldh int, w []complex128, z []complex128, ldz int, maxiter, maxinner int, trace func(kind string, istart, iend, iter int)) error {
	switch {
	case n < 0:
		panic(badN)
	case ldh < max(1, n):
		panic(badLd)
	case ilo < 0 || ihi >= n || ihi < ilo-1:
		panic(badWindow)
	case len(h) < (n-1)*ldh+n:
		panic(shortH)
	case len(w) < n:
		panic(shortW)
	case wantZ && ldz < max(1, n):
		panic(badLd)
	case wantZ && len(z) < (n-1)*ldz+n:
		panic(shortZ)
	case maxiter <= 0:
		panic(badMaxIter)
	case maxinner <= 0:
		panic(badMaxInner)
	}
	if ihi < ilo {
		return nil
	}

	const dat1 = 0.75 // exceptional-shift damping factor, S4.2 step 4.

	smallnum := safeR * (float64(n) / epsR)

	iend := ihi
	its := 0
	for jiter := 0; jiter < maxiter; jiter++ {
		if iend < ilo {
			return nil
		}

		// Step 1: deflation scan.
		istart := ilo
		for m := iend - 1; m >= ilo; m-- {
			sub := h[(m+1)*ldh+m]
			if Abs1(real(sub), imag(sub)) <= smallnum {
				istart = m + 1
				break
			}
			tst := Abs1(real(h[m*ldh+m]), imag(h[m*ldh+m])) +
				Abs1(real(h[(m+1)*ldh+m+1]), imag(h[(m+1)*ldh+m+1]))
			if tst == 0 {
				if m > ilo {
					tst += math.Abs(real(h[m*ldh+m-1]))
				}
				if m+2 <= ihi {
					tst += math.Abs(real(h[(m+2)*ldh+m+1]))
				}
			}
			if math.Abs(real(sub)) <= epsR*tst {
				// Ahues-Tisseur refined deflation test: compare the
				// subdiagonal entry against the geometric mean of the
				// neighbouring off-diagonal scales rather than against the
				// diagonal entries alone.
				ab := math.Max(Abs1(real(sub), imag(sub)), Abs1(real(h[m*ldh+m+1]), imag(h[m*ldh+m+1])))
				ba := math.Min(Abs1(real(sub), imag(sub)), Abs1(real(h[m*ldh+m+1]), imag(h[m*ldh+m+1])))
				aa := math.Max(Abs1(real(h[(m+1)*ldh+m+1]), imag(h[(m+1)*ldh+m+1])),
					Abs1(real(h[m*ldh+m]-h[(m+1)*ldh+m+1]), imag(h[m*ldh+m]-h[(m+1)*ldh+m+1])))
				bb := math.Min(Abs1(real(h[(m+1)*ldh+m+1]), imag(h[(m+1)*ldh+m+1])),
					Abs1(real(h[m*ldh+m]-h[(m+1)*ldh+m+1]), imag(h[m*ldh+m]-h[(m+1)*ldh+m+1])))
				s := aa + ab
				if ba*(ab/s) <= math.Max(smallnum, epsR*(bb*(aa/s))) {
					istart = m + 1
					break
				}
			}
		}

		// Step 2: cleanup.
		if istart > ilo {
			h[istart*ldh+istart-1] = 0
		}
		if trace != nil {
			trace("deflate", istart, iend, jiter)
		}

		// Step 3: single-element deflation.
		if istart >= iend {
			w[iend] = h[iend*ldh+iend]
			iend--
			its = 0
			continue
		}

		its++
		if its > maxinner {
			return &NotConverged{Iend: iend, Iters: jiter}
		}

		// Step 4: shift selection.
		var shift complex128
		switch {
		case its%30 == 10:
			if trace != nil {
				trace("exceptional", istart, iend, its)
			}
			shift = h[istart*ldh+istart] + complex(dat1*math.Abs(real(h[(istart+1)*ldh+istart])), 0)
		case its%30 == 20:
			if trace != nil {
				trace("exceptional", istart, iend, its)
			}
			shift = h[iend*ldh+iend] + complex(dat1*math.Abs(real(h[iend*ldh+iend-1])), 0)
		default:
			shift = wilkinsonShiftComplex(h, ldh, iend)
		}

		// Step 5: locate the bulge start row.
		kstart := istart
		h11s := h[istart*ldh+istart] - shift
		for m := iend - 1; m > istart; m-- {
			h11 := h[m*ldh+m] - shift
			h21 := h[(m+1)*ldh+m]
			s := Abs1(real(h11), imag(h11)) + Abs1(real(h21), imag(h21))
			h11 /= complex(s, 0)
			h21 /= complex(s, 0)
			lhs := math.Abs(real(h[m*ldh+m-1])) * Abs1(real(h21), imag(h21))
			rhs := epsR * Abs1(real(h11), imag(h11)) *
				(Abs1(real(h[m*ldh+m]), imag(h[m*ldh+m])) + Abs1(real(h[(m+1)*ldh+m+1]), imag(h[(m+1)*ldh+m+1])))
			if lhs <= rhs {
				kstart = m
				h11s = h[m*ldh+m] - shift
				break
			}
		}

		c, s, _ := Zlartg(h11s, h[(kstart+1)*ldh+kstart])
		ApplyZRotationLeft(c, s, h, ldh, kstart, kstart, n)
		rhi := min(kstart+2, iend)
		ApplyZRotationRight(c, s, h, ldh, 0, rhi+1, kstart)
		if wantZ {
			ApplyZRotationRight(c, s, z, ldz, 0, n, kstart)
		}

		for i := kstart; i <= iend-2; i++ {
			c, s, r := Zlartg(h[(i+1)*ldh+i], h[(i+2)*ldh+i])
			h[(i+1)*ldh+i] = r
			h[(i+2)*ldh+i] = 0
			ApplyZRotationLeft(c, s, h, ldh, i+1, i+1, n)
			rhi := min(i+3, iend)
			ApplyZRotationRight(c, s, h, ldh, 0, rhi+1, i+1)
			if wantZ {
				ApplyZRotationRight(c, s, z, ldz, 0, n, i+1)
			}
		}
	}
	return &NotConverged{Iend: iend, Iters: maxiter}
}

// wilkinsonShiftComplex picks the eigenvalue of the trailing 2x2 block of h
// nearer to h[iend,iend], using the stable sign-aware formulation of S4.2
// step 4 to avoid cancellation when the two roots are close.
func wilkinsonShiftComplex(h []complex128, ldh, iend int) complex128 {
	a := h[(iend-1)*ldh+iend-1]
	b := h[(iend-1)*ldh+iend]
	c := h[iend*ldh+iend-1]
	d := h[iend*ldh+iend]
	u := cmplx.Sqrt(b) * cmplx.Sqrt(c)
	if u == 0 {
		return d
	}
	half := complex(0.5, 0)
	s := half * (a - d)
	disc := cmplx.Sqrt(s*s + u*u)
	if real(s)*real(disc)+imag(s)*imag(disc) < 0 {
		disc = -disc
	}
	denom := s + disc
	if denom == 0 {
		return d
	}
	return d - u*u/denom
}
