// Package schurlapack implements the non-symmetric QR-iteration engine that
// drives an upper Hessenberg matrix to (quasi-)triangular Schur form, and the
// triangular right-eigenvector back-substitution that follows it.
//
// The package is organized the way the teacher's own lapack/gonum package is:
// a stateless Implementation type whose methods operate directly on flat
// row-major slices plus a leading dimension (stride), mirroring LAPACK
// argument conventions. Driver names the method pair Implementation exposes;
// the two methods stay structurally different rather than sharing a generic
// signature, because Dlahqr's quasi-triangular real path (2x2 blocks, a
// wr/wi pair) has no natural expression in common with Zlahqr's pure
// single-shift complex path (one w slice, always fully triangular).
package schurlapack

// Driver groups the two QR-iteration entry points Implementation provides.
// Callers that only need "run whichever driver matches the caller's scalar
// type" can depend on Driver instead of the concrete Implementation type.
type Driver interface {
	Dlahqr(wantT, wantZ bool, n, ilo, ihi int, h []float64, ldh int, wr, wi []float64, z []float64, ldz int, maxiter int, tol float64, policy ShiftPolicy, trace func(kind string, istart, iend, iter int)) error
	Zlahqr(wantT, wantZ bool, n, ilo, ihi int, h []complex128, ldh int, w []complex128, z []complex128, ldz int, maxiter, maxinner int, trace func(kind string, istart, iend, iter int)) error
}
