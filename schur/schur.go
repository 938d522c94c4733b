// Package schur is the public orchestrator for the Schur decomposition
// engine: it balances (optionally), reduces to Hessenberg form, drives the
// appropriate schurlapack QR engine to convergence, and — on the real path —
// synthesizes complex eigenvalues from the quasi-triangular result's
// diagonal blocks. It is the one layer in this module that returns a Go
// error instead of panicking, turning a driver's "didn't converge" outcome
// into ErrIterationLimit (spec.md S7).
package schur

import (
	"math/cmplx"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/schurqr/schureig/hessenberg"
	"github.com/schurqr/schureig/schurlapack"
)

func (o Options) validate() error {
	if o.Permute {
		return errors.Wrap(ErrInvalidOption, "permute is not supported (see DESIGN.md Open Question (b))")
	}
	if o.ShiftMethod != Francis && o.ShiftMethod != Rayleigh {
		return errors.Wrap(ErrInvalidOption, "unrecognized shiftmethod")
	}
	return nil
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Tol <= 0 {
		o.Tol = d.Tol
	}
	return o
}

// resolveIterCaps fills MaxIter/MaxInner sentinels (<=0) with the n-scaled
// defaults of spec.md S4.2 (100n outer, 30n inner).
func (o Options) resolveIterCaps(n int) (maxIter, maxInner int) {
	maxIter, maxInner = o.MaxIter, o.MaxInner
	if maxIter <= 0 {
		maxIter = 100 * n
	}
	if maxInner <= 0 {
		maxInner = 30 * n
	}
	return maxIter, maxInner
}

// Schur computes the real Schur decomposition A = Z*T*Zᵀ of the n×n real
// matrix a: T is quasi-triangular (isolated real 2×2 blocks carry
// complex-conjugate eigenvalue pairs) and Z is orthogonal. w holds the n
// synthesized eigenvalues. If opts.WantZ is false, Z is returned nil.
func Schur(a *mat.Dense, opts Options) (t, z *mat.Dense, w []complex128, err error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, nil, nil, err
	}
	r, c := a.Dims()
	if r != c {
		return nil, nil, nil, ErrNonSquareInput
	}
	n := r
	tr := newTracer(opts.Debug)
	tr.stage("start-real")

	h := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			h[i*n+j] = a.At(i, j)
		}
	}

	var cscale, anrm float64
	var didScale bool
	if opts.Scale {
		didScale, cscale, anrm = hessenberg.Balance(n, h, n)
		_ = anrm
	}

	var zBuf []float64
	ldz := n
	if opts.WantZ {
		zBuf = make([]float64, n*n)
		for i := 0; i < n; i++ {
			zBuf[i*n+i] = 1
		}
	}

	hessenberg.ReduceReal(n, h, n, zBuf, ldz, opts.WantZ)

	wr := make([]float64, n)
	wi := make([]float64, n)
	var impl schurlapack.Driver = schurlapack.Implementation{}
	tr.stage("reduce-done-real")
	maxIter, _ := opts.resolveIterCaps(n)
	runErr := impl.Dlahqr(true, opts.WantZ, n, 0, n-1, h, n, wr, wi, zBuf, ldz, maxIter, opts.Tol, schurlapack.ShiftPolicy(opts.ShiftMethod), tr.hook())
	if runErr != nil {
		var nc *schurlapack.NotConverged
		if errors.As(runErr, &nc) {
			return nil, nil, nil, errors.Wrapf(ErrIterationLimit, "real driver stalled at iend=%d after %d iterations", nc.Iend, nc.Iters)
		}
		return nil, nil, nil, runErr
	}

	if didScale {
		hessenberg.Unscale(n, h, n, wr, wi, cscale)
	}

	t = mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			t.Set(i, j, h[i*n+j])
		}
	}
	w = make([]complex128, n)
	for i := 0; i < n; i++ {
		w[i] = complex(wr[i], wi[i])
	}
	if opts.WantZ {
		z = mat.NewDense(n, n, nil)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				z.Set(i, j, zBuf[i*n+j])
			}
		}
	}
	tr.stage("done-real")
	return t, z, w, nil
}

// SchurComplex computes the complex Schur decomposition A = Z*T*Zᴴ of the
// n×n complex matrix a: T is fully upper triangular and Z is unitary.
func SchurComplex(a *mat.CDense, opts Options) (t, z *mat.CDense, w []complex128, err error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, nil, nil, err
	}
	r, c := a.Dims()
	if r != c {
		return nil, nil, nil, ErrNonSquareInput
	}
	n := r
	tr := newTracer(opts.Debug)
	tr.stage("start-complex")

	h := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			h[i*n+j] = a.At(i, j)
		}
	}

	var cscale, anrm float64
	var didScale bool
	if opts.Scale {
		didScale, cscale, anrm = hessenberg.BalanceComplex(n, h, n)
		_ = anrm
	}

	var zBuf []complex128
	ldz := n
	if opts.WantZ {
		zBuf = make([]complex128, n*n)
		for i := 0; i < n; i++ {
			zBuf[i*n+i] = 1
		}
	}

	hessenberg.ReduceComplex(n, h, n, zBuf, ldz, opts.WantZ)

	w = make([]complex128, n)
	var impl schurlapack.Driver = schurlapack.Implementation{}
	tr.stage("reduce-done-complex")
	maxIter, maxInner := opts.resolveIterCaps(n)
	runErr := impl.Zlahqr(true, opts.WantZ, n, 0, n-1, h, n, w, zBuf, ldz, maxIter, maxInner, tr.hook())
	if runErr != nil {
		var nc *schurlapack.NotConverged
		if errors.As(runErr, &nc) {
			return nil, nil, nil, errors.Wrapf(ErrIterationLimit, "complex driver stalled at iend=%d after %d iterations", nc.Iend, nc.Iters)
		}
		return nil, nil, nil, runErr
	}

	if didScale {
		hessenberg.UnscaleComplex(n, h, n, w, cscale)
	}

	t = mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			t.Set(i, j, h[i*n+j])
		}
	}
	if opts.WantZ {
		z = mat.NewCDense(n, n, nil)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				z.Set(i, j, zBuf[i*n+j])
			}
		}
	}
	tr.stage("done-complex")
	return t, z, w, nil
}

// EigenValues computes only the eigenvalues of the real matrix a, skipping Z
// accumulation entirely (spec.md S6: "pass a sentinel instead of Z to the
// driver").
func EigenValues(a *mat.Dense, opts Options) ([]complex128, error) {
	opts.WantZ = false
	_, _, w, err := Schur(a, opts)
	return w, err
}

// EigenValuesComplex is EigenValues' complex-input counterpart.
func EigenValuesComplex(a *mat.CDense, opts Options) ([]complex128, error) {
	opts.WantZ = false
	_, _, w, err := SchurComplex(a, opts)
	return w, err
}

// EigenVectors computes the n right eigenvectors of the complex upper
// triangular factor t, optionally rotated into the original basis by the
// Schur vectors z (pass nil to receive the raw triangular-basis vectors).
func EigenVectors(t *mat.CDense, z *mat.CDense) (*mat.CDense, error) {
	r, c := t.Dims()
	if r != c {
		return nil, ErrNonSquareInput
	}
	n := r
	tbuf := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			tbuf[i*n+j] = t.At(i, j)
		}
	}
	var zbuf []complex128
	wantZ := z != nil
	if wantZ {
		zr, zc := z.Dims()
		if zr != n || zc != n {
			return nil, errors.New("schur: z dimensions do not match t")
		}
		zbuf = make([]complex128, n*n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				zbuf[i*n+j] = z.At(i, j)
			}
		}
	}

	impl := schurlapack.Implementation{}
	vbuf := impl.Ztrevc(n, tbuf, n, zbuf, n, wantZ)

	v := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v.Set(i, j, vbuf[i*n+j])
		}
	}
	return v, nil
}

// RealSchurToComplex converts a real quasi-triangular factor t (isolated 2×2
// blocks on the diagonal for complex-conjugate eigenpairs) and its real
// Schur-vector matrix z into a complex upper triangular factor and complex
// Schur vectors, so EigenVectors can also serve the real path. This extends
// spec.md S3's eigenvalue-synthesis rule (1×1 and 2×2 diagonal blocks) to the
// vectors themselves: a 2×2 block with eigenvalues x±iy diagonalizes under
// the similarity [[1,1],[−i,i]]/... expressed here directly as complex Givens
// rotations applied to both T and Z, so the returned T' is exactly upper
// triangular and Z' unitary with A = Z'·T'·Z'ᴴ still holding.
func RealSchurToComplex(t, z *mat.Dense) (*mat.CDense, *mat.CDense, error) {
	n, c := t.Dims()
	if n != c {
		return nil, nil, ErrNonSquareInput
	}
	wantZ := z != nil

	tc := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			tc[i*n+j] = complex(t.At(i, j), 0)
		}
	}
	var zc []complex128
	if wantZ {
		zc = make([]complex128, n*n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				zc[i*n+j] = complex(z.At(i, j), 0)
			}
		}
	}

	i := 0
	for i < n-1 {
		sub := tc[(i+1)*n+i]
		if sub == 0 {
			i++
			continue
		}
		// Unitarily triangularize the 2x2 block at (i,i). Any eigenvector v
		// of the block (for either root) becomes the first column of a
		// unitary U = [v | w] with w its orthogonal complement; since
		// Uᴴ*v = e1, the first column of Uᴴ*block*U is lambda1*e1, i.e. the
		// block is triangular in the new basis. This needs no assumption
		// that the block is already in any particular normalized form.
		a, b := tc[i*n+i], tc[i*n+i+1]
		d, c := tc[(i+1)*n+i+1], sub
		x := (a + d) / 2
		disc := x*x - (a*d - b*c)
		y := csqrt(disc)
		lambda1 := x + y

		var v0, v1 complex128
		if b != 0 {
			v0, v1 = b, (d-a)/2+y
		} else if c != 0 {
			v0, v1 = lambda1-d, c
		} else {
			v0, v1 = 1, 0
		}
		norm := csqrtReal(v0*conj(v0) + v1*conj(v1))
		v0, v1 = v0/complex(norm, 0), v1/complex(norm, 0)
		w0, w1 := -conj(v1), conj(v0)

		// U columns are (v0,v1) and (w0,w1).
		applyBlockSimilarity(tc, n, i, v0, v1, w0, w1)
		if wantZ {
			applyBlockRight(zc, n, i, v0, v1, w0, w1)
		}
		i += 2
	}

	tOut := mat.NewCDense(n, n, nil)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			tOut.Set(r, c, tc[r*n+c])
		}
	}
	var zOut *mat.CDense
	if wantZ {
		zOut = mat.NewCDense(n, n, nil)
		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				zOut.Set(r, c, zc[r*n+c])
			}
		}
	}
	return tOut, zOut, nil
}

// applyBlockSimilarity applies Uᴴ*Tblock*U to tc, where U = [(v0,v1) |
// (w0,w1)] is the 2x2 unitary built in RealSchurToComplex: Uᴴ from the left
// to rows (i,i+1) over all columns, then U from the right to columns
// (i,i+1) over all rows, matching the rotation application pattern the QR
// drivers use elsewhere in this module.
func applyBlockSimilarity(tc []complex128, n, i int, v0, v1, w0, w1 complex128) {
	gv0, gv1 := conj(v0), conj(v1)
	gw0, gw1 := conj(w0), conj(w1)
	for j := 0; j < n; j++ {
		a := tc[i*n+j]
		b := tc[(i+1)*n+j]
		tc[i*n+j] = gv0*a + gv1*b
		tc[(i+1)*n+j] = gw0*a + gw1*b
	}
	for r := 0; r < n; r++ {
		a := tc[r*n+i]
		b := tc[r*n+i+1]
		tc[r*n+i] = a*v0 + b*v1
		tc[r*n+i+1] = a*w0 + b*w1
	}
}

// applyBlockRight right-multiplies zc's columns (i,i+1) by U, keeping
// Z*T*Zᴴ invariant under the similarity applyBlockSimilarity performs on T.
func applyBlockRight(zc []complex128, n, i int, v0, v1, w0, w1 complex128) {
	for r := 0; r < n; r++ {
		a := zc[r*n+i]
		b := zc[r*n+i+1]
		zc[r*n+i] = a*v0 + b*v1
		zc[r*n+i+1] = a*w0 + b*w1
	}
}

func conj(c complex128) complex128 {
	return complex(real(c), -imag(c))
}

// csqrt returns the principal complex square root of disc (cmplx.Sqrt). disc
// is typed complex128 so the same expression works whether the 2x2 block's
// discriminant is negative, giving the complex-conjugate pair, or
// non-negative, giving two reals; RealSchurToComplex passes every block with a
// nonzero subdiagonal entry, so both cases occur.
func csqrt(disc complex128) complex128 {
	return cmplx.Sqrt(disc)
}

func csqrtReal(v complex128) float64 {
	return real(cmplx.Sqrt(v))
}
