package schur

// ShiftMethod selects the shift strategy used by the real driver
// (schurlapack.Dlahqr). The complex driver (schurlapack.Zlahqr) always uses
// the Wilkinson/exceptional-shift policy of spec.md S4.2 and ignores this
// option.
type ShiftMethod int

const (
	// Francis applies the implicit double shift (spec.md S4.3), the default
	// and fastest-converging choice for real input.
	Francis ShiftMethod = iota
	// Rayleigh always shifts by the trailing diagonal entry. Useful mainly
	// for comparing convergence behavior against the double-shift path.
	Rayleigh
)

// Options configures a Schur factorization. The zero value is accepted but
// turns off both WantZ and Scale; use DefaultOptions to obtain a populated
// Options and override fields from there.
type Options struct {
	// WantZ requests accumulation of the orthogonal/unitary Schur vectors.
	// Set to false to save the O(n^2) bookkeeping when only eigenvalues are
	// needed.
	WantZ bool

	// Scale requests the hessenberg.Balance pre-pass.
	Scale bool

	// Permute is accepted for forward compatibility with spec.md S6's
	// "Scaler" collaborator, which couples permutation-based isolation with
	// scaling in the general (A,B)-pencil case. Schur's single-matrix path
	// does not perform permutation (Open Question (b) in DESIGN.md), so the
	// only accepted value is false; any other value is rejected with
	// ErrInvalidOption.
	Permute bool

	// MaxIter bounds the total number of outer iterations of the driver,
	// counted over all deflations.
	// Zero or negative selects the package default of 100*n (spec.md S4.2,
	// S4.3), resolved once n is known.
	MaxIter int

	// MaxInner bounds the number of sweeps Zlahqr spends between successive
	// single-element deflations before giving up (spec.md S4.2). Zero or
	// negative selects the package default of 30*n.
	MaxInner int

	// Tol is the deflation tolerance multiplier used by Dlahqr's simple
	// deflation test (spec.md S4.3). Zero selects the package default.
	Tol float64

	// ShiftMethod selects Dlahqr's shift strategy.
	ShiftMethod ShiftMethod

	// Debug enables zerolog tracing of the QR iteration's progress.
	Debug bool
}

// DefaultOptions returns the Options used when a caller does not need to
// override anything: Schur vectors accumulated, balancing on, Francis
// double shift, n-scaled iteration budgets (spec.md S4.2: 100n outer, 30n
// inner), no tracing. MaxIter and MaxInner are left at their sentinel zero
// here; Schur/SchurComplex resolve them against n at call time.
func DefaultOptions() Options {
	return Options{
		WantZ:       true,
		Scale:       true,
		Permute:     false,
		MaxIter:     0,
		MaxInner:    0,
		Tol:         0,
		ShiftMethod: Francis,
		Debug:       false,
	}
}
