package schur

import "github.com/pkg/errors"

// Sentinel errors for the three error kinds of spec.md S7. Callers should
// compare with errors.Is; wrapped context (iteration counts, window bounds)
// is added with errors.Wrapf at the point of return.
var (
	// ErrNonSquareInput is returned before any work begins if the input
	// matrix is not square.
	ErrNonSquareInput = errors.New("schur: input matrix is not square")

	// ErrIterationLimit is returned when a driver exhausts its iteration
	// budget without fully deflating. The matrix state on failure is
	// undefined; no partial result is surfaced.
	ErrIterationLimit = errors.New("schur: iteration limit exceeded before full deflation")

	// ErrInvalidOption is returned for an unrecognized shiftmethod, or for
	// Permute set true (Open Question (b): permutation/balancing reordering
	// is not implemented, so the option is validated rather than silently
	// ignored).
	ErrInvalidOption = errors.New("schur: invalid option")
)
