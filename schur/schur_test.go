package schur

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func almostEqual(a, b complex128, tol float64) bool {
	return math.Abs(real(a)-real(b)) < tol && math.Abs(imag(a)-imag(b)) < tol
}

// eigenvalueSetsMatch checks multiset equality between got and want to
// within tol, independent of ordering (spec.md S8, "Eigenvalue correctness").
func eigenvalueSetsMatch(got, want []complex128, tol float64) bool {
	if len(got) != len(want) {
		return false
	}
	used := make([]bool, len(want))
	for _, g := range got {
		found := false
		for i, w := range want {
			if used[i] {
				continue
			}
			if almostEqual(g, w, tol) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func denseFrom(n int, rows [][]float64) *mat.Dense {
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d.Set(i, j, rows[i][j])
		}
	}
	return d
}

// Scenario 1: 1x1 input.
func TestSchurScenario1x1(t *testing.T) {
	require := require.New(t)
	a := denseFrom(1, [][]float64{{7}})
	tr, z, w, err := Schur(a, DefaultOptions())
	require.NoError(err)
	require.InDelta(7, tr.At(0, 0), 1e-10)
	require.InDelta(1, z.At(0, 0), 1e-10)
	require.True(almostEqual(w[0], 7, 1e-10))
}

// Scenario 2: 2x2 real rotation block, purely imaginary eigenvalues.
func TestSchurScenario2x2RealRotation(t *testing.T) {
	require := require.New(t)
	a := denseFrom(2, [][]float64{{0, 1}, {-1, 0}})
	_, _, w, err := Schur(a, DefaultOptions())
	require.NoError(err)
	want := []complex128{complex(0, 1), complex(0, -1)}
	require.True(eigenvalueSetsMatch(w, want, 1e-9), "got %v want %v", w, want)
}

// Scenario 3: 2x2 complex, already upper triangular.
func TestSchurScenario2x2Complex(t *testing.T) {
	require := require.New(t)
	a := mat.NewCDense(2, 2, nil)
	a.Set(0, 0, complex(1, 1))
	a.Set(0, 1, 2)
	a.Set(1, 0, 0)
	a.Set(1, 1, complex(3, -1))

	tr, z, w, err := SchurComplex(a, DefaultOptions())
	require.NoError(err)
	require.True(almostEqual(tr.At(0, 0), complex(1, 1), 1e-9))
	require.True(almostEqual(tr.At(1, 1), complex(3, -1), 1e-9))
	require.True(almostEqual(tr.At(1, 0), 0, 1e-9))
	require.True(almostEqual(z.At(0, 0), 1, 1e-9))
	require.True(almostEqual(z.At(1, 1), 1, 1e-9))
	require.True(almostEqual(z.At(0, 1), 0, 1e-9))
	want := []complex128{complex(1, 1), complex(3, -1)}
	require.True(eigenvalueSetsMatch(w, want, 1e-9))
}

// Scenario 4: 3x3 upper-triangular diag(5,2,9) with small off-diagonals.
func TestSchurScenario3x3NearlyDiagonal(t *testing.T) {
	require := require.New(t)
	a := denseFrom(3, [][]float64{
		{5, 1e-3, 2e-3},
		{0, 2, -1e-3},
		{0, 0, 9},
	})
	_, _, w, err := Schur(a, DefaultOptions())
	require.NoError(err)
	want := []complex128{5, 2, 9}
	require.True(eigenvalueSetsMatch(w, want, 1e-2), "got %v want %v", w, want)
}

// Scenario 5: 4x4 real companion of x^4 - 1.
func TestSchurScenario4x4Companion(t *testing.T) {
	require := require.New(t)
	a := denseFrom(4, [][]float64{
		{0, 0, 0, 1},
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
	})
	_, _, w, err := Schur(a, DefaultOptions())
	require.NoError(err)
	want := []complex128{1, -1, complex(0, 1), complex(0, -1)}
	require.True(eigenvalueSetsMatch(w, want, 1e-8), "got %v want %v", w, want)
}

// Scenario 6: 5x5 Hilbert-like real symmetric matrix, real eigenvalues.
func TestSchurScenario5x5HilbertLike(t *testing.T) {
	require := require.New(t)
	n := 5
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			rows[i][j] = 1 / float64(i+j+1)
		}
	}
	a := denseFrom(n, rows)
	_, _, w, err := Schur(a, DefaultOptions())
	require.NoError(err)
	for i, wi := range w {
		require.InDelta(0, imag(wi), 1e-6, "eigenvalue %d (%v) should be real", i, wi)
	}
}

func TestSchurRejectsNonSquareInput(t *testing.T) {
	require := require.New(t)
	a := mat.NewDense(2, 3, nil)
	_, _, _, err := Schur(a, DefaultOptions())
	require.ErrorIs(err, ErrNonSquareInput)
}

func TestSchurRejectsPermuteOption(t *testing.T) {
	require := require.New(t)
	a := denseFrom(1, [][]float64{{1}})
	opts := DefaultOptions()
	opts.Permute = true
	_, _, _, err := Schur(a, opts)
	require.ErrorIs(err, ErrInvalidOption)
}

func TestEigenValuesSkipsZAccumulation(t *testing.T) {
	require := require.New(t)
	a := denseFrom(3, [][]float64{
		{0, 0, 1},
		{1, 0, 0},
		{0, 1, 0},
	})
	w, err := EigenValues(a, DefaultOptions())
	require.NoError(err)
	require.Len(w, 3)
}

func TestEigenVectorsSatisfyEigenEquation(t *testing.T) {
	require := require.New(t)
	a := mat.NewCDense(3, 3, nil)
	a.Set(0, 0, 2)
	a.Set(0, 1, 1)
	a.Set(0, 2, 1)
	a.Set(1, 1, 3)
	a.Set(1, 2, 1)
	a.Set(2, 2, 4)

	tr, z, w, err := SchurComplex(a, DefaultOptions())
	require.NoError(err)

	v, err := EigenVectors(tr, z)
	require.NoError(err)

	n := 3
	for k := 0; k < n; k++ {
		lambda := w[k]
		var resid, norm float64
		for i := 0; i < n; i++ {
			var sum complex128
			for j := 0; j < n; j++ {
				sum += a.At(i, j) * v.At(j, k)
			}
			d := sum - lambda*v.At(i, k)
			resid += real(d)*real(d) + imag(d)*imag(d)
			norm += real(v.At(i, k))*real(v.At(i, k)) + imag(v.At(i, k))*imag(v.At(i, k))
		}
		resid = math.Sqrt(resid)
		norm = math.Sqrt(norm)
		require.Less(resid/norm, 1e-6, "eigenvector %d residual too large", k)
	}
}

func TestRealSchurToComplexPreservesSimilarity(t *testing.T) {
	require := require.New(t)
	a := denseFrom(2, [][]float64{{0, 1}, {-1, 0}})
	tr, z, _, err := Schur(a, DefaultOptions())
	require.NoError(err)

	tc, zc, err := RealSchurToComplex(tr, z)
	require.NoError(err)

	require.True(almostEqual(tc.At(1, 0), 0, 1e-8), "converted T should be fully upper triangular")

	// Z'*T'*Z'^H should still reconstruct A (now as a complex matrix).
	n := 2
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var sum complex128
			for p := 0; p < n; p++ {
				for q := 0; q < n; q++ {
					sum += zc.At(i, p) * tc.At(p, q) * cconj(zc.At(j, q))
				}
			}
			want := complex(a.At(i, j), 0)
			require.InDelta(real(want), real(sum), 1e-8)
			require.InDelta(imag(want), imag(sum), 1e-8)
		}
	}
}

func cconj(c complex128) complex128 {
	return complex(real(c), -imag(c))
}
