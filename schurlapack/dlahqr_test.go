package schurlapack

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/schurqr/schureig/schurlapack/schurtest"
)

func TestDlahqrBackwardStabilityFrancis(t *testing.T) {
	impl := Implementation{}
	rnd := rand.New(rand.NewSource(11))
	for _, n := range []int{1, 2, 3, 4, 8, 15} {
		h := schurtest.RandomHessenberg(rnd, n)
		orig := append([]float64(nil), h...)
		z := schurtest.Identity(n)
		wr := make([]float64, n)
		wi := make([]float64, n)

		err := impl.Dlahqr(true, true, n, 0, n-1, h, n, wr, wi, z, n, 200*n+50, 0, FrancisShift, nil)
		if err != nil {
			t.Fatalf("n=%d: Dlahqr failed: %v", n, err)
		}

		tol := 1e-7 * float64(n)
		schurtest.CheckOrthogonal(t, z, n, tol)
		schurtest.CheckQuasiTriangular(t, h, n, tol)
		schurtest.CheckSimilarity(t, orig, h, z, n, tol)
	}
}

func TestDlahqrBackwardStabilityRayleigh(t *testing.T) {
	impl := Implementation{}
	rnd := rand.New(rand.NewSource(12))
	for _, n := range []int{1, 2, 3, 5, 9} {
		h := schurtest.RandomHessenberg(rnd, n)
		orig := append([]float64(nil), h...)
		z := schurtest.Identity(n)
		wr := make([]float64, n)
		wi := make([]float64, n)

		err := impl.Dlahqr(true, true, n, 0, n-1, h, n, wr, wi, z, n, 500*n+50, 0, RayleighShift, nil)
		if err != nil {
			t.Fatalf("n=%d: Dlahqr failed: %v", n, err)
		}

		tol := 1e-6 * float64(n)
		schurtest.CheckOrthogonal(t, z, n, tol)
		schurtest.CheckQuasiTriangular(t, h, n, tol)
		schurtest.CheckSimilarity(t, orig, h, z, n, tol)
	}
}

func TestDlahqr2x2RotationBlock(t *testing.T) {
	impl := Implementation{}
	n := 2
	h := []float64{0, 1, -1, 0}
	z := schurtest.Identity(n)
	wr := make([]float64, n)
	wi := make([]float64, n)

	if err := impl.Dlahqr(true, true, n, 0, n-1, h, n, wr, wi, z, n, 100, 0, FrancisShift, nil); err != nil {
		t.Fatalf("Dlahqr failed: %v", err)
	}
	// The block cannot be reduced further: eigenvalues are +-i.
	gotPair := []complex128{complex(wr[0], wi[0]), complex(wr[1], wi[1])}
	wantPair := []complex128{complex(0, 1), complex(0, -1)}
	if !(matches(gotPair[0], wantPair[0]) && matches(gotPair[1], wantPair[1])) &&
		!(matches(gotPair[0], wantPair[1]) && matches(gotPair[1], wantPair[0])) {
		t.Errorf("eigenvalues = %v, want %v (in either order)", gotPair, wantPair)
	}
}

func matches(a, b complex128) bool {
	return math.Abs(real(a)-real(b)) < 1e-9 && math.Abs(imag(a)-imag(b)) < 1e-9
}

func TestDlahqrCompanionOfXFourMinusOne(t *testing.T) {
	impl := Implementation{}
	n := 4
	// Companion matrix of x^4 - 1, already upper Hessenberg.
	h := []float64{
		0, 0, 0, 1,
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
	}
	z := schurtest.Identity(n)
	wr := make([]float64, n)
	wi := make([]float64, n)
	if err := impl.Dlahqr(true, true, n, 0, n-1, h, n, wr, wi, z, n, 500, 0, FrancisShift, nil); err != nil {
		t.Fatalf("Dlahqr failed: %v", err)
	}

	want := []complex128{1, -1, complex(0, 1), complex(0, -1)}
	got := make([]complex128, n)
	for i := range got {
		got[i] = complex(wr[i], wi[i])
	}
	for _, w := range want {
		found := false
		for _, g := range got {
			if matches(w, g) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("eigenvalue %v not found in computed set %v", w, got)
		}
	}
}
