package hessenberg

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

func identity(n int) []float64 {
	z := make([]float64, n*n)
	for i := 0; i < n; i++ {
		z[i*n+i] = 1
	}
	return z
}

func matMul(a, b []float64, n int) []float64 {
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

func transpose(a []float64, n int) []float64 {
	b := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			b[j*n+i] = a[i*n+j]
		}
	}
	return b
}

func frobeniusDiff(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func TestReduceRealIsHessenbergAndOrthogonal(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	for _, n := range []int{1, 2, 3, 4, 8, 12} {
		a := make([]float64, n*n)
		for i := range a {
			a[i] = 2*rnd.Float64() - 1
		}
		orig := append([]float64(nil), a...)
		z := identity(n)

		ReduceReal(n, a, n, z, n, true)

		for i := 2; i < n; i++ {
			for j := 0; j < i-1; j++ {
				if math.Abs(a[i*n+j]) > 1e-9 {
					t.Errorf("n=%d: H[%d,%d]=%v not zeroed by reduction", n, i, j, a[i*n+j])
				}
			}
		}

		prod := matMul(transpose(z, n), z, n)
		if d := frobeniusDiff(prod, identity(n)); d > 1e-8*float64(n) {
			t.Errorf("n=%d: Zᵀ*Z deviates from I by %v", n, d)
		}

		recon := matMul(matMul(z, a, n), transpose(z, n), n)
		if d := frobeniusDiff(recon, orig); d > 1e-8*float64(n) {
			t.Errorf("n=%d: Z*H*Zᵀ deviates from A by %v", n, d)
		}
	}
}

func TestBalanceRescalesOutOfBandMagnitude(t *testing.T) {
	n := 3
	a := []float64{
		1e308, 0, 0,
		0, 1e308, 0,
		0, 0, 1e308,
	}
	didScale, cscale, anrm := Balance(n, a, n)
	if !didScale {
		t.Fatalf("expected Balance to rescale a matrix with norm %v", anrm)
	}
	for _, v := range a {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			t.Fatalf("Balance produced non-finite entry: %v", v)
		}
	}

	// The eigenvalues of the scaled diagonal matrix are its diagonal entries.
	wr := []float64{a[0], a[n+1], a[2*n+2]}
	wi := []float64{0, 0, 0}
	Unscale(n, a, n, wr, wi, cscale)
	for i, v := range wr {
		if math.IsInf(v, 0) {
			t.Errorf("Unscale left wr[%d] non-finite: %v", i, v)
		}
	}
}

func TestBalanceNoopInSafeBand(t *testing.T) {
	n := 2
	a := []float64{1, 2, 3, 4}
	orig := append([]float64(nil), a...)
	didScale, cscale, _ := Balance(n, a, n)
	if didScale || cscale != 1 {
		t.Errorf("Balance should not rescale a well-conditioned matrix, got didScale=%v cscale=%v", didScale, cscale)
	}
	if d := frobeniusDiff(a, orig); d != 0 {
		t.Errorf("Balance mutated a matrix it should have left alone")
	}
}
