package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ErrTooFewPoints is returned when a fit has fewer samples than coefficients.
var ErrTooFewPoints = errors.New("not enough points for polynomial fit")

// PolyFitResult holds least-squares coefficients, highest degree first.
type PolyFitResult struct {
	Coeffs []float64 `json:"coeffs"`
	R2     float64   `json:"r2"`
}

// Degree of the fitted polynomial.
func (p PolyFitResult) Degree() int { return len(p.Coeffs) - 1 }

// Eval evaluates the polynomial at x using Horner's scheme.
func (p PolyFitResult) Eval(x float64) float64 {
	var y float64
	for _, c := range p.Coeffs {
		y = y*x + c
	}
	return y
}

// PolyFit fits y ≈ Σ c_k x^(deg-k) by least squares over a Vandermonde matrix.
// A rank-deficient design (for example constant x) is reported as an error.
func PolyFit(xs, ys []float64, degree int) (PolyFitResult, error) {
	if len(xs) != len(ys) {
		return PolyFitResult{}, fmt.Errorf("polyfit: length mismatch %d vs %d", len(xs), len(ys))
	}
	if degree < 0 {
		return PolyFitResult{}, fmt.Errorf("polyfit: negative degree %d", degree)
	}
	n, cols := len(xs), degree+1
	if n < cols {
		return PolyFitResult{}, fmt.Errorf("polyfit: %d points for degree %d: %w", n, degree, ErrTooFewPoints)
	}
	a := mat.NewDense(n, cols, nil)
	for i, x := range xs {
		for j := 0; j < cols; j++ {
			a.Set(i, j, math.Pow(x, float64(degree-j)))
		}
	}
	b := mat.NewVecDense(n, append([]float64(nil), ys...))
	var c mat.VecDense
	if err := c.SolveVec(a, b); err != nil {
		return PolyFitResult{}, fmt.Errorf("polyfit: %w", err)
	}
	res := PolyFitResult{Coeffs: make([]float64, cols)}
	for j := 0; j < cols; j++ {
		res.Coeffs[j] = c.AtVec(j)
	}
	res.R2 = rSquared(xs, ys, res)
	return res, nil
}

func rSquared(xs, ys []float64, p PolyFitResult) float64 {
	m := mean(ys)
	var ssRes, ssTot float64
	for i, x := range xs {
		d := ys[i] - p.Eval(x)
		ssRes += d * d
		t := ys[i] - m
		ssTot += t * t
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}

// Curve is a fitted line sampled at the sorted x positions of the input.
type Curve struct {
	X   []float64
	Y   []float64
	Fit PolyFitResult
}

// FitCurve fits a polynomial and evaluates it at the sorted input x values, ready for plotting.
func FitCurve(xs, ys []float64, degree int) (Curve, error) {
	fit, err := PolyFit(xs, ys, degree)
	if err != nil {
		return Curve{}, err
	}
	sx := append([]float64(nil), xs...)
	sort.Float64s(sx)
	cy := make([]float64, len(sx))
	for i, x := range sx {
		cy[i] = fit.Eval(x)
	}
	return Curve{X: sx, Y: cy, Fit: fit}, nil
}
