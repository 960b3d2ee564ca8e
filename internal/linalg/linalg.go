// Package linalg wraps the small dense systems the engine solves with gonum.
package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// RankTolerance is the singular value cut-off relative to the largest one,
// applied after scaling every column to unit max-norm.
const RankTolerance = 1e-10

// Rank returns the numerical rank of a.
func Rank(a mat.Matrix) int {
	r, c := a.Dims()
	if r == 0 || c == 0 {
		return 0
	}
	scaled := normalize(a)
	var svd mat.SVD
	if !svd.Factorize(scaled, mat.SVDNone) {
		return 0
	}
	vals := svd.Values(nil)
	if len(vals) == 0 || vals[0] == 0 {
		return 0
	}
	rank := 0
	for _, v := range vals {
		if v > RankTolerance*vals[0] {
			rank++
		}
	}
	return rank
}

// normalize scales every non-zero column of a to unit max-norm.
func normalize(a mat.Matrix) *mat.Dense {
	r, c := a.Dims()
	out := mat.DenseCopyOf(a)
	for j := 0; j < c; j++ {
		var m float64
		for i := 0; i < r; i++ {
			m = math.Max(m, math.Abs(out.At(i, j)))
		}
		if m == 0 {
			continue
		}
		for i := 0; i < r; i++ {
			out.Set(i, j, out.At(i, j)/m)
		}
	}
	return out
}

// Solve returns x minimising |a·x − b|. a must have full column rank; square
// systems are solved exactly.
func Solve(a mat.Matrix, b []float64) ([]float64, error) {
	_, c := a.Dims()
	var x mat.VecDense
	if err := x.SolveVec(a, mat.NewVecDense(len(b), b)); err != nil {
		return nil, err
	}
	out := make([]float64, c)
	for i := range out {
		out[i] = x.AtVec(i)
	}
	return out, nil
}

// Residual returns the largest |a·x − b|.
func Residual(a mat.Matrix, x, b []float64) float64 {
	var ax mat.VecDense
	ax.MulVec(a, mat.NewVecDense(len(x), x))
	var worst float64
	for i, v := range b {
		worst = math.Max(worst, math.Abs(ax.AtVec(i)-v))
	}
	return worst
}
