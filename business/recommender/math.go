package recommender

import (
	"fmt"
	"math"
)

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}

	return sum
}

// solveLinear solves A x = b in place using Gaussian elimination with partial
// pivoting. A is n x n, b has length n. Both are clobbered.
func solveLinear(A [][]float64, b []float64) ([]float64, error) {
	n := len(b)

	for col := 0; col < n; col++ {
		// pick the largest pivot in this column
		pivotRow := col
		for row := col + 1; row < n; row++ {
			if math.Abs(A[row][col]) > math.Abs(A[pivotRow][col]) {
				pivotRow = row
			}
		}
		if math.Abs(A[pivotRow][col]) < 1e-12 {
			return nil, fmt.Errorf("matrix is singular")
		}

		A[col], A[pivotRow] = A[pivotRow], A[col]
		b[col], b[pivotRow] = b[pivotRow], b[col]

		pivot := A[col][col]
		for j := col; j < n; j++ {
			A[col][j] /= pivot
		}
		b[col] /= pivot

		for row := 0; row < n; row++ {
			if row == col {
				continue
			}
			factor := A[row][col]
			if factor == 0 {
				continue
			}
			for j := col; j < n; j++ {
				A[row][j] -= factor * A[col][j]
			}
			b[row] -= factor * b[col]
		}
	}

	return b, nil
}
