// SPDX-License-Identifier: MIT
// Package matrix provides the linear-algebra kernels used by the value-function
// solver: element-wise subtraction, scalar scaling, matrix-vector products,
// Doolittle LU factorization and triangular solves. All functions perform
// strict fail-fast validation and return clear errors on dimension mismatches.
//
// Purpose:
//   - Declare canonical kernels and shared constants for determinism and error reporting.
//
// Notes:
//   - All kernels use central validators and wrap sentinels via matrixErrorf.
//   - Every kernel has a *Dense fast-path (flat slice loops) and an interface fallback.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting a zero pivot in LU/Solve routines.
const ZeroPivot = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opSub      = "Sub"
	opScale    = "Scale"
	opMatVec   = "MatVec"
	opLU       = "LU"
	opSolve    = "Solve"
	opIdentity = "Identity"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Complexity:
//   - Time O(1), Space O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Determinism: fixed i-loop; single write per diagonal cell.
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opIdentity, err)
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// Sub computes the element-wise difference a − b into a fresh Dense.
// Inputs are never mutated.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b). Allocate result Dense(rows, cols).
//   - Stage 2: Fast-path if both are *Dense - single flat loop 0..n-1.
//     Otherwise, fallback At/Set with fixed i→j order.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with opSub).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func Sub(a, b Matrix) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opSub, err)
	}

	// Fast-path: flat loop over both backing slices.
	if da, ok := a.(*Dense); ok {
		if db, ok := b.(*Dense); ok {
			for idx := range res.data {
				res.data[idx] = da.data[idx] - db.data[idx]
			}

			return res, nil
		}
	}

	// Fallback: generic interface loop using At/Set.
	var i, j int
	var av, bv float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opSub, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opSub, err)
			}
			res.data[i*cols+j] = av - bv
		}
	}

	return res, nil
}

// Scale returns alpha*m as a fresh Dense.
//
// Errors:
//   - ErrNilMatrix (wrapped with opScale); ErrNaNInf when alpha is not finite.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, matrixErrorf(opScale, ErrNaNInf)
	}
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	if d, ok := m.(*Dense); ok {
		for idx, v := range d.data {
			res.data[idx] = alpha * v
		}

		return res, nil
	}

	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opScale, err)
			}
			res.data[i*cols+j] = alpha * v
		}
	}

	return res, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Fast-path: *Dense performs one pass per row with flat indexing.
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	if d, ok := m.(*Dense); ok {
		var i, j, base int
		var acc float64
		for i = 0; i < d.r; i++ {
			acc = ZeroSum
			base = i * d.c
			for j = 0; j < d.c; j++ {
				acc += d.data[base+j] * x[j]
			}
			y[i] = acc
		}

		return y, nil
	}

	var i, j int
	var mv float64
	var err error
	for i = 0; i < rows; i++ {
		y[i] = ZeroSum
		for j = 0; j < cols; j++ {
			if mv, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMatVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}

// LU computes the Doolittle factorization A = L*U with unit diagonal on L (no pivoting).
// Implementation:
//   - Stage 1: Validate m (not nil, square); allocate Dense L,U; set diag(L)=1.
//   - Stage 2: For i=0..n-1, build row i of U and column i of L in fixed order.
//
// Behavior highlights:
//   - Deterministic loops; fast path uses direct flat indexing; zero-pivot guard enforced.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrSingular (if U[i,i]==0 during factorization).
//
// Determinism:
//   - Fixed i→{j≥i} for U, then {j>i}→i for L.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// Notes:
//   - Strictly diagonally dominant inputs (such as d·P − I for a stochastic P
//     and d < 1) never produce a zero pivot.
func LU(m Matrix) (*Dense, *Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}

	n := m.Rows()
	L, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	U, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}

	// Work on a flat row-major copy so both paths share one kernel.
	a, ok := m.(*Dense)
	if !ok {
		if a, err = toDense(m); err != nil {
			return nil, nil, matrixErrorf(opLU, err)
		}
	}

	var i, j, k, baseI, baseJ int
	var sum, pivot float64
	for i = 0; i < n; i++ {
		baseI = i * n
		// Compute U[i][j] for j >= i
		for j = i; j < n; j++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += L.data[baseI+k] * U.data[k*n+j]
			}
			U.data[baseI+j] = a.data[baseI+j] - sum
		}

		// Zero-pivot guard (deterministic singularity detection)
		pivot = U.data[baseI+i]
		if pivot == ZeroPivot {
			return nil, nil, matrixErrorf(opLU, ErrSingular)
		}

		// Compute L[j][i] for j > i
		for j = i + 1; j < n; j++ {
			sum = ZeroSum
			baseJ = j * n
			for k = 0; k < i; k++ {
				sum += L.data[baseJ+k] * U.data[k*n+i]
			}
			L.data[baseJ+i] = (a.data[baseJ+i] - sum) / pivot
		}
	}

	return L, U, nil
}

// Solve returns x with A·x = b, via LU(A) then forward (L·y = b) and
// backward (U·x = y) substitution.
//
// Implementation:
//   - Stage 1: validate A square and len(b) == n; factorize.
//   - Stage 2: forward substitution top-down (L has unit diagonal).
//   - Stage 3: backward substitution bottom-up, checking pivots.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrSingular (wrapped with opSolve).
//
// Determinism:
//   - Fixed traversal and no pivoting → identical results for identical inputs.
//
// Complexity:
//   - Time O(n^3) for LU + O(n^2) for the two solves; Space O(n^2).
func Solve(A Matrix, b []float64) ([]float64, error) {
	if err := ValidateSquare(A); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	n := A.Rows()
	if err := ValidateVecLen(b, n); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	L, U, err := LU(A)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	var i, k, base int
	var sum, pivot float64
	y := make([]float64, n)
	for i = 0; i < n; i++ {
		sum = ZeroSum
		base = i * n
		for k = 0; k < i; k++ {
			sum += L.data[base+k] * y[k]
		}
		y[i] = b[i] - sum
	}

	x := make([]float64, n)
	for i = n - 1; i >= 0; i-- {
		sum = ZeroSum
		base = i * n
		for k = i + 1; k < n; k++ {
			sum += U.data[base+k] * x[k]
		}
		pivot = U.data[base+i]
		if pivot == ZeroPivot {
			return nil, matrixErrorf(opSolve, ErrSingular)
		}
		x[i] = (y[i] - sum) / pivot
	}

	return x, nil
}

// toDense materializes any Matrix as a *Dense through At in i→j order.
// Complexity: O(r*c).
func toDense(m Matrix) (*Dense, error) {
	rows, cols := m.Rows(), m.Cols()
	d, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			d.data[i*cols+j] = v
		}
	}

	return d, nil
}
