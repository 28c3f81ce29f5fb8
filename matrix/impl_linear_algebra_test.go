// Package matrix_test contains unit tests for the linear algebra kernels.
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/farsight/matrix"
	"github.com/stretchr/testify/require"
)

const tol = 1e-12

func TestIdentity(t *testing.T) {
	I, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	CompareClose(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, I, 0)

	_, err = matrix.NewIdentity(0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestSub_FastPathMatchesFallback checks both code paths produce the same result.
func TestSub_FastPathMatchesFallback(t *testing.T) {
	t.Parallel()

	a := MustFrom(t, [][]float64{{5, 6}, {7, 8}})
	b := MustFrom(t, [][]float64{{1, 2}, {3, 4}})
	want := [][]float64{{4, 4}, {4, 4}}

	fast, err := matrix.Sub(a, b)
	require.NoError(t, err)
	CompareClose(t, want, fast, 0)

	slow, err := matrix.Sub(hide{a}, b)
	require.NoError(t, err)
	CompareClose(t, want, slow, 0)

	_, err = matrix.Sub(a, MustDense(t, 3, 2))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Sub(nil, b)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestScale(t *testing.T) {
	a := MustFrom(t, [][]float64{{1, -2}, {0.5, 4}})
	want := [][]float64{{0.5, -1}, {0.25, 2}}

	got, err := matrix.Scale(a, 0.5)
	require.NoError(t, err)
	CompareClose(t, want, got, 0)

	got, err = matrix.Scale(hide{a}, 0.5)
	require.NoError(t, err)
	CompareClose(t, want, got, 0)

	_, err = matrix.Scale(nil, 2)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMatVec(t *testing.T) {
	a := MustFrom(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	x := []float64{1, 0, -1}

	y, err := matrix.MatVec(a, x)
	require.NoError(t, err)
	require.Equal(t, []float64{-2, -2}, y)

	y, err = matrix.MatVec(hide{a}, x)
	require.NoError(t, err)
	require.Equal(t, []float64{-2, -2}, y)

	_, err = matrix.MatVec(a, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestLU_Reconstruction checks L*U == A and the unit diagonal of L.
func TestLU_Reconstruction(t *testing.T) {
	t.Parallel()

	A := [][]float64{
		{4, 3, 2},
		{2, 1, 3},
		{3, 2, 1},
	}
	L, U, err := matrix.LU(MustFrom(t, A))
	require.NoError(t, err)

	n := len(A)
	for i := 0; i < n; i++ {
		require.Equal(t, 1.0, MustAt(t, L, i, i))
		for j := 0; j < n; j++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += MustAt(t, L, i, k) * MustAt(t, U, k, j)
			}
			require.InDeltaf(t, A[i][j], sum, tol, "LU[%d,%d]", i, j)
			if j < i {
				require.Equal(t, 0.0, MustAt(t, U, i, j))
			}
			if j > i {
				require.Equal(t, 0.0, MustAt(t, L, i, j))
			}
		}
	}

	// The interface fallback yields identical factors.
	L2, U2, err := matrix.LU(hide{MustFrom(t, A)})
	require.NoError(t, err)
	require.Equal(t, L.String(), L2.String())
	require.Equal(t, U.String(), U2.String())
}

func TestLU_Errors(t *testing.T) {
	_, _, err := matrix.LU(MustFrom(t, [][]float64{{0, 1}, {1, 0}}))
	require.ErrorIs(t, err, matrix.ErrSingular)

	_, _, err = matrix.LU(MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, _, err = matrix.LU(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestSolve(t *testing.T) {
	t.Parallel()

	A := MustFrom(t, [][]float64{
		{2, 1, 1},
		{1, 3, 2},
		{1, 0, 0},
	})
	b := []float64{4, 5, 6}
	x, err := matrix.Solve(A, b)
	require.NoError(t, err)

	Ax, err := matrix.MatVec(A, x)
	require.NoError(t, err)
	require.InDeltaSlice(t, b, Ax, 1e-9)

	_, err = matrix.Solve(A, []float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestSolve_DiscountedStochastic mirrors the value-function system
// (d·P − I)·v = −(1−d)·u on an identity transition: v must equal u.
func TestSolve_DiscountedStochastic(t *testing.T) {
	const d = 0.9
	I, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	dP, err := matrix.Scale(I, d)
	require.NoError(t, err)
	A, err := matrix.Sub(dP, I)
	require.NoError(t, err)

	u := []float64{1234, 1234, 1234}
	b := make([]float64, len(u))
	for i := range u {
		b[i] = -(1 - d) * u[i]
	}
	v, err := matrix.Solve(A, b)
	require.NoError(t, err)
	require.InDeltaSlice(t, u, v, 1e-9)
}
