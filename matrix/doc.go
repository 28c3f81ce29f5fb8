// Package matrix offers the small dense linear-algebra core used to solve
// value functions of Markov decision processes.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and a
//     NaN/Inf rejection policy.
//   - Element-wise Sub, scalar Scale and MatVec kernels.
//   - Doolittle LU (no pivoting) and Solve for square systems A·x = b.
//
// All kernels are deterministic: fixed loop orders and no pivoting mean
// identical inputs produce bit-identical outputs across runs. Systems of the
// form d·P − I with a row-stochastic P and 0 < d < 1 are strictly diagonally
// dominant, so LU without pivoting never meets a zero pivot on them.
package matrix
