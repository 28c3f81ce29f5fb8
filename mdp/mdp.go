// Package mdp solves the value functions of the Markov chain induced by a
// strategy profile.
//
// With discount factor d, transition matrix P and static payoffs u, a
// player's normalised value function satisfies
//
//	V = (1 − d)·u + d·P·V   ⇔   (d·P − I)·V = −(1 − d)·u
//
// The system is solved by LU factorization. For a stochastic P and
// 0 < d < 1 the matrix d·P − I is strictly diagonally dominant, so the
// factorization needs no pivoting.
package mdp

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/farsight/frame"
	"github.com/katalvlaran/farsight/internal/numeric"
	"github.com/katalvlaran/farsight/matrix"
)

var (
	// ErrDiscounting indicates a discount factor outside (0,1).
	ErrDiscounting = errors.New("mdp: discounting must lie in (0,1)")

	// ErrResidual indicates a solution that does not satisfy the system.
	ErrResidual = errors.New("mdp: solution residual too large")
)

// residualAtol is the absolute tolerance of the residual check.
const residualAtol = 1e-8

// MDP is a Markov chain with discounting.
type MDP struct {
	P           matrix.Matrix
	Discounting float64

	system matrix.Matrix // d·P − I
}

// New validates P and d and precomputes the linear system.
func New(P [][]float64, discounting float64) (*MDP, error) {
	if !(discounting > 0 && discounting < 1) || math.IsNaN(discounting) {
		return nil, fmt.Errorf("%w (got %g)", ErrDiscounting, discounting)
	}
	pm, err := matrix.NewDenseFrom(P)
	if err != nil {
		return nil, fmt.Errorf("mdp: transition matrix: %w", err)
	}
	if err = matrix.ValidateSquare(pm); err != nil {
		return nil, fmt.Errorf("mdp: transition matrix: %w", err)
	}

	scaled, err := matrix.Scale(pm, discounting)
	if err != nil {
		return nil, fmt.Errorf("mdp: %w", err)
	}
	eye, err := matrix.NewIdentity(pm.Rows())
	if err != nil {
		return nil, fmt.Errorf("mdp: %w", err)
	}
	system, err := matrix.Sub(scaled, eye)
	if err != nil {
		return nil, fmt.Errorf("mdp: %w", err)
	}

	return &MDP{P: pm, Discounting: discounting, system: system}, nil
}

// SolveValueFunction returns one player's value per state given the
// player's static payoffs per state.
func (m *MDP) SolveValueFunction(payoffs []float64) ([]float64, error) {
	b := make([]float64, len(payoffs))
	for k, u := range payoffs {
		b[k] = -(1 - m.Discounting) * u
	}

	v, err := matrix.Solve(m.system, b)
	if err != nil {
		return nil, fmt.Errorf("mdp: %w; d·P − I =\n%v", err, m.system)
	}
	check, err := matrix.MatVec(m.system, v)
	if err != nil {
		return nil, fmt.Errorf("mdp: %w", err)
	}
	if !numeric.AllClose(check, b, residualAtol) {
		return nil, ErrResidual
	}

	return v, nil
}

// SolveAll solves every player's value function; payoffs is states × players
// and so is the result, named "V".
func (m *MDP) SolveAll(payoffs *frame.Frame) (*frame.Frame, error) {
	V, err := frame.New("V", payoffs.RowLabels, payoffs.ColLabels)
	if err != nil {
		return nil, err
	}
	for j, player := range payoffs.ColLabels {
		v, err := m.SolveValueFunction(payoffs.Column(j))
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", player, err)
		}
		if err = V.SetColumn(j, v); err != nil {
			return nil, err
		}
	}

	return V, nil
}
