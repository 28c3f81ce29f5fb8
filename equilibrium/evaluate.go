package equilibrium

import (
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/farsight/frame"
	"github.com/katalvlaran/farsight/mdp"
	"github.com/katalvlaran/farsight/strategy"
	"github.com/katalvlaran/farsight/transition"
)

// ErrLabels indicates payoffs whose rows or columns do not follow the
// game's states and players.
var ErrLabels = errors.New("equilibrium: payoff labels do not match the game")

// Game is everything besides the strategy profile that the value
// functions depend on.
type Game struct {
	transition.Params
	// Payoffs holds the static payoffs, states × players.
	Payoffs     *frame.Frame
	Discounting float64
}

// Outcome is a strategy profile together with what it induces.
type Outcome struct {
	Effectivity   *strategy.Effectivity
	Table         *strategy.Table // filled copy of the evaluated table
	Probabilities *transition.Probabilities
	V             *frame.Frame
}

// Evaluate derives the effectivity of t, fills a copy of it and solves the
// induced value functions. t itself is not modified.
func Evaluate(g Game, t *strategy.Table) (*Outcome, error) {
	if !slices.Equal(g.Payoffs.RowLabels, g.States) || !slices.Equal(g.Payoffs.ColLabels, g.Players) {
		return nil, ErrLabels
	}
	eff := strategy.DeriveEffectivity(t)
	filled := t.Clone()
	filled.Fill()

	pr, err := transition.Compute(filled, eff, g.Params)
	if err != nil {
		return nil, fmt.Errorf("transition probabilities: %w", err)
	}
	m, err := mdp.New(pr.P, g.Discounting)
	if err != nil {
		return nil, err
	}
	V, err := m.SolveAll(g.Payoffs)
	if err != nil {
		return nil, fmt.Errorf("value functions: %w", err)
	}

	return &Outcome{Effectivity: eff, Table: filled, Probabilities: pr, V: V}, nil
}
