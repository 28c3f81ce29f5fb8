// Package transition turns a strategy profile into the transition
// probabilities of the induced Markov chain over states.
//
// For proposer i, current state x and next state y:
//
//	P[x][y] += protocol[i]·proposal(i, x→y)·approved(i, x→y)
//	P[x][x] += protocol[i]·proposal(i, x→y)·(1 − approved(i, x→y))
//
// Staying put is always approved and a move with an empty committee never
// is. With unanimity, every committee member must accept. Without it, a
// single-member committee decides alone; otherwise
//
//	approved = pNew·(Σ a_j − Π a_j)    over committee members j
//
// where pNew is 1 when the proposer is the only newcomer to the coalition,
// 0 when there are no newcomers and the product of newcomer acceptances
// otherwise. The sum-minus-product term leaves [0,1] for committees of
// three or more, which Compute reports as ErrProbabilityRange.
package transition

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/farsight/internal/numeric"
	"github.com/katalvlaran/farsight/strategy"
)

var (
	// ErrCommittee indicates a committee member without an acceptance value.
	ErrCommittee = errors.New("transition: approval committee cannot be handled")

	// ErrNotStochastic indicates a row of P that does not sum to one.
	ErrNotStochastic = errors.New("transition: rows of P must sum up to 1")

	// ErrProbabilityRange indicates a probability outside [0,1].
	ErrProbabilityRange = errors.New("transition: probability outside [0,1]")

	// ErrProtocol indicates a protocol that does not cover every player.
	ErrProtocol = errors.New("transition: protocol probability missing")
)

// CommitteeError reports the move whose committee could not be evaluated.
type CommitteeError struct {
	Proposer string
	From     string
	To       string
}

func (e *CommitteeError) Error() string {
	return fmt.Sprintf("the following transition could not be handled: Proposer: %s, from state %s to %s", e.Proposer, e.From, e.To)
}

// Unwrap lets errors.Is match ErrCommittee.
func (e *CommitteeError) Unwrap() error { return ErrCommittee }

// Params fixes the game the probabilities are computed for.
type Params struct {
	Players []string
	States  []string
	// Protocol is the probability of each player being chosen as proposer.
	Protocol map[string]float64
	// Unanimity requires every committee member to accept.
	Unanimity bool
	// Members lists the players in a non-singleton coalition of each state.
	Members map[string][]string
}

// Probabilities holds the transition matrix and the per-proposer
// proposal and approval probabilities, indexed [player][from][to].
type Probabilities struct {
	P         [][]float64
	Proposals [][][]float64
	Approvals [][][]float64
}

// Compute derives the transition probabilities of a filled table.
func Compute(t *strategy.Table, eff *strategy.Effectivity, p Params) (*Probabilities, error) {
	nP, nS := len(p.Players), len(p.States)
	out := &Probabilities{
		P:         square(nS),
		Proposals: make([][][]float64, nP),
		Approvals: make([][][]float64, nP),
	}

	for pi, i := range p.Players {
		out.Proposals[pi] = square(nS)
		out.Approvals[pi] = square(nS)
		protocol, ok := p.Protocol[i]
		if !ok {
			return nil, fmt.Errorf("player %s: %w", i, ErrProtocol)
		}

		for xi, x := range p.States {
			for yi, y := range p.States {
				m := strategy.Move{Proposer: i, From: x, To: y}
				proposal := t.Proposal(m)
				approved, err := approval(t, eff, p, m)
				if err != nil {
					return nil, err
				}

				out.Proposals[pi][xi][yi] = proposal
				out.Approvals[pi][xi][yi] = approved

				proposed := protocol * proposal
				out.P[xi][yi] += proposed * approved
				out.P[xi][xi] += proposed * (1 - approved)
			}
		}
	}
	if err := out.check(p); err != nil {
		return nil, err
	}

	return out, nil
}

func approval(t *strategy.Table, eff *strategy.Effectivity, p Params, m strategy.Move) (float64, error) {
	committee := eff.Committee(m)
	switch {
	case m.From == m.To:
		return 1, nil
	case len(committee) == 0:
		return 0, nil
	case p.Unanimity || len(committee) == 1:
		return allAccept(t, m, committee)
	}

	incumbents := p.Members[m.From]
	var newcomers []string
	for _, j := range p.Members[m.To] {
		if !contains(incumbents, j) {
			newcomers = append(newcomers, j)
		}
	}

	var pNew float64
	switch {
	case len(newcomers) == 0:
		pNew = 0
	case len(newcomers) == 1 && newcomers[0] == m.Proposer:
		pNew = 1
	default:
		pNew = 1
		for _, j := range newcomers {
			// A newcomer without an entry rejects.
			a, _ := t.Acceptance(m, j)
			pNew *= a
		}
	}

	sum, prod := 0.0, 1.0
	for _, j := range committee {
		a, ok := t.Acceptance(m, j)
		if !ok {
			return 0, &CommitteeError{Proposer: m.Proposer, From: m.From, To: m.To}
		}
		sum += a
		prod *= a
	}

	return pNew * (sum - prod), nil
}

func allAccept(t *strategy.Table, m strategy.Move, who []string) (float64, error) {
	prod := 1.0
	for _, j := range who {
		a, ok := t.Acceptance(m, j)
		if !ok {
			return 0, &CommitteeError{Proposer: m.Proposer, From: m.From, To: m.To}
		}
		prod *= a
	}

	return prod, nil
}

func (pr *Probabilities) check(p Params) error {
	for xi, row := range pr.P {
		sum := 0.0
		for yi, v := range row {
			if !numeric.InUnit(v) {
				return fmt.Errorf("P[%s][%s] = %g: %w", p.States[xi], p.States[yi], v, ErrProbabilityRange)
			}
			sum += v
		}
		if !numeric.IsClose(sum, 1, numeric.SumAtol) {
			return fmt.Errorf("row %s sums to %g: %w", p.States[xi], sum, ErrNotStochastic)
		}
	}
	for pi := range pr.Proposals {
		for xi := range pr.Proposals[pi] {
			for yi := range pr.Proposals[pi][xi] {
				if !numeric.InUnit(pr.Proposals[pi][xi][yi]) || !numeric.InUnit(pr.Approvals[pi][xi][yi]) {
					return fmt.Errorf("player %s, %s -> %s: %w", p.Players[pi], p.States[xi], p.States[yi], ErrProbabilityRange)
				}
			}
		}
	}

	return nil
}

func square(n int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
	}

	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}
