package equilibrium

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/farsight/strategy"
)

// DefaultMaxIterations bounds Search when no limit is given.
const DefaultMaxIterations = 200

// indifference is the value gap below which a responder keeps its answer.
const indifference = 1e-12

var (
	// ErrNoConvergence indicates that best responses kept changing.
	ErrNoConvergence = errors.New("equilibrium: best-response iteration did not converge")

	// ErrNotEquilibrium indicates a fixed point that fails verification.
	ErrNotEquilibrium = errors.New("equilibrium: fixed point is not an equilibrium")
)

// Search looks for a pure-strategy equilibrium. It starts from the
// template where nobody proposes to move and every committee rejects, then
// alternates two best-response steps until neither changes anything:
//
//  1. every committee member accepts exactly the moves that raise its value;
//  2. every proposer whose current proposal is no longer optimal switches
//     to the first optimal next state.
//
// Committees follow strategy.Committee. maxIter <= 0 selects
// DefaultMaxIterations.
func Search(g Game, maxIter int) (*strategy.Table, error) {
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	t, err := strategy.Template(g.Players, g.States, g.Members)
	if err != nil {
		return nil, err
	}

	for it := 0; it < maxIter; it++ {
		o, err := Evaluate(g, t)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", it, err)
		}
		changed, err := updateApprovals(g, t, o)
		if err != nil {
			return nil, err
		}

		if o, err = Evaluate(g, t); err != nil {
			return nil, fmt.Errorf("iteration %d: %w", it, err)
		}
		moved, err := updateProposals(g, t, o)
		if err != nil {
			return nil, err
		}

		if !changed && !moved {
			if err = verifyFixedPoint(g, t); err != nil {
				return nil, err
			}
			return t, nil
		}
	}

	return nil, fmt.Errorf("%w after %d iterations", ErrNoConvergence, maxIter)
}

func updateApprovals(g Game, t *strategy.Table, o *Outcome) (bool, error) {
	changed := false
	for _, i := range g.Players {
		for xi, x := range g.States {
			for yi, y := range g.States {
				if x == y {
					continue
				}
				m := strategy.Move{Proposer: i, From: x, To: y}
				for _, j := range o.Effectivity.Committee(m) {
					col, err := o.V.ColIndex(j)
					if err != nil {
						return false, err
					}
					cur, _ := t.Acceptance(m, j)
					next := cur
					switch dv := o.V.Data[yi][col] - o.V.Data[xi][col]; {
					case dv > indifference:
						next = 1
					case dv < -indifference:
						next = 0
					}
					if next != cur {
						if err = t.SetAcceptance(m, j, next); err != nil {
							return false, err
						}
						changed = true
					}
				}
			}
		}
	}

	return changed, nil
}

func updateProposals(g Game, t *strategy.Table, o *Outcome) (bool, error) {
	changed := false
	for pi, i := range g.Players {
		col, err := o.V.ColIndex(i)
		if err != nil {
			return false, err
		}
		for xi, x := range g.States {
			expected := make([]float64, len(g.States))
			best, current := 0.0, -1
			for yi, y := range g.States {
				pa := o.Probabilities.Approvals[pi][xi][yi]
				expected[yi] = pa*o.V.Data[yi][col] + (1-pa)*o.V.Data[xi][col]
				if yi == 0 || expected[yi] > best {
					best = expected[yi]
				}
				if current < 0 && t.Proposal(strategy.Move{Proposer: i, From: x, To: y}) > 0 {
					current = yi
				}
			}

			first := -1
			for yi := range g.States {
				if best-expected[yi] <= indifference {
					if first < 0 {
						first = yi
					}
					if yi == current {
						first = current
						break
					}
				}
			}
			if first == current {
				continue
			}
			for yi, y := range g.States {
				p := 0.0
				if yi == first {
					p = 1
				}
				if err = t.SetProposal(strategy.Move{Proposer: i, From: x, To: y}, p); err != nil {
					return false, err
				}
			}
			changed = true
		}
	}

	return changed, nil
}

func verifyFixedPoint(g Game, t *strategy.Table) error {
	o, err := Evaluate(g, t)
	if err != nil {
		return err
	}
	if r := Verify(g.Players, g.States, o); !r.OK {
		return fmt.Errorf("%w: %s", ErrNotEquilibrium, r)
	}

	return nil
}
