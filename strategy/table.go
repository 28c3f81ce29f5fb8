package strategy

import (
	"fmt"

	"github.com/katalvlaran/farsight/internal/numeric"
)

// Table is a complete strategy profile over fixed players and states.
type Table struct {
	Players []string
	States  []string

	proposals   map[Move]float64
	acceptances map[Move]map[string]float64 // missing responder = empty cell
}

// NewTable returns a table with every cell empty.
func NewTable(players, states []string) *Table {
	return &Table{
		Players:     append([]string(nil), players...),
		States:      append([]string(nil), states...),
		proposals:   make(map[Move]float64),
		acceptances: make(map[Move]map[string]float64),
	}
}

// Proposal is the probability that m.Proposer, once chosen, proposes m.
// Empty cells read as 0.
func (t *Table) Proposal(m Move) float64 {
	return t.proposals[m]
}

// Acceptance is the probability that responder accepts m; ok is false for
// an empty cell.
func (t *Table) Acceptance(m Move, responder string) (p float64, ok bool) {
	p, ok = t.acceptances[m][responder]
	return p, ok
}

// SetProposal stores a proposal probability.
func (t *Table) SetProposal(m Move, p float64) error {
	if err := t.checkMove(m); err != nil {
		return err
	}
	if !numeric.InUnit(p) {
		return fmt.Errorf("proposal %v = %g: %w", m, p, ErrBadProbability)
	}
	t.proposals[m] = p

	return nil
}

// SetAcceptance stores an acceptance probability, putting responder on the
// committee of m.
func (t *Table) SetAcceptance(m Move, responder string, p float64) error {
	if err := t.checkMove(m); err != nil {
		return err
	}
	if !contains(t.Players, responder) {
		return fmt.Errorf("responder %q: %w", responder, ErrUnknownLabel)
	}
	if !numeric.InUnit(p) {
		return fmt.Errorf("acceptance %v by %s = %g: %w", m, responder, p, ErrBadProbability)
	}
	row, ok := t.acceptances[m]
	if !ok {
		row = make(map[string]float64)
		t.acceptances[m] = row
	}
	row[responder] = p

	return nil
}

// Fill replaces every empty cell with 0. Committees must be derived first.
func (t *Table) Fill() {
	for _, i := range t.Players {
		for _, x := range t.States {
			for _, y := range t.States {
				m := Move{Proposer: i, From: x, To: y}
				if _, ok := t.proposals[m]; !ok {
					t.proposals[m] = 0
				}
				row, ok := t.acceptances[m]
				if !ok {
					row = make(map[string]float64, len(t.Players))
					t.acceptances[m] = row
				}
				for _, j := range t.Players {
					if _, ok := row[j]; !ok {
						row[j] = 0
					}
				}
			}
		}
	}
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := NewTable(t.Players, t.States)
	for m, p := range t.proposals {
		c.proposals[m] = p
	}
	for m, row := range t.acceptances {
		cp := make(map[string]float64, len(row))
		for j, p := range row {
			cp[j] = p
		}
		c.acceptances[m] = cp
	}

	return c
}

// Validate checks that each proposer's proposals from each state sum to 1.
func (t *Table) Validate() error {
	for _, i := range t.Players {
		for _, x := range t.States {
			sum := 0.0
			for _, y := range t.States {
				sum += t.proposals[Move{Proposer: i, From: x, To: y}]
			}
			if !numeric.IsClose(sum, 1, numeric.SumAtol) {
				return fmt.Errorf("proposer %s in state %s: %w (got %g)", i, x, ErrProposalSum, sum)
			}
		}
	}

	return nil
}

func (t *Table) checkMove(m Move) error {
	if !contains(t.Players, m.Proposer) {
		return fmt.Errorf("proposer %q: %w", m.Proposer, ErrUnknownLabel)
	}
	if !contains(t.States, m.From) {
		return fmt.Errorf("state %q: %w", m.From, ErrUnknownLabel)
	}
	if !contains(t.States, m.To) {
		return fmt.Errorf("state %q: %w", m.To, ErrUnknownLabel)
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}
